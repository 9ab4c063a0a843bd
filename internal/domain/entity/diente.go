package entity

// Estados clínicos válidos para un diente en el odontograma.
const (
	EstadoSano       = "Sano"
	EstadoCariado    = "Cariado"
	EstadoObturado   = "Obturado"
	EstadoEndodoncia = "Endodoncia"
	EstadoAusente    = "Ausente"
	EstadoExtraido   = "Extraído"
	EstadoSellado    = "Sellado"
	EstadoCorona     = "Corona"
	EstadoFracturado = "Fracturado"
	EstadoImplante   = "Implante"
)

// Cantidad de piezas dentales en un odontograma adulto.
const TotalDientes = 32

// Diente representa el estado clínico de una pieza dental (1..32).
type Diente struct {
	Numero int    `json:"numero"`
	Estado string `json:"estado"`
}

// EstadoValido indica si el estado pertenece al vocabulario clínico fijo.
func EstadoValido(estado string) bool {
	switch estado {
	case EstadoSano, EstadoCariado, EstadoObturado, EstadoEndodoncia,
		EstadoAusente, EstadoExtraido, EstadoSellado, EstadoCorona,
		EstadoFracturado, EstadoImplante:
		return true
	}
	return false
}
