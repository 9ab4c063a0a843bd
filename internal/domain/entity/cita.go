package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vocabulario fijo de tratamientos; una cita admite hasta MaxTratamientos etiquetas.
const MaxTratamientos = 3

var TratamientosValidos = []string{
	"Limpieza",
	"Restauración",
	"Endodoncia",
	"Extracción",
	"Ortodoncia",
	"Profilaxis",
	"Blanqueamiento",
	"Corona",
	"Implante",
	"Sellante",
}

// TratamientoValido indica si la etiqueta pertenece al vocabulario fijo.
func TratamientoValido(t string) bool {
	for _, v := range TratamientosValidos {
		if v == t {
			return true
		}
	}
	return false
}

// InsumoConsumido es una línea de consumo de insumos dentro de una cita.
// Guarda referencia y cantidad; el precio es un asunto derivado de reportes.
type InsumoConsumido struct {
	InsumoID string `json:"insumoId"`
	Cantidad int    `json:"cantidad"`
}

// Cita representa una visita clínica. Inmutable por intención tras su creación:
// congela los datos del paciente (PacienteDatos) y el odontograma resultante de
// la visita, de modo que el histórico no cambia aunque la ficha viva cambie.
type Cita struct {
	ID             string
	PacienteID     string
	PacienteDatos  DatosPaciente // copia desnormalizada, no referencia
	UsuarioID      string        // odontólogo que atendió
	Motivo         string
	Observaciones  string
	Tratamientos   []string // máx. 3, del vocabulario fijo
	Monto          decimal.Decimal
	ReferenciaPago string
	Insumos        []InsumoConsumido
	Odontograma    []Diente // snapshot completo al cierre de la visita
	Fecha          time.Time
	CreatedAt      time.Time
}
