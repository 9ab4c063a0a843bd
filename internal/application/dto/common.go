package dto

// PageRequest parámetros de paginación leídos del querystring de los listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage normaliza límite y offset cuando vienen vacíos o negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse eco de la paginación aplicada, devuelto junto a cada listado.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo uniforme de error: código estable para que el cliente
// pueda ramificar y mensaje legible en español.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
