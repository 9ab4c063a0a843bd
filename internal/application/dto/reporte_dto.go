package dto

import "github.com/shopspring/decimal"

// ReporteRequest rango cerrado [inicio, fin] en formato YYYY-MM-DD;
// fin es inclusivo hasta el final del día.
type ReporteRequest struct {
	Inicio string `query:"inicio" validate:"required"`
	Fin    string `query:"fin" validate:"required"`
	TopN   int    `query:"topN"`
}

// InsumoUsadoDTO consumo total de un insumo en el período.
type InsumoUsadoDTO struct {
	InsumoID string `json:"insumoId"`
	Nombre   string `json:"nombre"`
	Total    int    `json:"total"`
}

// CitasPorDiaDTO conteo de citas por día hábil.
type CitasPorDiaDTO struct {
	Dia   string `json:"dia"`
	Total int    `json:"total"`
}

// ReporteResponse estadísticas del período. Todos los campos tienen valor
// cero/vacío cuando no hay datos; nunca null.
type ReporteResponse struct {
	Inicio             string           `json:"inicio"`
	Fin                string           `json:"fin"`
	PacientesAtendidos int              `json:"pacientesAtendidos"`
	CitasRealizadas    int              `json:"citasRealizadas"`
	InsumosUsados      []InsumoUsadoDTO `json:"insumosUsados"`
	CitasPorDia        []CitasPorDiaDTO `json:"citasPorDia"`
	IngresosTotales    decimal.Decimal  `json:"ingresosTotales"`
	PromedioPorDia     decimal.Decimal  `json:"promedioPorDia"`
	PromedioPorCita    decimal.Decimal  `json:"promedioPorCita"`
	InsumosAgotados    int              `json:"insumosAgotados"`
	OdontologosActivos int              `json:"odontologosActivos"`
}
