package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinident/clinident-api/internal/domain/entity"
)

// InsumoLineaRequest línea de consumo de insumo en una cita.
type InsumoLineaRequest struct {
	InsumoID string `json:"insumoId" validate:"required"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
}

// CreateCitaRequest entrada para registrar una cita.
// OdontogramaEdits son ediciones sobre el odontograma vivo del paciente;
// Fecha es opcional (se usa la hora actual si falta).
type CreateCitaRequest struct {
	PacienteID       string               `json:"pacienteId" validate:"required"`
	Motivo           string               `json:"motivo" validate:"required"`
	Observaciones    string               `json:"observaciones"`
	Tratamientos     []string             `json:"tratamientos" validate:"max=3"`
	Monto            decimal.Decimal      `json:"monto"`
	ReferenciaPago   string               `json:"referenciaPago"`
	Insumos          []InsumoLineaRequest `json:"insumos"`
	OdontogramaEdits []entity.Diente      `json:"odontogramaEdits"`
	Fecha            *time.Time           `json:"fecha"`
}

// UpdateCitaRequest corrección administrativa de una cita; cada campo presente
// sobreescribe el correspondiente. Un odontograma nuevo reemplaza tanto el de
// la cita como el vivo del paciente. Las líneas de insumos NO se revalidan
// contra el stock actual (se preserva el comportamiento original).
type UpdateCitaRequest struct {
	Motivo         *string               `json:"motivo"`
	Observaciones  *string               `json:"observaciones"`
	Tratamientos   *[]string             `json:"tratamientos"`
	Monto          *decimal.Decimal      `json:"monto"`
	ReferenciaPago *string               `json:"referenciaPago"`
	Insumos        *[]InsumoLineaRequest `json:"insumos"`
	Odontograma    *[]entity.Diente      `json:"odontograma"`
}

// CitaResponse salida de una cita con su snapshot completo.
type CitaResponse struct {
	ID             string                   `json:"id"`
	PacienteID     string                   `json:"pacienteId"`
	PacienteDatos  entity.DatosPaciente     `json:"pacienteDatos"`
	UsuarioID      string                   `json:"usuarioId"`
	Motivo         string                   `json:"motivo"`
	Observaciones  string                   `json:"observaciones"`
	Tratamientos   []string                 `json:"tratamientos"`
	Monto          decimal.Decimal          `json:"monto"`
	ReferenciaPago string                   `json:"referenciaPago"`
	Insumos        []entity.InsumoConsumido `json:"insumos"`
	Odontograma    []entity.Diente          `json:"odontograma"`
	Fecha          time.Time                `json:"fecha"`
	CreatedAt      time.Time                `json:"createdAt"`
}

// CitaListResponse lista paginada de citas (más reciente primero).
type CitaListResponse struct {
	Items []CitaResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
