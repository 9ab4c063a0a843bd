package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest entrada para registrar un insumo nuevo.
type CreateInsumoRequest struct {
	Nombre         string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad" validate:"min=0"`
	UnidadMedida   string          `json:"unidadMedida"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

// UpdateInsumoRequest entrada para editar un insumo (sin tocar cantidad).
type UpdateInsumoRequest struct {
	Descripcion    *string          `json:"descripcion"`
	UnidadMedida   *string          `json:"unidadMedida"`
	PrecioUnitario *decimal.Decimal `json:"precioUnitario"`
}

// RestockInsumoRequest entrada para reabastecer stock.
type RestockInsumoRequest struct {
	Cantidad int `json:"cantidad" validate:"required,gt=0"`
}

// InsumoResponse salida de un insumo; Estado es derivado, no almacenado.
type InsumoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       int             `json:"cantidad"`
	UnidadMedida   string          `json:"unidadMedida"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Estado         string          `json:"estado"`
	UsuarioID      string          `json:"usuarioId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// InsumoListResponse lista paginada de insumos.
type InsumoListResponse struct {
	Items []InsumoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
