package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados del stock de un insumo (no se persisten).
const (
	InsumoAgotado    = "Agotado"
	InsumoStockBajo  = "StockBajo"
	InsumoDisponible = "Disponible"
)

// Umbral de negocio: con 5 unidades o menos el insumo se considera en stock bajo.
const UmbralStockBajo = 5

// Insumo representa un material o suministro clínico con stock controlado.
type Insumo struct {
	ID             string
	Nombre         string // único (comparación normalizada: trim + sin acentos + minúsculas)
	Descripcion    string
	Cantidad       int // nunca negativa; solo la descuenta el flujo de citas
	UnidadMedida   string
	PrecioUnitario decimal.Decimal
	UsuarioID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Estado deriva el estado de disponibilidad a partir de la cantidad actual.
func (i *Insumo) Estado() string {
	switch {
	case i.Cantidad == 0:
		return InsumoAgotado
	case i.Cantidad <= UmbralStockBajo:
		return InsumoStockBajo
	default:
		return InsumoDisponible
	}
}
