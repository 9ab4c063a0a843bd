package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InsumoUsadoResult total consumido de un insumo en el período.
type InsumoUsadoResult struct {
	InsumoID string
	Nombre   string
	Total    int
}

// CitasPorDiaResult conteo de citas por día hábil de la semana.
// El listado va de mayor a menor conteo.
type CitasPorDiaResult struct {
	Dia   string // Lunes..Viernes
	Total int
}

// ReporteRepository consultas de solo lectura para estadísticas del consultorio.
// Los rangos son [inicio, fin] con fin inclusivo hasta el final del día; el
// caso de uso entrega los límites ya expandidos.
type ReporteRepository interface {
	ContarPacientesAtendidos(ctx context.Context, inicio, fin time.Time) (int, error)
	ContarCitas(ctx context.Context, inicio, fin time.Time) (int, error)
	InsumosMasUsados(ctx context.Context, inicio, fin time.Time, limit int) ([]InsumoUsadoResult, error)
	CitasPorDiaSemana(ctx context.Context, inicio, fin time.Time) ([]CitasPorDiaResult, error)
	SumarIngresos(ctx context.Context, inicio, fin time.Time) (decimal.Decimal, error)
	// ContarInsumosAgotados es global, no filtra por fechas.
	ContarInsumosAgotados(ctx context.Context) (int, error)
	ContarOdontologosActivos(ctx context.Context, inicio, fin time.Time) (int, error)
}
