package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinident/clinident-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de agregación para estadísticas del consultorio.
// Solo lectura; corre sobre el pool, nunca dentro de la transacción de citas.
type ReporteRepo struct {
	q Querier
}

func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// ContarPacientesAtendidos cuenta pacientes distintos con al menos una cita en el rango.
func (r *ReporteRepo) ContarPacientesAtendidos(ctx context.Context, inicio, fin time.Time) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(DISTINCT paciente_id) FROM citas WHERE fecha BETWEEN $1 AND $2`,
		inicio, fin,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar pacientes atendidos: %w", err)
	}
	return total, nil
}

// ContarCitas cuenta las citas registradas en el rango.
func (r *ReporteRepo) ContarCitas(ctx context.Context, inicio, fin time.Time) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM citas WHERE fecha BETWEEN $1 AND $2`,
		inicio, fin,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar citas: %w", err)
	}
	return total, nil
}

// InsumosMasUsados suma el consumo por insumo en el rango, mayor consumo primero.
// El nombre sale de la tabla de insumos; si el insumo fue eliminado la línea
// conserva el ID y el nombre queda vacío.
func (r *ReporteRepo) InsumosMasUsados(ctx context.Context, inicio, fin time.Time, limit int) ([]repository.InsumoUsadoResult, error) {
	query := `
		SELECT ci.insumo_id, COALESCE(i.nombre, ''), SUM(ci.cantidad)::int AS total
		FROM cita_insumos ci
		JOIN citas c ON c.id = ci.cita_id
		LEFT JOIN insumos i ON i.id = ci.insumo_id
		WHERE c.fecha BETWEEN $1 AND $2
		GROUP BY ci.insumo_id, i.nombre
		ORDER BY total DESC, ci.insumo_id
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, inicio, fin, limit)
	if err != nil {
		return nil, fmt.Errorf("insumos más usados: %w", err)
	}
	defer rows.Close()
	var results []repository.InsumoUsadoResult
	for rows.Next() {
		var res repository.InsumoUsadoResult
		if err := rows.Scan(&res.InsumoID, &res.Nombre, &res.Total); err != nil {
			return nil, fmt.Errorf("scan insumo usado: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// CitasPorDiaSemana agrupa las citas del rango por día hábil (ISODOW 1..5),
// mayor conteo primero (empates por día). Los fines de semana no entran en
// el histograma.
func (r *ReporteRepo) CitasPorDiaSemana(ctx context.Context, inicio, fin time.Time) ([]repository.CitasPorDiaResult, error) {
	query := `
		SELECT EXTRACT(ISODOW FROM fecha)::int AS dow, COUNT(*) AS total
		FROM citas
		WHERE fecha BETWEEN $1 AND $2 AND EXTRACT(ISODOW FROM fecha) <= 5
		GROUP BY dow
		ORDER BY total DESC, dow`
	rows, err := r.q.Query(ctx, query, inicio, fin)
	if err != nil {
		return nil, fmt.Errorf("citas por día: %w", err)
	}
	defer rows.Close()
	nombres := map[int]string{1: "Lunes", 2: "Martes", 3: "Miércoles", 4: "Jueves", 5: "Viernes"}
	var results []repository.CitasPorDiaResult
	for rows.Next() {
		var dow, total int
		if err := rows.Scan(&dow, &total); err != nil {
			return nil, fmt.Errorf("scan citas por día: %w", err)
		}
		results = append(results, repository.CitasPorDiaResult{Dia: nombres[dow], Total: total})
	}
	return results, rows.Err()
}

// SumarIngresos suma los montos de las citas del rango; cero cuando no hay citas.
func (r *ReporteRepo) SumarIngresos(ctx context.Context, inicio, fin time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto), 0) FROM citas WHERE fecha BETWEEN $1 AND $2`,
		inicio, fin,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar ingresos: %w", err)
	}
	return total, nil
}

// ContarInsumosAgotados cuenta insumos con cantidad cero (estado actual, sin fechas).
func (r *ReporteRepo) ContarInsumosAgotados(ctx context.Context) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM insumos WHERE cantidad = 0`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar insumos agotados: %w", err)
	}
	return total, nil
}

// ContarOdontologosActivos cuenta odontólogos distintos que atendieron al menos
// una cita en el rango.
func (r *ReporteRepo) ContarOdontologosActivos(ctx context.Context, inicio, fin time.Time) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(DISTINCT usuario_id) FROM citas WHERE fecha BETWEEN $1 AND $2`,
		inicio, fin,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("contar odontólogos activos: %w", err)
	}
	return total, nil
}
