package reporte_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/application/reporte"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// stubReporteRepo devuelve valores fijos configurables por test.
type stubReporteRepo struct {
	pacientes   int
	citas       int
	odontologos int
	agotados    int
	insumos     []repository.InsumoUsadoResult
	dias        []repository.CitasPorDiaResult
	ingresos    decimal.Decimal

	gotInicio, gotFin time.Time
	gotLimit          int
}

func (s *stubReporteRepo) ContarPacientesAtendidos(_ context.Context, inicio, fin time.Time) (int, error) {
	s.gotInicio, s.gotFin = inicio, fin
	return s.pacientes, nil
}
func (s *stubReporteRepo) ContarCitas(_ context.Context, _, _ time.Time) (int, error) {
	return s.citas, nil
}
func (s *stubReporteRepo) InsumosMasUsados(_ context.Context, _, _ time.Time, limit int) ([]repository.InsumoUsadoResult, error) {
	s.gotLimit = limit
	return s.insumos, nil
}
func (s *stubReporteRepo) CitasPorDiaSemana(_ context.Context, _, _ time.Time) ([]repository.CitasPorDiaResult, error) {
	return s.dias, nil
}
func (s *stubReporteRepo) SumarIngresos(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return s.ingresos, nil
}
func (s *stubReporteRepo) ContarInsumosAgotados(_ context.Context) (int, error) {
	return s.agotados, nil
}
func (s *stubReporteRepo) ContarOdontologosActivos(_ context.Context, _, _ time.Time) (int, error) {
	return s.odontologos, nil
}

func TestGetReporte_PeriodoSinDatos_TodoEnCero(t *testing.T) {
	repo := &stubReporteRepo{ingresos: decimal.Zero}
	uc := reporte.NewReporteUseCase(repo)

	out, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-01-01", Fin: "2026-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.PacientesAtendidos)
	assert.Equal(t, 0, out.CitasRealizadas)
	assert.NotNil(t, out.InsumosUsados, "lista vacía, nunca null")
	assert.Empty(t, out.InsumosUsados)
	assert.NotNil(t, out.CitasPorDia, "lista vacía, nunca null")
	assert.True(t, out.IngresosTotales.IsZero())
	assert.True(t, out.PromedioPorDia.IsZero())
	assert.True(t, out.PromedioPorCita.IsZero(), "sin citas no hay división por cero")
}

func TestGetReporte_Promedios(t *testing.T) {
	repo := &stubReporteRepo{
		pacientes: 8,
		citas:     10,
		ingresos:  decimal.NewFromInt(1000),
	}
	uc := reporte.NewReporteUseCase(repo)

	// Rango de 10 días inclusivos.
	out, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-03-01", Fin: "2026-03-10",
	})
	require.NoError(t, err)

	assert.True(t, out.PromedioPorDia.Equal(decimal.NewFromInt(100)),
		"1000 entre 10 días inclusivos = 100, got %s", out.PromedioPorDia)
	assert.True(t, out.PromedioPorCita.Equal(decimal.NewFromInt(100)),
		"1000 entre 10 citas = 100, got %s", out.PromedioPorCita)
}

func TestGetReporte_FinInclusivoHastaFinDelDia(t *testing.T) {
	repo := &stubReporteRepo{ingresos: decimal.Zero}
	uc := reporte.NewReporteUseCase(repo)

	_, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-05-01", Fin: "2026-05-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-05-01", repo.gotInicio.Format("2006-01-02"))
	assert.Equal(t, 23, repo.gotFin.Hour(), "fin expandido al final del día")
	assert.Equal(t, 59, repo.gotFin.Minute())
}

func TestGetReporte_RangoInvertido(t *testing.T) {
	uc := reporte.NewReporteUseCase(&stubReporteRepo{ingresos: decimal.Zero})
	_, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-02-10", Fin: "2026-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetReporte_FechasMalformadas(t *testing.T) {
	uc := reporte.NewReporteUseCase(&stubReporteRepo{ingresos: decimal.Zero})
	_, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "01/02/2026", Fin: "2026-02-28",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetReporte_TopNDefaultYTecho(t *testing.T) {
	repo := &stubReporteRepo{ingresos: decimal.Zero}
	uc := reporte.NewReporteUseCase(repo)

	_, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-01-01", Fin: "2026-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotLimit, "topN por defecto")

	_, err = uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-01-01", Fin: "2026-01-31", TopN: 9999,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.gotLimit, "topN con techo")
}

func TestGetReporte_CitasPorDiaDeMayorAMenorConteo(t *testing.T) {
	// El repositorio puede entregar las filas en orden de día; la respuesta
	// siempre va de mayor a menor conteo.
	repo := &stubReporteRepo{
		ingresos: decimal.Zero,
		dias: []repository.CitasPorDiaResult{
			{Dia: "Lunes", Total: 1},
			{Dia: "Martes", Total: 9},
			{Dia: "Viernes", Total: 4},
		},
	}
	uc := reporte.NewReporteUseCase(repo)

	out, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-06-01", Fin: "2026-06-30",
	})
	require.NoError(t, err)

	require.Len(t, out.CitasPorDia, 3)
	for i := 1; i < len(out.CitasPorDia); i++ {
		assert.GreaterOrEqual(t, out.CitasPorDia[i-1].Total, out.CitasPorDia[i].Total,
			"el histograma debe ir de mayor a menor conteo")
	}
	assert.Equal(t, "Martes", out.CitasPorDia[0].Dia)
	assert.Equal(t, "Viernes", out.CitasPorDia[1].Dia)
	assert.Equal(t, "Lunes", out.CitasPorDia[2].Dia)
}

func TestGetReporte_ProyectaFilasDelRepositorio(t *testing.T) {
	repo := &stubReporteRepo{
		pacientes:   3,
		citas:       4,
		odontologos: 2,
		agotados:    1,
		ingresos:    decimal.NewFromInt(400),
		insumos: []repository.InsumoUsadoResult{
			{InsumoID: "i1", Nombre: "Anestesia", Total: 12},
			{InsumoID: "i2", Nombre: "Gasa", Total: 7},
		},
		dias: []repository.CitasPorDiaResult{
			{Dia: "Lunes", Total: 3},
			{Dia: "Miércoles", Total: 1},
		},
	}
	uc := reporte.NewReporteUseCase(repo)

	out, err := uc.GetReporte(context.Background(), dto.ReporteRequest{
		Inicio: "2026-04-01", Fin: "2026-04-30",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, out.PacientesAtendidos)
	assert.Equal(t, 4, out.CitasRealizadas)
	assert.Equal(t, 2, out.OdontologosActivos)
	assert.Equal(t, 1, out.InsumosAgotados)
	require.Len(t, out.InsumosUsados, 2)
	assert.Equal(t, "Anestesia", out.InsumosUsados[0].Nombre)
	assert.Equal(t, 12, out.InsumosUsados[0].Total)
	require.Len(t, out.CitasPorDia, 2)
	assert.Equal(t, "Lunes", out.CitasPorDia[0].Dia)
	assert.True(t, out.PromedioPorCita.Equal(decimal.NewFromInt(100)))
}
