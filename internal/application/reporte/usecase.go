// Package reporte contiene el caso de uso de estadísticas del consultorio:
// proyección de solo lectura sobre el histórico de citas e inventario.
package reporte

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

const (
	defaultTopInsumos = 10
	maxTopInsumos     = 100
)

// ReporteUseCase genera el reporte del período para el panel administrativo.
// No tiene estado propio; delega todas las agregaciones en ReporteRepository.
type ReporteUseCase struct {
	reporteRepo repository.ReporteRepository
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(reporteRepo repository.ReporteRepository) *ReporteUseCase {
	return &ReporteUseCase{reporteRepo: reporteRepo}
}

// GetReporte construye el ReporteResponse para el rango [inicio, fin], con fin
// inclusivo hasta el final del día. Todos los valores son cero/vacío cuando no
// hay datos; nunca null.
//
// Las consultas independientes se lanzan en paralelo.
func (uc *ReporteUseCase) GetReporte(ctx context.Context, in dto.ReporteRequest) (*dto.ReporteResponse, error) {
	inicio, fin, err := parsearRango(in.Inicio, in.Fin)
	if err != nil {
		return nil, err
	}
	topN := in.TopN
	if topN <= 0 {
		topN = defaultTopInsumos
	}
	if topN > maxTopInsumos {
		topN = maxTopInsumos
	}

	type conteosResult struct {
		pacientes   int
		citas       int
		odontologos int
		agotados    int
		err         error
	}
	type insumosResult struct {
		filas []repository.InsumoUsadoResult
		err   error
	}
	type diasResult struct {
		filas []repository.CitasPorDiaResult
		err   error
	}
	type ingresosResult struct {
		total decimal.Decimal
		err   error
	}

	conteosCh := make(chan conteosResult, 1)
	insumosCh := make(chan insumosResult, 1)
	diasCh := make(chan diasResult, 1)
	ingresosCh := make(chan ingresosResult, 1)

	go func() {
		var r conteosResult
		r.pacientes, r.err = uc.reporteRepo.ContarPacientesAtendidos(ctx, inicio, fin)
		if r.err == nil {
			r.citas, r.err = uc.reporteRepo.ContarCitas(ctx, inicio, fin)
		}
		if r.err == nil {
			r.odontologos, r.err = uc.reporteRepo.ContarOdontologosActivos(ctx, inicio, fin)
		}
		if r.err == nil {
			r.agotados, r.err = uc.reporteRepo.ContarInsumosAgotados(ctx)
		}
		conteosCh <- r
	}()
	go func() {
		filas, err := uc.reporteRepo.InsumosMasUsados(ctx, inicio, fin, topN)
		insumosCh <- insumosResult{filas, err}
	}()
	go func() {
		filas, err := uc.reporteRepo.CitasPorDiaSemana(ctx, inicio, fin)
		diasCh <- diasResult{filas, err}
	}()
	go func() {
		total, err := uc.reporteRepo.SumarIngresos(ctx, inicio, fin)
		ingresosCh <- ingresosResult{total, err}
	}()

	conteos := <-conteosCh
	insumos := <-insumosCh
	dias := <-diasCh
	ingresos := <-ingresosCh

	if conteos.err != nil {
		return nil, fmt.Errorf("reporte: conteos: %w", conteos.err)
	}
	if insumos.err != nil {
		return nil, fmt.Errorf("reporte: insumos: %w", insumos.err)
	}
	if dias.err != nil {
		return nil, fmt.Errorf("reporte: citas por día: %w", dias.err)
	}
	if ingresos.err != nil {
		return nil, fmt.Errorf("reporte: ingresos: %w", ingresos.err)
	}

	diasInclusivos := decimal.NewFromInt(int64(fin.Sub(inicio).Hours()/24) + 1)
	promedioPorDia := ingresos.total.Div(diasInclusivos).Round(2)
	promedioPorCita := decimal.Zero
	if conteos.citas > 0 {
		promedioPorCita = ingresos.total.Div(decimal.NewFromInt(int64(conteos.citas))).Round(2)
	}

	out := &dto.ReporteResponse{
		Inicio:             inicio.Format("2006-01-02"),
		Fin:                fin.Format("2006-01-02"),
		PacientesAtendidos: conteos.pacientes,
		CitasRealizadas:    conteos.citas,
		InsumosUsados:      make([]dto.InsumoUsadoDTO, 0, len(insumos.filas)),
		CitasPorDia:        make([]dto.CitasPorDiaDTO, 0, len(dias.filas)),
		IngresosTotales:    ingresos.total.Round(2),
		PromedioPorDia:     promedioPorDia,
		PromedioPorCita:    promedioPorCita,
		InsumosAgotados:    conteos.agotados,
		OdontologosActivos: conteos.odontologos,
	}
	for _, f := range insumos.filas {
		out.InsumosUsados = append(out.InsumosUsados, dto.InsumoUsadoDTO{InsumoID: f.InsumoID, Nombre: f.Nombre, Total: f.Total})
	}
	for _, f := range dias.filas {
		out.CitasPorDia = append(out.CitasPorDia, dto.CitasPorDiaDTO{Dia: f.Dia, Total: f.Total})
	}
	// El histograma sale de mayor a menor conteo; empates conservan el orden
	// del repositorio (lunes a viernes).
	sort.SliceStable(out.CitasPorDia, func(i, j int) bool {
		return out.CitasPorDia[i].Total > out.CitasPorDia[j].Total
	})
	return out, nil
}

// parsearRango valida YYYY-MM-DD y expande fin al final del día.
func parsearRango(inicioStr, finStr string) (time.Time, time.Time, error) {
	inicio, err := time.Parse("2006-01-02", inicioStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	fin, err := time.Parse("2006-01-02", finStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	if fin.Before(inicio) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	fin = fin.Add(24*time.Hour - time.Nanosecond)
	return inicio, fin, nil
}
