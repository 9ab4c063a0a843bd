package paciente

import (
	"context"
	"fmt"

	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// HistoriaPDFGenerator renderiza la historia clínica de un paciente como PDF.
type HistoriaPDFGenerator interface {
	GenerateHistoriaPDF(ctx context.Context, paciente *entity.Paciente, citas []*entity.Cita) ([]byte, error)
}

// HistoriaPDFUseCase genera el PDF de historia clínica: encabezado demográfico
// más el historial completo de citas del paciente.
type HistoriaPDFUseCase struct {
	pacienteRepo repository.PacienteRepository
	citaRepo     repository.CitaRepository
	generator    HistoriaPDFGenerator
}

// NewHistoriaPDFUseCase construye el caso de uso.
func NewHistoriaPDFUseCase(
	pacienteRepo repository.PacienteRepository,
	citaRepo repository.CitaRepository,
	generator HistoriaPDFGenerator,
) *HistoriaPDFUseCase {
	return &HistoriaPDFUseCase{
		pacienteRepo: pacienteRepo,
		citaRepo:     citaRepo,
		generator:    generator,
	}
}

// maxCitasHistoria limita el historial volcado al PDF.
const maxCitasHistoria = 200

// DownloadHistoriaPDF genera el PDF de la historia clínica del paciente.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si no existe.
func (uc *HistoriaPDFUseCase) DownloadHistoriaPDF(ctx context.Context, pacienteID string) ([]byte, string, error) {
	p, err := uc.pacienteRepo.GetByID(pacienteID)
	if err != nil {
		return nil, "", fmt.Errorf("historia pdf: obtener paciente: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}

	citas, err := uc.citaRepo.ListByPaciente(pacienteID, maxCitasHistoria, 0)
	if err != nil {
		return nil, "", fmt.Errorf("historia pdf: obtener citas: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateHistoriaPDF(ctx, p, citas)
	if err != nil {
		return nil, "", fmt.Errorf("historia pdf: generar documento: %w", err)
	}
	filename := fmt.Sprintf("historia-%s.pdf", p.Cedula)
	return pdfBytes, filename, nil
}
