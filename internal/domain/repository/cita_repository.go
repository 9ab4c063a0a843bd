package repository

import "github.com/clinident/clinident-api/internal/domain/entity"

// CitaRepository define el puerto de persistencia para Cita y sus líneas de
// consumo de insumos. Los listados retornan más reciente primero.
type CitaRepository interface {
	Create(c *entity.Cita) error
	GetByID(id string) (*entity.Cita, error)
	Update(c *entity.Cita) error
	Delete(id string) error
	ListByUsuario(usuarioID string, limit, offset int) ([]*entity.Cita, error)
	ListByPaciente(pacienteID string, limit, offset int) ([]*entity.Cita, error)
	// GetUltimaByPaciente retorna nil, nil cuando el paciente no tiene citas.
	GetUltimaByPaciente(pacienteID string) (*entity.Cita, error)
}
