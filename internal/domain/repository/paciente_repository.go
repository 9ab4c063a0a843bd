package repository

import "github.com/clinident/clinident-api/internal/domain/entity"

// PacienteRepository define el puerto de persistencia para Paciente (DIP).
// UpdateOdontograma existe separado del Update genérico: el odontograma vivo
// solo lo escribe el flujo de citas.
type PacienteRepository interface {
	Create(p *entity.Paciente) error
	GetByID(id string) (*entity.Paciente, error)
	GetByCedula(cedula string) (*entity.Paciente, error)
	List(limit, offset int) ([]*entity.Paciente, error)
	Update(p *entity.Paciente) error
	UpdateOdontograma(pacienteID string, chart []entity.Diente) error
	Delete(id string) error
}
