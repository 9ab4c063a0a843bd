package paciente

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/odontograma"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// PacienteUseCase casos de uso CRUD sobre fichas de pacientes. La edición
// genérica nunca toca el odontograma vivo: ese campo pertenece al flujo de
// citas (repository.PacienteRepository.UpdateOdontograma).
type PacienteUseCase struct {
	pacienteRepo repository.PacienteRepository
}

// NewPacienteUseCase construye el caso de uso.
func NewPacienteUseCase(pacienteRepo repository.PacienteRepository) *PacienteUseCase {
	return &PacienteUseCase{pacienteRepo: pacienteRepo}
}

// Create registra un paciente: cédula única, fecha de nacimiento normalizada a
// solo-fecha (rechaza futuras) y odontograma inicial de 32 piezas Sanas.
// La edad enviada por el cliente se almacena tal cual si viene; si falta se
// deriva de la fecha de nacimiento.
func (uc *PacienteUseCase) Create(usuarioID string, in dto.CreatePacienteRequest) (*dto.PacienteResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	cedula := strings.TrimSpace(in.Cedula)
	if nombre == "" || cedula == "" {
		return nil, domain.ErrInvalidInput
	}
	fechaNac, err := NormalizarFechaNacimiento(in.FechaNacimiento)
	if err != nil {
		return nil, err
	}

	// Chequeo de unicidad previo; la ventana de carrera la cierra el índice
	// único de cedula (23505 → ErrDuplicate en el repositorio).
	existente, err := uc.pacienteRepo.GetByCedula(cedula)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	edad := CalcularEdad(fechaNac, now)
	if in.Edad != nil {
		edad = *in.Edad
	}

	p := &entity.Paciente{
		ID:                 uuid.New().String(),
		Nombre:             nombre,
		Cedula:             cedula,
		FechaNacimiento:    fechaNac,
		Edad:               edad,
		Sexo:               in.Sexo,
		Telefono:           in.Telefono,
		TelefonoEmergencia: in.TelefonoEmergencia,
		Direccion:          in.Direccion,
		Ocupacion:          in.Ocupacion,
		GrupoSanguineo:     in.GrupoSanguineo,

		Alergias:               in.Alergias,
		EnfermedadesCronicas:   in.EnfermedadesCronicas,
		Medicamentos:           in.Medicamentos,
		CondicionesEspeciales:  in.CondicionesEspeciales,
		Cirugias:               in.Cirugias,
		AntecedentesFamiliares: in.AntecedentesFamiliares,

		UsuarioID:   usuarioID,
		Odontograma: odontograma.Completo(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.pacienteRepo.Create(p); err != nil {
		return nil, err
	}
	return toPacienteResponse(p), nil
}

// GetByID obtiene una ficha; nil si no existe.
func (uc *PacienteUseCase) GetByID(id string) (*dto.PacienteResponse, error) {
	p, err := uc.pacienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPacienteResponse(p), nil
}

// List lista fichas con paginación.
func (uc *PacienteUseCase) List(limit, offset int) (*dto.PacienteListResponse, error) {
	pacientes, err := uc.pacienteRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PacienteListResponse{
		Items: make([]dto.PacienteResponse, 0, len(pacientes)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range pacientes {
		out.Items = append(out.Items, *toPacienteResponse(p))
	}
	return out, nil
}

// Update edita la ficha; misma normalización de fecha que Create.
// Nunca toca el odontograma.
func (uc *PacienteUseCase) Update(id string, in dto.UpdatePacienteRequest) (*dto.PacienteResponse, error) {
	p, err := uc.pacienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.FechaNacimiento != nil {
		fechaNac, err := NormalizarFechaNacimiento(*in.FechaNacimiento)
		if err != nil {
			return nil, err
		}
		p.FechaNacimiento = fechaNac
		p.Edad = CalcularEdad(fechaNac, time.Now())
	}
	if in.Edad != nil {
		p.Edad = *in.Edad
	}
	if in.Nombre != nil {
		p.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Sexo != nil {
		p.Sexo = *in.Sexo
	}
	if in.Telefono != nil {
		p.Telefono = *in.Telefono
	}
	if in.TelefonoEmergencia != nil {
		p.TelefonoEmergencia = *in.TelefonoEmergencia
	}
	if in.Direccion != nil {
		p.Direccion = *in.Direccion
	}
	if in.Ocupacion != nil {
		p.Ocupacion = *in.Ocupacion
	}
	if in.GrupoSanguineo != nil {
		p.GrupoSanguineo = *in.GrupoSanguineo
	}
	if in.Alergias != nil {
		p.Alergias = *in.Alergias
	}
	if in.EnfermedadesCronicas != nil {
		p.EnfermedadesCronicas = *in.EnfermedadesCronicas
	}
	if in.Medicamentos != nil {
		p.Medicamentos = *in.Medicamentos
	}
	if in.CondicionesEspeciales != nil {
		p.CondicionesEspeciales = *in.CondicionesEspeciales
	}
	if in.Cirugias != nil {
		p.Cirugias = *in.Cirugias
	}
	if in.AntecedentesFamiliares != nil {
		p.AntecedentesFamiliares = *in.AntecedentesFamiliares
	}
	p.UpdatedAt = time.Now()

	if err := uc.pacienteRepo.Update(p); err != nil {
		return nil, err
	}
	return toPacienteResponse(p), nil
}

// Delete elimina la ficha. No cascada a las citas: cada cita conserva su
// propio snapshot de datos y odontograma.
func (uc *PacienteUseCase) Delete(id string) error {
	p, err := uc.pacienteRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.pacienteRepo.Delete(id)
}

func toPacienteResponse(p *entity.Paciente) *dto.PacienteResponse {
	return &dto.PacienteResponse{
		ID:                 p.ID,
		Nombre:             p.Nombre,
		Cedula:             p.Cedula,
		FechaNacimiento:    p.FechaNacimiento.Format("2006-01-02"),
		Edad:               p.Edad,
		Sexo:               p.Sexo,
		Telefono:           p.Telefono,
		TelefonoEmergencia: p.TelefonoEmergencia,
		Direccion:          p.Direccion,
		Ocupacion:          p.Ocupacion,
		GrupoSanguineo:     p.GrupoSanguineo,

		Alergias:               p.Alergias,
		EnfermedadesCronicas:   p.EnfermedadesCronicas,
		Medicamentos:           p.Medicamentos,
		CondicionesEspeciales:  p.CondicionesEspeciales,
		Cirugias:               p.Cirugias,
		AntecedentesFamiliares: p.AntecedentesFamiliares,

		UsuarioID:   p.UsuarioID,
		Odontograma: p.Odontograma,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
