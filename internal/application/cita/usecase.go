package cita

import (
	"context"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/odontograma"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// CitaUseCase consultas y correcciones administrativas sobre citas existentes.
type CitaUseCase struct {
	txRunner TxRunner
	citaRepo repository.CitaRepository
}

// NewCitaUseCase construye el caso de uso.
func NewCitaUseCase(txRunner TxRunner, citaRepo repository.CitaRepository) *CitaUseCase {
	return &CitaUseCase{txRunner: txRunner, citaRepo: citaRepo}
}

// GetByID obtiene una cita; nil si no existe.
func (uc *CitaUseCase) GetByID(id string) (*dto.CitaResponse, error) {
	c, err := uc.citaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCitaResponse(c), nil
}

// Update aplica una corrección administrativa: cada campo presente sobreescribe
// el correspondiente. Si viene un odontograma nuevo, reemplaza el de la cita Y
// el vivo del paciente (mantenerlos sincronizados), en la misma transacción.
// No se re-ejecuta la lógica de consumo: las ediciones de la lista de insumos
// no se validan contra el stock actual. Comportamiento original preservado.
func (uc *CitaUseCase) Update(ctx context.Context, id string, in dto.UpdateCitaRequest) (*dto.CitaResponse, error) {
	c, err := uc.citaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	if in.Motivo != nil {
		c.Motivo = *in.Motivo
	}
	if in.Observaciones != nil {
		c.Observaciones = *in.Observaciones
	}
	if in.Tratamientos != nil {
		if err := validarTratamientos(*in.Tratamientos); err != nil {
			return nil, err
		}
		c.Tratamientos = *in.Tratamientos
	}
	if in.Monto != nil {
		c.Monto = *in.Monto
	}
	if in.ReferenciaPago != nil {
		c.ReferenciaPago = *in.ReferenciaPago
	}
	if in.Insumos != nil {
		if err := validarLineas(*in.Insumos); err != nil {
			return nil, err
		}
		consumos := make([]entity.InsumoConsumido, 0, len(*in.Insumos))
		for _, linea := range *in.Insumos {
			consumos = append(consumos, entity.InsumoConsumido{InsumoID: linea.InsumoID, Cantidad: linea.Cantidad})
		}
		c.Insumos = consumos
	}

	if in.Odontograma == nil {
		if err := uc.citaRepo.Update(c); err != nil {
			return nil, err
		}
		return toCitaResponse(c), nil
	}

	nuevo, err := odontograma.Normalizar(*in.Odontograma)
	if err != nil {
		return nil, err
	}
	nuevo = odontograma.Sanitize(nuevo)
	c.Odontograma = nuevo

	err = uc.txRunner.Run(ctx, func(
		citaRepo repository.CitaRepository,
		pacienteRepo repository.PacienteRepository,
		_ repository.InsumoRepository,
	) error {
		if err := pacienteRepo.UpdateOdontograma(c.PacienteID, nuevo); err != nil {
			return err
		}
		return citaRepo.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return toCitaResponse(c), nil
}

// Delete elimina la cita de forma definitiva. No repone el stock consumido ni
// revierte el odontograma del paciente: es un mecanismo de corrección de
// registros erróneos, no un deshacer.
func (uc *CitaUseCase) Delete(id string) error {
	c, err := uc.citaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.citaRepo.Delete(id)
}

// ListByUsuario citas atendidas por un odontólogo, más reciente primero.
func (uc *CitaUseCase) ListByUsuario(usuarioID string, limit, offset int) (*dto.CitaListResponse, error) {
	citas, err := uc.citaRepo.ListByUsuario(usuarioID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toCitaListResponse(citas, limit, offset), nil
}

// ListByPaciente historial de citas de un paciente, más reciente primero.
func (uc *CitaUseCase) ListByPaciente(pacienteID string, limit, offset int) (*dto.CitaListResponse, error) {
	citas, err := uc.citaRepo.ListByPaciente(pacienteID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toCitaListResponse(citas, limit, offset), nil
}

// GetUltimaByPaciente la cita más reciente del paciente; nil si no tiene.
func (uc *CitaUseCase) GetUltimaByPaciente(pacienteID string) (*dto.CitaResponse, error) {
	c, err := uc.citaRepo.GetUltimaByPaciente(pacienteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCitaResponse(c), nil
}

func toCitaListResponse(citas []*entity.Cita, limit, offset int) *dto.CitaListResponse {
	out := &dto.CitaListResponse{
		Items: make([]dto.CitaResponse, 0, len(citas)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, c := range citas {
		out.Items = append(out.Items, *toCitaResponse(c))
	}
	return out
}
