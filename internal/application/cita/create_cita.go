package cita

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/odontograma"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// CreateCitaUseCase registra una cita: fusiona las ediciones del odontograma
// sobre el estado vivo del paciente, descuenta los insumos consumidos y
// persiste la cita con sus snapshots, todo en una sola transacción.
//
// El flujo de citas es el único dueño de la escritura del odontograma vivo.
type CreateCitaUseCase struct {
	txRunner     TxRunner
	pacienteRepo repository.PacienteRepository
	insumoRepo   repository.InsumoRepository
	log          zerolog.Logger
}

// NewCreateCitaUseCase construye el caso de uso.
func NewCreateCitaUseCase(
	txRunner TxRunner,
	pacienteRepo repository.PacienteRepository,
	insumoRepo repository.InsumoRepository,
	log zerolog.Logger,
) *CreateCitaUseCase {
	return &CreateCitaUseCase{
		txRunner:     txRunner,
		pacienteRepo: pacienteRepo,
		insumoRepo:   insumoRepo,
		log:          log,
	}
}

// CreateCita ejecuta el flujo completo:
//  1. Carga el paciente (ErrNotFound si no existe).
//  2. Pre-valida TODAS las líneas de insumos (existencia y stock suficiente)
//     antes de mutar nada: una cita multi-insumo avanza completa o aborta
//     completa en el chequeo de stock.
//  3. Fusiona las ediciones sobre el odontograma vivo (piezas no seteadas
//     valen Sano) y sanea los estados.
//  4. En una transacción: sobreescribe el odontograma vivo, descuenta cada
//     insumo con el decremento condicional atómico y crea la cita con el
//     snapshot demográfico tomado ANTES de cualquier actualización.
func (uc *CreateCitaUseCase) CreateCita(ctx context.Context, usuarioID string, in dto.CreateCitaRequest) (*dto.CitaResponse, error) {
	if in.PacienteID == "" || strings.TrimSpace(in.Motivo) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validarTratamientos(in.Tratamientos); err != nil {
		return nil, err
	}
	if err := validarLineas(in.Insumos); err != nil {
		return nil, err
	}

	paciente, err := uc.pacienteRepo.GetByID(in.PacienteID)
	if err != nil {
		return nil, err
	}
	if paciente == nil {
		return nil, domain.ErrNotFound
	}

	// Pre-validación de stock: todas las líneas antes de cualquier mutación.
	for _, linea := range in.Insumos {
		insumo, err := uc.insumoRepo.GetByID(linea.InsumoID)
		if err != nil {
			return nil, err
		}
		if insumo == nil {
			return nil, domain.ErrNotFound
		}
		if insumo.Cantidad < linea.Cantidad {
			return nil, domain.ErrInsufficientStock
		}
	}

	// Odontograma resultante de la visita: vivo (con Sano por defecto) + ediciones.
	base, err := odontograma.Normalizar(paciente.Odontograma)
	if err != nil {
		return nil, err
	}
	fusionado, err := odontograma.Merge(base, in.OdontogramaEdits)
	if err != nil {
		return nil, err
	}
	fusionado = odontograma.Sanitize(fusionado)

	// Snapshot demográfico previo a cualquier escritura de este flujo.
	datos := paciente.Snapshot()

	now := time.Now()
	fecha := now
	if in.Fecha != nil {
		fecha = *in.Fecha
	}

	consumos := make([]entity.InsumoConsumido, 0, len(in.Insumos))
	for _, linea := range in.Insumos {
		consumos = append(consumos, entity.InsumoConsumido{InsumoID: linea.InsumoID, Cantidad: linea.Cantidad})
	}

	nueva := &entity.Cita{
		ID:             uuid.New().String(),
		PacienteID:     paciente.ID,
		PacienteDatos:  datos,
		UsuarioID:      usuarioID,
		Motivo:         strings.TrimSpace(in.Motivo),
		Observaciones:  in.Observaciones,
		Tratamientos:   in.Tratamientos,
		Monto:          in.Monto,
		ReferenciaPago: in.ReferenciaPago,
		Insumos:        consumos,
		Odontograma:    fusionado,
		Fecha:          fecha,
		CreatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(
		citaRepo repository.CitaRepository,
		pacienteRepo repository.PacienteRepository,
		insumoRepo repository.InsumoRepository,
	) error {
		if err := pacienteRepo.UpdateOdontograma(paciente.ID, fusionado); err != nil {
			return err
		}
		for _, linea := range nueva.Insumos {
			// Decremento condicional: cantidad = cantidad - n solo si alcanza.
			// Si otra cita concurrente consumió el stock tras la pre-validación,
			// aquí falla y la transacción completa se revierte.
			if err := insumoRepo.Descontar(linea.InsumoID, linea.Cantidad); err != nil {
				return err
			}
		}
		return citaRepo.Create(nueva)
	})
	if err != nil {
		// La transacción revierte odontograma y stock; se deja rastro por si
		// el fallo ocurrió después de la pre-validación (conciliación manual).
		uc.log.Error().Err(err).
			Str("paciente_id", paciente.ID).
			Str("usuario_id", usuarioID).
			Msg("creación de cita revertida")
		return nil, err
	}

	return toCitaResponse(nueva), nil
}

// validarLineas exige líneas con insumo, cantidad positiva y a lo sumo una
// línea por insumo (la persistencia lleva una fila por cita e insumo).
func validarLineas(lineas []dto.InsumoLineaRequest) error {
	vistos := make(map[string]struct{}, len(lineas))
	for _, linea := range lineas {
		if linea.InsumoID == "" || linea.Cantidad <= 0 {
			return domain.ErrInvalidInput
		}
		if _, ok := vistos[linea.InsumoID]; ok {
			return domain.ErrInvalidInput
		}
		vistos[linea.InsumoID] = struct{}{}
	}
	return nil
}

func validarTratamientos(tratamientos []string) error {
	if len(tratamientos) > entity.MaxTratamientos {
		return domain.ErrInvalidInput
	}
	for _, t := range tratamientos {
		if !entity.TratamientoValido(t) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toCitaResponse(c *entity.Cita) *dto.CitaResponse {
	return &dto.CitaResponse{
		ID:             c.ID,
		PacienteID:     c.PacienteID,
		PacienteDatos:  c.PacienteDatos,
		UsuarioID:      c.UsuarioID,
		Motivo:         c.Motivo,
		Observaciones:  c.Observaciones,
		Tratamientos:   c.Tratamientos,
		Monto:          c.Monto,
		ReferenciaPago: c.ReferenciaPago,
		Insumos:        c.Insumos,
		Odontograma:    c.Odontograma,
		Fecha:          c.Fecha,
		CreatedAt:      c.CreatedAt,
	}
}
