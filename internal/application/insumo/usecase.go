package insumo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// InsumoUseCase casos de uso sobre el inventario de insumos clínicos.
// El stock solo sube por Restock y solo baja por el flujo de citas
// (decremento condicional dentro de su transacción); aquí no hay consumo.
type InsumoUseCase struct {
	insumoRepo repository.InsumoRepository
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(insumoRepo repository.InsumoRepository) *InsumoUseCase {
	return &InsumoUseCase{insumoRepo: insumoRepo}
}

// Create registra un insumo nuevo. El nombre se compara normalizado
// (trim + sin acentos + minúsculas); colisión → ErrDuplicate.
func (uc *InsumoUseCase) Create(usuarioID string, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad < 0 || in.PrecioUnitario.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	existente, err := uc.insumoRepo.GetByNombre(NormalizarNombre(nombre))
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	i := &entity.Insumo{
		ID:             uuid.New().String(),
		Nombre:         nombre,
		Descripcion:    in.Descripcion,
		Cantidad:       in.Cantidad,
		UnidadMedida:   in.UnidadMedida,
		PrecioUnitario: in.PrecioUnitario,
		UsuarioID:      usuarioID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.insumoRepo.Create(i); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

// GetByID obtiene un insumo; nil si no existe.
func (uc *InsumoUseCase) GetByID(id string) (*dto.InsumoResponse, error) {
	i, err := uc.insumoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, nil
	}
	return toInsumoResponse(i), nil
}

// List lista insumos con paginación.
func (uc *InsumoUseCase) List(limit, offset int) (*dto.InsumoListResponse, error) {
	insumos, err := uc.insumoRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.InsumoListResponse{
		Items: make([]dto.InsumoResponse, 0, len(insumos)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, i := range insumos {
		out.Items = append(out.Items, *toInsumoResponse(i))
	}
	return out, nil
}

// Update edita descripción, unidad y precio. No toca la cantidad.
func (uc *InsumoUseCase) Update(id string, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	i, err := uc.insumoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if in.Descripcion != nil {
		i.Descripcion = *in.Descripcion
	}
	if in.UnidadMedida != nil {
		i.UnidadMedida = *in.UnidadMedida
	}
	if in.PrecioUnitario != nil {
		if in.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		i.PrecioUnitario = *in.PrecioUnitario
	}
	i.UpdatedAt = time.Now()
	if err := uc.insumoRepo.Update(i); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

// Restock suma cantidad al stock existente; cantidad debe ser > 0.
func (uc *InsumoUseCase) Restock(id string, in dto.RestockInsumoRequest) (*dto.InsumoResponse, error) {
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	i, err := uc.insumoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.insumoRepo.Restock(id, in.Cantidad); err != nil {
		return nil, err
	}
	i.Cantidad += in.Cantidad
	i.UpdatedAt = time.Now()
	return toInsumoResponse(i), nil
}

// Delete elimina un insumo. Las citas históricas conservan sus líneas de
// consumo por referencia.
func (uc *InsumoUseCase) Delete(id string) error {
	i, err := uc.insumoRepo.GetByID(id)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	return uc.insumoRepo.Delete(id)
}

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:             i.ID,
		Nombre:         i.Nombre,
		Descripcion:    i.Descripcion,
		Cantidad:       i.Cantidad,
		UnidadMedida:   i.UnidadMedida,
		PrecioUnitario: i.PrecioUnitario,
		Estado:         i.Estado(),
		UsuarioID:      i.UsuarioID,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
