package insumo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/application/insumo"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
)

type memInsumoRepo struct {
	insumos map[string]*entity.Insumo
}

func newMemInsumoRepo() *memInsumoRepo { return &memInsumoRepo{insumos: map[string]*entity.Insumo{}} }

func (r *memInsumoRepo) Create(i *entity.Insumo) error { r.insumos[i.ID] = i; return nil }
func (r *memInsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, nil
	}
	return i, nil
}
func (r *memInsumoRepo) GetByNombre(normalizado string) (*entity.Insumo, error) {
	for _, i := range r.insumos {
		if insumo.NormalizarNombre(i.Nombre) == normalizado {
			return i, nil
		}
	}
	return nil, nil
}
func (r *memInsumoRepo) List(limit, offset int) ([]*entity.Insumo, error) {
	out := make([]*entity.Insumo, 0, len(r.insumos))
	for _, i := range r.insumos {
		out = append(out, i)
	}
	return out, nil
}
func (r *memInsumoRepo) Update(i *entity.Insumo) error { r.insumos[i.ID] = i; return nil }
func (r *memInsumoRepo) Restock(id string, cantidad int) error {
	i, ok := r.insumos[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Cantidad += cantidad
	return nil
}
func (r *memInsumoRepo) Descontar(id string, cantidad int) error {
	i, ok := r.insumos[id]
	if !ok {
		return domain.ErrNotFound
	}
	if i.Cantidad < cantidad {
		return domain.ErrInsufficientStock
	}
	i.Cantidad -= cantidad
	return nil
}
func (r *memInsumoRepo) Delete(id string) error { delete(r.insumos, id); return nil }

func TestCreateInsumo_NombreDuplicadoNormalizado(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())

	_, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Algodón", Cantidad: 10})
	require.NoError(t, err)

	// Mismo nombre con acentos/mayúsculas/espacios distintos.
	_, err = uc.Create("u1", dto.CreateInsumoRequest{Nombre: "  ALGODON ", Cantidad: 5})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"la unicidad compara sin acentos, mayúsculas ni espacios sobrantes")
}

func TestCreateInsumo_CantidadNegativa(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())
	_, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Gasa", Cantidad: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInsumo_PrecioNegativo(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())
	_, err := uc.Create("u1", dto.CreateInsumoRequest{
		Nombre: "Gasa", PrecioUnitario: decimal.NewFromInt(-3),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRestockInsumo_AcumulaSobreExistente(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())

	creado, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Anestesia", Cantidad: 10})
	require.NoError(t, err)

	out, err := uc.Restock(creado.ID, dto.RestockInsumoRequest{Cantidad: 25})
	require.NoError(t, err)
	assert.Equal(t, 35, out.Cantidad, "restock suma sobre el stock existente")
	assert.Equal(t, entity.InsumoDisponible, out.Estado)
}

func TestRestockInsumo_CantidadNoPositiva(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())
	creado, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Anestesia", Cantidad: 10})
	require.NoError(t, err)

	_, err = uc.Restock(creado.ID, dto.RestockInsumoRequest{Cantidad: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Restock(creado.ID, dto.RestockInsumoRequest{Cantidad: -5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateInsumo_NoTocaCantidad(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())
	creado, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Resina", Cantidad: 7})
	require.NoError(t, err)

	desc := "Resina compuesta A2"
	out, err := uc.Update(creado.ID, dto.UpdateInsumoRequest{Descripcion: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Resina compuesta A2", out.Descripcion)
	assert.Equal(t, 7, out.Cantidad, "la edición descriptiva no altera el stock")
}

func TestInsumoResponse_EstadoDerivado(t *testing.T) {
	uc := insumo.NewInsumoUseCase(newMemInsumoRepo())

	agotado, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Hilo retractor", Cantidad: 0})
	require.NoError(t, err)
	assert.Equal(t, entity.InsumoAgotado, agotado.Estado)

	bajo, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Fluoruro", Cantidad: 5})
	require.NoError(t, err)
	assert.Equal(t, entity.InsumoStockBajo, bajo.Estado)

	disponible, err := uc.Create("u1", dto.CreateInsumoRequest{Nombre: "Guantes", Cantidad: 6})
	require.NoError(t, err)
	assert.Equal(t, entity.InsumoDisponible, disponible.Estado)
}

func TestNormalizarNombre(t *testing.T) {
	casos := []struct {
		in, out string
	}{
		{"Algodón", "algodon"},
		{"  ANESTESIA   Lidocaína ", "anestesia lidocaina"},
		{"Águja  23G", "aguja 23g"},
		{"gasa", "gasa"},
	}
	for _, c := range casos {
		assert.Equal(t, c.out, insumo.NormalizarNombre(c.in))
	}
}
