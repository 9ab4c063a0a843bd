package cita_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinident/clinident-api/internal/application/cita"
	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/odontograma"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePacienteRepo struct {
	pacientes map[string]*entity.Paciente
}

func newFakePacienteRepo() *fakePacienteRepo {
	return &fakePacienteRepo{pacientes: map[string]*entity.Paciente{}}
}

func (r *fakePacienteRepo) Create(p *entity.Paciente) error {
	r.pacientes[p.ID] = p
	return nil
}
func (r *fakePacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	p, ok := r.pacientes[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakePacienteRepo) GetByCedula(cedula string) (*entity.Paciente, error) {
	for _, p := range r.pacientes {
		if p.Cedula == cedula {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakePacienteRepo) List(limit, offset int) ([]*entity.Paciente, error) { return nil, nil }
func (r *fakePacienteRepo) Update(p *entity.Paciente) error                    { return nil }
func (r *fakePacienteRepo) UpdateOdontograma(id string, chart []entity.Diente) error {
	p, ok := r.pacientes[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Odontograma = append([]entity.Diente(nil), chart...)
	return nil
}
func (r *fakePacienteRepo) Delete(id string) error {
	delete(r.pacientes, id)
	return nil
}

type fakeInsumoRepo struct {
	insumos map[string]*entity.Insumo
}

func newFakeInsumoRepo() *fakeInsumoRepo {
	return &fakeInsumoRepo{insumos: map[string]*entity.Insumo{}}
}

func (r *fakeInsumoRepo) Create(i *entity.Insumo) error { r.insumos[i.ID] = i; return nil }
func (r *fakeInsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}
func (r *fakeInsumoRepo) GetByNombre(n string) (*entity.Insumo, error)      { return nil, nil }
func (r *fakeInsumoRepo) List(limit, offset int) ([]*entity.Insumo, error)  { return nil, nil }
func (r *fakeInsumoRepo) Update(i *entity.Insumo) error                     { return nil }
func (r *fakeInsumoRepo) Restock(id string, cantidad int) error {
	i, ok := r.insumos[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Cantidad += cantidad
	return nil
}

// Descontar replica la semántica del decremento condicional: solo muta si alcanza.
func (r *fakeInsumoRepo) Descontar(id string, cantidad int) error {
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
func (r *fakeInsumoRepo) Delete(id string) error { delete(r.insumos, id); return nil }

type fakeCitaRepo struct {
	citas map[string]*entity.Cita
}

func newFakeCitaRepo() *fakeCitaRepo { return &fakeCitaRepo{citas: map[string]*entity.Cita{}} }

func (r *fakeCitaRepo) Create(c *entity.Cita) error { r.citas[c.ID] = c; return nil }
func (r *fakeCitaRepo) GetByID(id string) (*entity.Cita, error) {
	c, ok := r.citas[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeCitaRepo) Update(c *entity.Cita) error { r.citas[c.ID] = c; return nil }
func (r *fakeCitaRepo) Delete(id string) error      { delete(r.citas, id); return nil }
func (r *fakeCitaRepo) ListByUsuario(uid string, limit, offset int) ([]*entity.Cita, error) {
	return nil, nil
}
func (r *fakeCitaRepo) ListByPaciente(pid string, limit, offset int) ([]*entity.Cita, error) {
	return nil, nil
}
func (r *fakeCitaRepo) GetUltimaByPaciente(pid string) (*entity.Cita, error) { return nil, nil }

// fakeTxRunner emula la atomicidad: toma un snapshot del estado antes de fn y
// lo restaura si fn falla, igual que el rollback de la transacción real.
type fakeTxRunner struct {
	citaRepo     *fakeCitaRepo
	pacienteRepo *fakePacienteRepo
	insumoRepo   *fakeInsumoRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	citaRepo repository.CitaRepository,
	pacienteRepo repository.PacienteRepository,
	insumoRepo repository.InsumoRepository,
) error) error {
	citasBk := snapshotCitas(tr.citaRepo.citas)
	pacientesBk := snapshotPacientes(tr.pacienteRepo.pacientes)
	insumosBk := snapshotInsumos(tr.insumoRepo.insumos)

	if err := fn(tr.citaRepo, tr.pacienteRepo, tr.insumoRepo); err != nil {
		tr.citaRepo.citas = citasBk
		tr.pacienteRepo.pacientes = pacientesBk
		tr.insumoRepo.insumos = insumosBk
		return err
	}
	return nil
}

func snapshotCitas(m map[string]*entity.Cita) map[string]*entity.Cita {
	out := make(map[string]*entity.Cita, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}
func snapshotPacientes(m map[string]*entity.Paciente) map[string]*entity.Paciente {
	out := make(map[string]*entity.Paciente, len(m))
	for k, v := range m {
		cp := *v
		cp.Odontograma = append([]entity.Diente(nil), v.Odontograma...)
		out[k] = &cp
	}
	return out
}
func snapshotInsumos(m map[string]*entity.Insumo) map[string]*entity.Insumo {
	out := make(map[string]*entity.Insumo, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *cita.CreateCitaUseCase
	pacientes *fakePacienteRepo
	insumos   *fakeInsumoRepo
	citas     *fakeCitaRepo
}

func newFixture() *fixture {
	pacientes := newFakePacienteRepo()
	insumos := newFakeInsumoRepo()
	citas := newFakeCitaRepo()
	tx := &fakeTxRunner{citaRepo: citas, pacienteRepo: pacientes, insumoRepo: insumos}
	uc := cita.NewCreateCitaUseCase(tx, pacientes, insumos, zerolog.Nop())
	return &fixture{uc: uc, pacientes: pacientes, insumos: insumos, citas: citas}
}

func (f *fixture) conPaciente(id string) *entity.Paciente {
	p := &entity.Paciente{
		ID:          id,
		Nombre:      "María Pérez",
		Cedula:      "V-12345678",
		Edad:        34,
		Sexo:        "F",
		Telefono:    "0414-5551234",
		Alergias:    "Penicilina",
		Odontograma: odontograma.Completo(),
	}
	f.pacientes.pacientes[id] = p
	return p
}

func (f *fixture) conInsumo(id string, cantidad int) *entity.Insumo {
	i := &entity.Insumo{ID: id, Nombre: "Anestesia lidocaína", Cantidad: cantidad}
	f.insumos.insumos[id] = i
	return i
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCita_StockExactoQuedaEnCero(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	f.conInsumo("i1", 3)

	out, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Limpieza semestral",
		Insumos:    []dto.InsumoLineaRequest{{InsumoID: "i1", Cantidad: 3}},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	i := f.insumos.insumos["i1"]
	assert.Equal(t, 0, i.Cantidad, "consumir el stock exacto debe dejarlo en cero")
	assert.Equal(t, entity.InsumoAgotado, i.Estado(), "stock cero deriva estado Agotado")
}

func TestCreateCita_StockInsuficienteNoMutaNada(t *testing.T) {
	f := newFixture()
	p := f.conPaciente("p1")
	f.conInsumo("i1", 2)
	chartAntes := append([]entity.Diente(nil), p.Odontograma...)

	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID:       "p1",
		Motivo:           "Endodoncia",
		Insumos:          []dto.InsumoLineaRequest{{InsumoID: "i1", Cantidad: 5}},
		OdontogramaEdits: []entity.Diente{{Numero: 8, Estado: entity.EstadoCariado}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, f.insumos.insumos["i1"].Cantidad, "el stock no debe cambiar")
	assert.Empty(t, f.citas.citas, "no debe quedar cita registrada")
	assert.Equal(t, chartAntes, f.pacientes.pacientes["p1"].Odontograma,
		"el odontograma vivo no debe cambiar")
}

func TestCreateCita_MultiInsumo_TodoONada(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	f.conInsumo("i1", 10)
	f.conInsumo("i2", 1)

	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Extracción",
		Insumos: []dto.InsumoLineaRequest{
			{InsumoID: "i1", Cantidad: 2},
			{InsumoID: "i2", Cantidad: 4}, // insuficiente
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La línea válida tampoco debe haberse descontado.
	assert.Equal(t, 10, f.insumos.insumos["i1"].Cantidad)
	assert.Equal(t, 1, f.insumos.insumos["i2"].Cantidad)
	assert.Empty(t, f.citas.citas)
}

func TestCreateCita_EdicionDePieza_ActualizaVivoYCongelaSnapshot(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")

	out, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID:       "p1",
		Motivo:           "Control",
		Tratamientos:     []string{"Restauración"},
		Monto:            decimal.NewFromInt(50),
		OdontogramaEdits: []entity.Diente{{Numero: 8, Estado: entity.EstadoCariado}},
	})
	require.NoError(t, err)

	// El snapshot de la cita tiene las 32 piezas, con la 8 editada.
	require.Len(t, out.Odontograma, entity.TotalDientes)
	for _, d := range out.Odontograma {
		if d.Numero == 8 {
			assert.Equal(t, entity.EstadoCariado, d.Estado)
		} else {
			assert.Equal(t, entity.EstadoSano, d.Estado)
		}
	}

	// El odontograma vivo del paciente quedó igual al de la cita.
	vivo := f.pacientes.pacientes["p1"].Odontograma
	assert.Equal(t, out.Odontograma, vivo, "vivo y snapshot deben coincidir al cierre de la visita")

	// Snapshot demográfico congelado en la cita.
	assert.Equal(t, "María Pérez", out.PacienteDatos.Nombre)
	assert.Equal(t, "V-12345678", out.PacienteDatos.Cedula)
	assert.Equal(t, "Penicilina", out.PacienteDatos.Alergias)
}

func TestCreateCita_SnapshotNoSigueCambiosPosteriores(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")

	out, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Control",
	})
	require.NoError(t, err)

	// La ficha viva cambia después de la cita; el snapshot ya congelado no.
	f.pacientes.pacientes["p1"].Nombre = "María Pérez de González"

	guardada, err := f.citas.GetByID(out.ID)
	require.NoError(t, err)
	assert.Equal(t, "María Pérez", guardada.PacienteDatos.Nombre,
		"la cita conserva los datos del momento de la visita")
}

func TestCreateCita_PacienteInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "no-existe",
		Motivo:     "Control",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCita_InsumoInexistente(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Control",
		Insumos:    []dto.InsumoLineaRequest{{InsumoID: "fantasma", Cantidad: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCita_TratamientosInvalidos(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")

	casos := map[string][]string{
		"etiqueta fuera del vocabulario": {"Acupuntura"},
		"más de tres tratamientos":       {"Limpieza", "Corona", "Sellante", "Implante"},
	}
	for nombre, tratamientos := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
				PacienteID:   "p1",
				Motivo:       "Control",
				Tratamientos: tratamientos,
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateCita_MotivoVacio(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCita_LineaConCantidadCero(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	f.conInsumo("i1", 5)
	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Control",
		Insumos:    []dto.InsumoLineaRequest{{InsumoID: "i1", Cantidad: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCita_LineasDuplicadasDelMismoInsumo(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")
	f.conInsumo("i1", 10)

	_, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID: "p1",
		Motivo:     "Restauración",
		Insumos: []dto.InsumoLineaRequest{
			{InsumoID: "i1", Cantidad: 2},
			{InsumoID: "i1", Cantidad: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"dos líneas del mismo insumo deben rechazarse en la validación")
	assert.Equal(t, 10, f.insumos.insumos["i1"].Cantidad, "el stock no debe moverse")
	assert.Empty(t, f.citas.citas, "no debe crearse la cita")
}

func TestCreateCita_EstadoInvalidoSeCoerceASano(t *testing.T) {
	f := newFixture()
	f.conPaciente("p1")

	out, err := f.uc.CreateCita(context.Background(), "u1", dto.CreateCitaRequest{
		PacienteID:       "p1",
		Motivo:           "Control",
		OdontogramaEdits: []entity.Diente{{Numero: 3, Estado: "Brillante"}},
	})
	require.NoError(t, err)

	for _, d := range out.Odontograma {
		if d.Numero == 3 {
			assert.Equal(t, entity.EstadoSano, d.Estado,
				"un estado fuera del vocabulario se sanea a Sano")
		}
	}
}
