package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinident/clinident-api/internal/application/auth"
	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
)

// fakeUsuarioRepo repositorio en memoria indexado por email, con un error
// inyectable para simular fallos de la base.
type fakeUsuarioRepo struct {
	porEmail map[string]*entity.Usuario
	errLeer  error
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{porEmail: map[string]*entity.Usuario{}}
}

func (r *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	r.porEmail[u.Email] = u
	return nil
}

func (r *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	for _, u := range r.porEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUsuarioRepo) FindByEmail(email string) (*entity.Usuario, error) {
	if r.errLeer != nil {
		return nil, r.errLeer
	}
	u, ok := r.porEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) { return nil, nil }

func cfgDePrueba() auth.JWTConfig {
	return auth.JWTConfig{Secret: "secreto-de-prueba", ExpMinutes: 5, Issuer: "clinident"}
}

func conUsuario(t *testing.T, repo *fakeUsuarioRepo, email, password, status string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	repo.porEmail[email] = &entity.Usuario{
		ID:           "u-" + email,
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       email,
		Rol:          entity.RolOdontologo,
		Status:       status,
	}
}

func TestRegisterUsuario_RolPorDefectoOdontologo(t *testing.T) {
	repo := newFakeUsuarioRepo()
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	out, err := uc.RegisterUsuario(dto.RegisterRequest{
		Email: "dra@clinica.com", Password: "supersecreta",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolOdontologo, out.Rol)
	assert.Equal(t, "dra@clinica.com", out.Nombre, "sin nombre, usa el email")
	assert.Equal(t, "active", out.Status)
}

func TestRegisterUsuario_RolDesconocido(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUsuarioRepo(), cfgDePrueba())

	_, err := uc.RegisterUsuario(dto.RegisterRequest{
		Email: "x@clinica.com", Password: "supersecreta", Rol: "superusuario",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUsuario_EmailDuplicado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	conUsuario(t, repo, "dra@clinica.com", "otra", "active")
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	_, err := uc.RegisterUsuario(dto.RegisterRequest{
		Email: "dra@clinica.com", Password: "supersecreta",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterUsuario_FalloDeLecturaNoSeTragaComoEmailLibre(t *testing.T) {
	// Si la búsqueda del email falla, el registro debe abortar con ese error,
	// no continuar como si el email estuviera disponible.
	repo := newFakeUsuarioRepo()
	repo.errLeer = errors.New("conexión perdida")
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	_, err := uc.RegisterUsuario(dto.RegisterRequest{
		Email: "dra@clinica.com", Password: "supersecreta",
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "conexión perdida")
	assert.Empty(t, repo.porEmail, "no debe crear el usuario tras el fallo")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUsuarioRepo()
	conUsuario(t, repo, "dra@clinica.com", "correcta", "active")
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	_, err := uc.Login(dto.LoginRequest{Email: "dra@clinica.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUsuarioRepo()
	conUsuario(t, repo, "dra@clinica.com", "correcta", "inactive")
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	_, err := uc.Login(dto.LoginRequest{Email: "dra@clinica.com", Password: "correcta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_EmiteTokenYUsuario(t *testing.T) {
	repo := newFakeUsuarioRepo()
	conUsuario(t, repo, "dra@clinica.com", "correcta", "active")
	uc := auth.NewAuthUseCase(repo, cfgDePrueba())

	out, err := uc.Login(dto.LoginRequest{Email: "dra@clinica.com", Password: "correcta"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "dra@clinica.com", out.Usuario.Email)
}
