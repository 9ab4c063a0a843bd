package perfil

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// FotoStorage guarda blobs opacos (fotos de perfil, imágenes del carrusel)
// bajo un nombre de archivo generado. El core nunca inspecciona el contenido.
type FotoStorage interface {
	Guardar(nombre string, contenido []byte) error
	Eliminar(nombre string) error
}

// PerfilUseCase gestiona el perfil público del odontólogo (1:1 con Usuario),
// leído por la home de marketing y el directorio de doctores.
type PerfilUseCase struct {
	perfilRepo repository.PerfilRepository
	storage    FotoStorage
}

// NewPerfilUseCase construye el caso de uso.
func NewPerfilUseCase(perfilRepo repository.PerfilRepository, storage FotoStorage) *PerfilUseCase {
	return &PerfilUseCase{perfilRepo: perfilRepo, storage: storage}
}

// Upsert crea o actualiza el perfil del usuario autenticado.
func (uc *PerfilUseCase) Upsert(usuarioID string, in dto.UpsertPerfilRequest) (*dto.PerfilResponse, error) {
	if usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p, err := uc.perfilRepo.GetByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &entity.Perfil{
			ID:        uuid.New().String(),
			UsuarioID: usuarioID,
			CreatedAt: now,
		}
	}

	if in.FechaNacimiento != "" {
		fecha, err := time.Parse("2006-01-02", in.FechaNacimiento)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		p.FechaNacimiento = fecha
	}
	p.Telefono = in.Telefono
	p.Direccion = in.Direccion
	p.Especialidad = in.Especialidad
	p.Matricula = in.Matricula
	p.Biografia = in.Biografia
	p.DiasTrabajo = in.DiasTrabajo
	p.HorarioInicio = in.HorarioInicio
	p.HorarioFin = in.HorarioFin
	p.UpdatedAt = now

	if err := uc.perfilRepo.Upsert(p); err != nil {
		return nil, err
	}
	return toPerfilResponse(p), nil
}

// GetByUsuario obtiene el perfil de un usuario; nil si no existe.
func (uc *PerfilUseCase) GetByUsuario(usuarioID string) (*dto.PerfilResponse, error) {
	p, err := uc.perfilRepo.GetByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPerfilResponse(p), nil
}

// ListPublico lista los perfiles del directorio de doctores (sin auth).
func (uc *PerfilUseCase) ListPublico() ([]dto.PerfilResponse, error) {
	perfiles, err := uc.perfilRepo.ListPublico()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PerfilResponse, 0, len(perfiles))
	for _, p := range perfiles {
		out = append(out, *toPerfilResponse(p))
	}
	return out, nil
}

// SubirFoto guarda la foto como blob opaco con nombre generado y la asocia al
// perfil; la extensión viene del cliente, el contenido no se inspecciona.
func (uc *PerfilUseCase) SubirFoto(usuarioID, extension string, contenido []byte) (*dto.PerfilResponse, error) {
	p, err := uc.perfilRepo.GetByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	nombre := uuid.New().String() + extension
	if err := uc.storage.Guardar(nombre, contenido); err != nil {
		return nil, err
	}
	anterior := p.Foto
	p.Foto = nombre
	p.UpdatedAt = time.Now()
	if err := uc.perfilRepo.Upsert(p); err != nil {
		return nil, err
	}
	if anterior != "" {
		_ = uc.storage.Eliminar(anterior)
	}
	return toPerfilResponse(p), nil
}

func toPerfilResponse(p *entity.Perfil) *dto.PerfilResponse {
	fecha := ""
	if !p.FechaNacimiento.IsZero() {
		fecha = p.FechaNacimiento.Format("2006-01-02")
	}
	return &dto.PerfilResponse{
		ID:              p.ID,
		UsuarioID:       p.UsuarioID,
		Telefono:        p.Telefono,
		Direccion:       p.Direccion,
		FechaNacimiento: fecha,
		Especialidad:    p.Especialidad,
		Matricula:       p.Matricula,
		Biografia:       p.Biografia,
		Foto:            p.Foto,
		DiasTrabajo:     p.DiasTrabajo,
		HorarioInicio:   p.HorarioInicio,
		HorarioFin:      p.HorarioFin,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
