package repository

import "github.com/clinident/clinident-api/internal/domain/entity"

// PerfilRepository define el puerto de persistencia para Perfil (1:1 con Usuario).
type PerfilRepository interface {
	Upsert(p *entity.Perfil) error
	GetByUsuario(usuarioID string) (*entity.Perfil, error)
	// ListPublico retorna los perfiles visibles en el directorio de doctores.
	ListPublico() ([]*entity.Perfil, error)
	Delete(usuarioID string) error
}
