// Package storage guarda blobs opacos (fotos de perfil) en disco local.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinident/clinident-api/internal/application/perfil"
	"github.com/clinident/clinident-api/internal/domain"
)

var _ perfil.FotoStorage = (*LocalStorage)(nil)

// LocalStorage implementa perfil.FotoStorage sobre un directorio local.
// Los nombres vienen ya generados (uuid + extensión); se rechaza cualquier
// nombre que escape del directorio base.
type LocalStorage struct {
	dir string
}

// NewLocalStorage crea el directorio base si no existe.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de storage: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Guardar escribe el blob bajo el nombre dado.
func (s *LocalStorage) Guardar(nombre string, contenido []byte) error {
	path, err := s.resolve(nombre)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, contenido, 0o644); err != nil {
		return fmt.Errorf("guardar archivo: %w", err)
	}
	return nil
}

// Eliminar borra el blob; no es error que ya no exista.
func (s *LocalStorage) Eliminar(nombre string) error {
	path, err := s.resolve(nombre)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar archivo: %w", err)
	}
	return nil
}

// Leer devuelve el contenido del blob; domain.ErrNotFound si no existe.
func (s *LocalStorage) Leer(nombre string) ([]byte, error) {
	path, err := s.resolve(nombre)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return data, nil
}

func (s *LocalStorage) resolve(nombre string) (string, error) {
	clean := filepath.Base(nombre)
	if clean != nombre || strings.ContainsAny(nombre, `/\`) || nombre == "." || nombre == "" {
		return "", domain.ErrInvalidInput
	}
	return filepath.Join(s.dir, clean), nil
}
