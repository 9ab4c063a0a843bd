package repository

import "github.com/clinident/clinident-api/internal/domain/entity"

// InsumoRepository define el puerto de persistencia para Insumo.
// Descontar es el decremento condicional atómico (cantidad - n si cantidad >= n);
// debe retornar domain.ErrInsufficientStock cuando el stock no alcanza, sin
// dejar la cantidad en negativo. Usado dentro de la transacción de citas.
type InsumoRepository interface {
	Create(i *entity.Insumo) error
	GetByID(id string) (*entity.Insumo, error)
	GetByNombre(nombreNormalizado string) (*entity.Insumo, error)
	List(limit, offset int) ([]*entity.Insumo, error)
	Update(i *entity.Insumo) error
	Restock(id string, cantidad int) error
	Descontar(id string, cantidad int) error
	Delete(id string) error
}
