package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinident/clinident-api/internal/application/insumo"
	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación de InsumoRepository sobre PostgreSQL.
// La columna nombre_normalizado respalda la unicidad sin acentos/mayúsculas.
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

const insumoColumns = `id, nombre, descripcion, cantidad, unidad_medida, precio_unitario, usuario_id, created_at, updated_at`

// Create persiste un insumo nuevo. Nombre normalizado duplicado → ErrDuplicate.
func (r *InsumoRepo) Create(i *entity.Insumo) error {
	query := `
		INSERT INTO insumos (id, nombre, nombre_normalizado, descripcion, cantidad, unidad_medida, precio_unitario, usuario_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.Nombre, insumo.NormalizarNombre(i.Nombre), i.Descripcion, i.Cantidad,
		i.UnidadMedida, i.PrecioUnitario, i.UsuarioID, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID; nil si no existe.
func (r *InsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	return r.getBy(`id = $1`, id)
}

// GetByNombre busca por el nombre ya normalizado; nil si no existe.
func (r *InsumoRepo) GetByNombre(nombreNormalizado string) (*entity.Insumo, error) {
	return r.getBy(`nombre_normalizado = $1`, nombreNormalizado)
}

func (r *InsumoRepo) getBy(where string, arg any) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE ` + where
	i, err := scanInsumo(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return i, nil
}

// List lista insumos con paginación, por nombre.
func (r *InsumoRepo) List(limit, offset int) ([]*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos ORDER BY nombre_normalizado ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		i, err := scanInsumo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos. No toca la cantidad: el stock solo
// cambia vía Restock y Descontar.
func (r *InsumoRepo) Update(i *entity.Insumo) error {
	query := `
		UPDATE insumos SET nombre = $2, nombre_normalizado = $3, descripcion = $4,
			unidad_medida = $5, precio_unitario = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.Nombre, insumo.NormalizarNombre(i.Nombre), i.Descripcion,
		i.UnidadMedida, i.PrecioUnitario, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update insumo: %w", err)
	}
	return nil
}

// Restock incrementa la cantidad disponible.
func (r *InsumoRepo) Restock(id string, cantidad int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE insumos SET cantidad = cantidad + $2, updated_at = now() WHERE id = $1`,
		id, cantidad,
	)
	if err != nil {
		return fmt.Errorf("restock insumo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Descontar descuenta stock solo si alcanza; la condición cantidad >= n en el
// WHERE hace el chequeo y el decremento en una sola sentencia, así el stock
// nunca queda negativo aun con citas concurrentes.
func (r *InsumoRepo) Descontar(id string, cantidad int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE insumos SET cantidad = cantidad - $2, updated_at = now() WHERE id = $1 AND cantidad >= $2`,
		id, cantidad,
	)
	if err != nil {
		return fmt.Errorf("descontar insumo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Distinguir inexistente de stock insuficiente.
		existing, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Delete elimina el insumo por ID.
func (r *InsumoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM insumos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insumo: %w", err)
	}
	return nil
}

func scanInsumo(row pgx.Row) (*entity.Insumo, error) {
	var i entity.Insumo
	err := row.Scan(
		&i.ID, &i.Nombre, &i.Descripcion, &i.Cantidad, &i.UnidadMedida,
		&i.PrecioUnitario, &i.UsuarioID, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
