package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

var _ repository.PerfilRepository = (*PerfilRepo)(nil)

// PerfilRepo implementación de PerfilRepository sobre PostgreSQL.
type PerfilRepo struct {
	q Querier
}

func NewPerfilRepository(q Querier) *PerfilRepo {
	return &PerfilRepo{q: q}
}

const perfilColumns = `id, usuario_id, telefono, direccion, fecha_nacimiento, especialidad, matricula,
		biografia, foto, dias_trabajo, horario_inicio, horario_fin, created_at, updated_at`

// Upsert crea o reemplaza el perfil del usuario (usuario_id es único).
func (r *PerfilRepo) Upsert(p *entity.Perfil) error {
	query := `
		INSERT INTO perfiles (` + perfilColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (usuario_id) DO UPDATE SET
			telefono = EXCLUDED.telefono,
			direccion = EXCLUDED.direccion,
			fecha_nacimiento = EXCLUDED.fecha_nacimiento,
			especialidad = EXCLUDED.especialidad,
			matricula = EXCLUDED.matricula,
			biografia = EXCLUDED.biografia,
			foto = EXCLUDED.foto,
			dias_trabajo = EXCLUDED.dias_trabajo,
			horario_inicio = EXCLUDED.horario_inicio,
			horario_fin = EXCLUDED.horario_fin,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UsuarioID, p.Telefono, p.Direccion, p.FechaNacimiento, p.Especialidad, p.Matricula,
		p.Biografia, p.Foto, p.DiasTrabajo, p.HorarioInicio, p.HorarioFin, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert perfil: %w", err)
	}
	return nil
}

// GetByUsuario obtiene el perfil de un usuario; nil si no existe.
func (r *PerfilRepo) GetByUsuario(usuarioID string) (*entity.Perfil, error) {
	query := `SELECT ` + perfilColumns + ` FROM perfiles WHERE usuario_id = $1`
	p, err := scanPerfil(r.q.QueryRow(context.Background(), query, usuarioID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get perfil: %w", err)
	}
	return p, nil
}

// ListPublico retorna los perfiles de odontólogos activos para el directorio.
func (r *PerfilRepo) ListPublico() ([]*entity.Perfil, error) {
	query := `
		SELECT ` + qualifyPerfilColumns("p") + `
		FROM perfiles p
		JOIN usuarios u ON u.id = p.usuario_id
		WHERE u.rol = 'odontologo' AND u.status = 'active'
		ORDER BY p.created_at ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list perfiles públicos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Perfil
	for rows.Next() {
		p, err := scanPerfil(rows)
		if err != nil {
			return nil, fmt.Errorf("scan perfil: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el perfil de un usuario.
func (r *PerfilRepo) Delete(usuarioID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM perfiles WHERE usuario_id = $1`, usuarioID)
	if err != nil {
		return fmt.Errorf("delete perfil: %w", err)
	}
	return nil
}

func qualifyPerfilColumns(alias string) string {
	return alias + `.id, ` + alias + `.usuario_id, ` + alias + `.telefono, ` + alias + `.direccion, ` +
		alias + `.fecha_nacimiento, ` + alias + `.especialidad, ` + alias + `.matricula, ` +
		alias + `.biografia, ` + alias + `.foto, ` + alias + `.dias_trabajo, ` +
		alias + `.horario_inicio, ` + alias + `.horario_fin, ` + alias + `.created_at, ` + alias + `.updated_at`
}

func scanPerfil(row pgx.Row) (*entity.Perfil, error) {
	var p entity.Perfil
	err := row.Scan(
		&p.ID, &p.UsuarioID, &p.Telefono, &p.Direccion, &p.FechaNacimiento, &p.Especialidad, &p.Matricula,
		&p.Biografia, &p.Foto, &p.DiasTrabajo, &p.HorarioInicio, &p.HorarioFin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
