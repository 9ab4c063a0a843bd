package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinident/clinident-api/internal/domain"
	"github.com/clinident/clinident-api/internal/domain/entity"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

var _ repository.PacienteRepository = (*PacienteRepo)(nil)

// PacienteRepo implementación de PacienteRepository sobre PostgreSQL
// (usable con pool o tx). El odontograma vivo se guarda como JSONB.
type PacienteRepo struct {
	q Querier
}

// NewPacienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPacienteRepository(q Querier) *PacienteRepo {
	return &PacienteRepo{q: q}
}

const pacienteColumns = `id, nombre, cedula, fecha_nacimiento, edad, sexo, telefono, telefono_emergencia,
		direccion, ocupacion, grupo_sanguineo, alergias, enfermedades_cronicas, medicamentos,
		condiciones_especiales, cirugias, antecedentes_familiares, usuario_id, odontograma, created_at, updated_at`

// Create persiste una ficha nueva. Cédula duplicada (índice único) → ErrDuplicate.
func (r *PacienteRepo) Create(p *entity.Paciente) error {
	chart, err := json.Marshal(p.Odontograma)
	if err != nil {
		return fmt.Errorf("marshal odontograma: %w", err)
	}
	query := `
		INSERT INTO pacientes (` + pacienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Cedula, p.FechaNacimiento, p.Edad, p.Sexo, p.Telefono, p.TelefonoEmergencia,
		p.Direccion, p.Ocupacion, p.GrupoSanguineo, p.Alergias, p.EnfermedadesCronicas, p.Medicamentos,
		p.CondicionesEspeciales, p.Cirugias, p.AntecedentesFamiliares, p.UsuarioID, chart, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert paciente: %w", err)
	}
	return nil
}

// GetByID obtiene una ficha por ID; nil si no existe.
func (r *PacienteRepo) GetByID(id string) (*entity.Paciente, error) {
	return r.getBy(`id = $1`, id)
}

// GetByCedula obtiene una ficha por cédula; nil si no existe.
func (r *PacienteRepo) GetByCedula(cedula string) (*entity.Paciente, error) {
	return r.getBy(`cedula = $1`, cedula)
}

func (r *PacienteRepo) getBy(where string, arg any) (*entity.Paciente, error) {
	query := `SELECT ` + pacienteColumns + ` FROM pacientes WHERE ` + where
	p, err := scanPaciente(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get paciente: %w", err)
	}
	return p, nil
}

// List lista fichas con paginación, más reciente primero.
func (r *PacienteRepo) List(limit, offset int) ([]*entity.Paciente, error) {
	query := `SELECT ` + pacienteColumns + ` FROM pacientes ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pacientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Paciente
	for rows.Next() {
		p, err := scanPaciente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paciente: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza la ficha. No escribe la columna odontograma: el estado
// vivo se escribe solo vía UpdateOdontograma desde el flujo de citas.
func (r *PacienteRepo) Update(p *entity.Paciente) error {
	query := `
		UPDATE pacientes SET nombre = $2, fecha_nacimiento = $3, edad = $4, sexo = $5, telefono = $6,
			telefono_emergencia = $7, direccion = $8, ocupacion = $9, grupo_sanguineo = $10,
			alergias = $11, enfermedades_cronicas = $12, medicamentos = $13, condiciones_especiales = $14,
			cirugias = $15, antecedentes_familiares = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.FechaNacimiento, p.Edad, p.Sexo, p.Telefono,
		p.TelefonoEmergencia, p.Direccion, p.Ocupacion, p.GrupoSanguineo,
		p.Alergias, p.EnfermedadesCronicas, p.Medicamentos, p.CondicionesEspeciales,
		p.Cirugias, p.AntecedentesFamiliares, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update paciente: %w", err)
	}
	return nil
}

// UpdateOdontograma sobreescribe el odontograma vivo (solo flujo de citas).
func (r *PacienteRepo) UpdateOdontograma(pacienteID string, chart []entity.Diente) error {
	raw, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("marshal odontograma: %w", err)
	}
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pacientes SET odontograma = $2, updated_at = now() WHERE id = $1`,
		pacienteID, raw,
	)
	if err != nil {
		return fmt.Errorf("update odontograma: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la ficha por ID. Las citas conservan sus snapshots.
func (r *PacienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pacientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete paciente: %w", err)
	}
	return nil
}

func scanPaciente(row pgx.Row) (*entity.Paciente, error) {
	var p entity.Paciente
	var chart []byte
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Cedula, &p.FechaNacimiento, &p.Edad, &p.Sexo, &p.Telefono, &p.TelefonoEmergencia,
		&p.Direccion, &p.Ocupacion, &p.GrupoSanguineo, &p.Alergias, &p.EnfermedadesCronicas, &p.Medicamentos,
		&p.CondicionesEspeciales, &p.Cirugias, &p.AntecedentesFamiliares, &p.UsuarioID, &chart, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(chart) > 0 {
		if err := json.Unmarshal(chart, &p.Odontograma); err != nil {
			return nil, fmt.Errorf("unmarshal odontograma: %w", err)
		}
	}
	return &p, nil
}
