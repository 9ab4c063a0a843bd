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

var _ repository.CitaRepository = (*CitaRepo)(nil)

// CitaRepo implementación de CitaRepository sobre PostgreSQL.
// La cabecera vive en citas; las líneas de consumo en cita_insumos. Los
// snapshots (datos del paciente y odontograma) se guardan como JSONB en la
// cabecera para que el histórico no dependa de la ficha viva.
type CitaRepo struct {
	q Querier
}

// NewCitaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCitaRepository(q Querier) *CitaRepo {
	return &CitaRepo{q: q}
}

const citaColumns = `id, paciente_id, paciente_datos, usuario_id, motivo, observaciones,
		tratamientos, monto, referencia_pago, odontograma, fecha, created_at`

// Create persiste la cabecera y sus líneas de consumo.
func (r *CitaRepo) Create(c *entity.Cita) error {
	datos, chart, err := marshalSnapshots(c)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO citas (` + citaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.PacienteID, datos, c.UsuarioID, c.Motivo, c.Observaciones,
		c.Tratamientos, c.Monto, c.ReferenciaPago, chart, c.Fecha, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cita: %w", err)
	}
	for _, linea := range c.Insumos {
		_, err = r.q.Exec(context.Background(),
			`INSERT INTO cita_insumos (cita_id, insumo_id, cantidad) VALUES ($1, $2, $3)`,
			c.ID, linea.InsumoID, linea.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert línea de cita: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una cita con sus líneas; nil si no existe.
func (r *CitaRepo) GetByID(id string) (*entity.Cita, error) {
	query := `SELECT ` + citaColumns + ` FROM citas WHERE id = $1`
	c, err := scanCita(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cita: %w", err)
	}
	if err := r.cargarInsumos(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update sobreescribe la cabecera y reemplaza las líneas de consumo con las de
// la entidad (corrección administrativa, sin tocar el stock).
func (r *CitaRepo) Update(c *entity.Cita) error {
	datos, chart, err := marshalSnapshots(c)
	if err != nil {
		return err
	}
	query := `
		UPDATE citas SET paciente_datos = $2, motivo = $3, observaciones = $4,
			tratamientos = $5, monto = $6, referencia_pago = $7, odontograma = $8, fecha = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, datos, c.Motivo, c.Observaciones,
		c.Tratamientos, c.Monto, c.ReferenciaPago, chart, c.Fecha,
	)
	if err != nil {
		return fmt.Errorf("update cita: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM cita_insumos WHERE cita_id = $1`, c.ID); err != nil {
		return fmt.Errorf("delete líneas de cita: %w", err)
	}
	for _, linea := range c.Insumos {
		_, err = r.q.Exec(context.Background(),
			`INSERT INTO cita_insumos (cita_id, insumo_id, cantidad) VALUES ($1, $2, $3)`,
			c.ID, linea.InsumoID, linea.Cantidad,
		)
		if err != nil {
			return fmt.Errorf("insert línea de cita: %w", err)
		}
	}
	return nil
}

// Delete elimina la cita; las líneas caen por ON DELETE CASCADE. No restituye
// stock ni revierte odontogramas.
func (r *CitaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM citas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cita: %w", err)
	}
	return nil
}

// ListByUsuario lista las citas atendidas por un odontólogo, más reciente primero.
func (r *CitaRepo) ListByUsuario(usuarioID string, limit, offset int) ([]*entity.Cita, error) {
	return r.list(`usuario_id = $1`, usuarioID, limit, offset)
}

// ListByPaciente lista el histórico de un paciente, más reciente primero.
func (r *CitaRepo) ListByPaciente(pacienteID string, limit, offset int) ([]*entity.Cita, error) {
	return r.list(`paciente_id = $1`, pacienteID, limit, offset)
}

// GetUltimaByPaciente retorna la cita más reciente del paciente; nil, nil si no tiene.
func (r *CitaRepo) GetUltimaByPaciente(pacienteID string) (*entity.Cita, error) {
	query := `SELECT ` + citaColumns + ` FROM citas WHERE paciente_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT 1`
	c, err := scanCita(r.q.QueryRow(context.Background(), query, pacienteID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get última cita: %w", err)
	}
	if err := r.cargarInsumos(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CitaRepo) list(where string, arg any, limit, offset int) ([]*entity.Cita, error) {
	query := `SELECT ` + citaColumns + ` FROM citas WHERE ` + where + `
		ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, arg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list citas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cita
	for rows.Next() {
		c, err := scanCita(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cita: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range list {
		if err := r.cargarInsumos(c); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *CitaRepo) cargarInsumos(c *entity.Cita) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT insumo_id, cantidad FROM cita_insumos WHERE cita_id = $1 ORDER BY insumo_id`,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("list líneas de cita: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var linea entity.InsumoConsumido
		if err := rows.Scan(&linea.InsumoID, &linea.Cantidad); err != nil {
			return fmt.Errorf("scan línea de cita: %w", err)
		}
		c.Insumos = append(c.Insumos, linea)
	}
	return rows.Err()
}

func marshalSnapshots(c *entity.Cita) (datos, chart []byte, err error) {
	datos, err = json.Marshal(c.PacienteDatos)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal datos de paciente: %w", err)
	}
	chart, err = json.Marshal(c.Odontograma)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal odontograma: %w", err)
	}
	return datos, chart, nil
}

func scanCita(row pgx.Row) (*entity.Cita, error) {
	var c entity.Cita
	var datos, chart []byte
	err := row.Scan(
		&c.ID, &c.PacienteID, &datos, &c.UsuarioID, &c.Motivo, &c.Observaciones,
		&c.Tratamientos, &c.Monto, &c.ReferenciaPago, &chart, &c.Fecha, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(datos) > 0 {
		if err := json.Unmarshal(datos, &c.PacienteDatos); err != nil {
			return nil, fmt.Errorf("unmarshal datos de paciente: %w", err)
		}
	}
	if len(chart) > 0 {
		if err := json.Unmarshal(chart, &c.Odontograma); err != nil {
			return nil, fmt.Errorf("unmarshal odontograma: %w", err)
		}
	}
	return &c, nil
}
