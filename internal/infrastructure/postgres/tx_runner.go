package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinident/clinident-api/internal/application/cita"
	"github.com/clinident/clinident-api/internal/domain/repository"
)

// Ensure TxRunner implements cita.TxRunner.
var _ cita.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es la región atómica del flujo de citas: odontograma
// vivo + descuentos de insumos + alta de la cita.
func (r *TxRunner) Run(ctx context.Context, fn func(
	citaRepo repository.CitaRepository,
	pacienteRepo repository.PacienteRepository,
	insumoRepo repository.InsumoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	citaRepo := NewCitaRepository(tx)
	pacienteRepo := NewPacienteRepository(tx)
	insumoRepo := NewInsumoRepository(tx)

	if err := fn(citaRepo, pacienteRepo, insumoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
