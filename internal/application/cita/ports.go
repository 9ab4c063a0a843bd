package cita

import (
	"context"

	"github.com/clinident/clinident-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del odontograma
// vivo, los descuentos de insumos y el alta de la cita se confirman o se
// revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		citaRepo repository.CitaRepository,
		pacienteRepo repository.PacienteRepository,
		insumoRepo repository.InsumoRepository,
	) error) error
}
