package folio

import (
	"context"
	"errors"

	"github.com/jcamargo/desviaciones-api/internal/domain"
)

// DefaultAttempts intentos máximos de asignación ante colisiones de unicidad.
const DefaultAttempts = 5

// Allocate ejecuta el ciclo candidato -> persistir con reintento acotado.
//
// next recalcula un folio candidato (normalmente consultando los sufijos
// vigentes de la fecha) y persist intenta la escritura protegida por el índice
// único. Solo domain.ErrDuplicateFolio dispara un reintento: es la carrera
// benigna entre creaciones concurrentes de la misma fecha. Cualquier otro
// error corta el ciclo. Agotados los intentos retorna domain.ErrFolioExhausted.
func Allocate(
	ctx context.Context,
	attempts int,
	next func(ctx context.Context) (string, error),
	persist func(ctx context.Context, folio string) error,
) (string, error) {
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, err := next(ctx)
		if err != nil {
			return "", err
		}
		err = persist(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, domain.ErrDuplicateFolio) {
			return "", err
		}
	}
	return "", domain.ErrFolioExhausted
}
