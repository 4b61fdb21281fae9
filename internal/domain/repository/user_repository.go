package repository

import (
	"context"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
//
// Create y Update deben retornar domain.ErrUsernameTaken ante la violación
// del índice único de username.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetByIDs resuelve varios dueños de una vez (listados de novedades).
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
