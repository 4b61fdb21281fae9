package repository

import (
	"context"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// SummaryFilter filtros de listado de novedades de turno.
type SummaryFilter struct {
	OwnerID string // vacío = sin restricción de dueño
	From    string // rango inclusivo sobre fecha "YYYY-MM-DD"
	To      string
	Limit   int
}

// SummaryRepository define el puerto de persistencia para ShiftSummary.
type SummaryRepository interface {
	Create(ctx context.Context, s *entity.ShiftSummary) error
	GetByID(ctx context.Context, id string) (*entity.ShiftSummary, error)
	Update(ctx context.Context, s *entity.ShiftSummary) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f SummaryFilter) ([]*entity.ShiftSummary, error)
}
