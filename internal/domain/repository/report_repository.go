package repository

import (
	"context"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// ReportFilter filtros de listado/agregación de reportes.
// Los campos de fecha operan sobre la fecha de negocio (entity.Report.Fecha).
type ReportFilter struct {
	OwnerID     string        // vacío = sin restricción de dueño
	Query       string        // texto libre tal como lo escribió el usuario
	QueryFolded string        // misma búsqueda sin diacríticos, en minúsculas
	Status      entity.Status // vacío = cualquier estado
	Fecha       string        // día exacto "YYYY-MM-DD"
	FechaPrefix string        // "YYYY-MM" (mes) o "YYYY" (año)
	From        string        // rango inclusivo "YYYY-MM-DD"
	To          string
	Limit       int
}

// ReportRepository define el puerto de persistencia para Report (DIP).
//
// Create debe retornar domain.ErrDuplicateFolio ante la violación del índice
// único de folio; es la señal que dispara el reintento del asignador.
type ReportRepository interface {
	Create(ctx context.Context, r *entity.Report) error
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Update(ctx context.Context, r *entity.Report) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ReportFilter) ([]*entity.Report, error)
	// FolioSuffixes retorna los consecutivos existentes de los folios que
	// comienzan con prefix ("DESV-DDMMYY-"); base del cálculo del siguiente.
	FolioSuffixes(ctx context.Context, prefix string) ([]int, error)
	CountByStatus(ctx context.Context, f ReportFilter) (map[entity.Status]int, error)
}
