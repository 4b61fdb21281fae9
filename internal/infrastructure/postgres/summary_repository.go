package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo persistencia de resúmenes de turno sobre PostgreSQL.
type SummaryRepo struct {
	pool *pgxpool.Pool
}

func NewSummaryRepository(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

const summaryColumns = `id, fecha, area, ubicacion, novedades, fotos, owner_id, owner_name, created_at, updated_at`

func (r *SummaryRepo) Create(ctx context.Context, s *entity.ShiftSummary) error {
	fotos, err := json.Marshal(s.Fotos)
	if err != nil {
		return fmt.Errorf("marshal fotos: %w", err)
	}
	query := `
		INSERT INTO shift_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.pool.Exec(ctx, query,
		s.ID, s.Fecha, s.Area, s.Ubicacion, s.Novedades, fotos,
		s.OwnerID, s.OwnerName, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

func (r *SummaryRepo) GetByID(ctx context.Context, id string) (*entity.ShiftSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM shift_summaries WHERE id = $1`
	s, err := scanSummary(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get summary by id: %w", err)
	}
	return s, nil
}

func (r *SummaryRepo) Update(ctx context.Context, s *entity.ShiftSummary) error {
	fotos, err := json.Marshal(s.Fotos)
	if err != nil {
		return fmt.Errorf("marshal fotos: %w", err)
	}
	query := `
		UPDATE shift_summaries SET fecha = $2, area = $3, ubicacion = $4, novedades = $5,
			fotos = $6, updated_at = $7
		WHERE id = $1`
	_, err = r.pool.Exec(ctx, query, s.ID, s.Fecha, s.Area, s.Ubicacion, s.Novedades, fotos, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return nil
}

func (r *SummaryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shift_summaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	return nil
}

func (r *SummaryRepo) List(ctx context.Context, f repository.SummaryFilter) ([]*entity.ShiftSummary, error) {
	var conds []string
	var args []any

	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		conds = append(conds, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if f.From != "" {
		args = append(args, f.From)
		conds = append(conds, fmt.Sprintf("fecha >= $%d", len(args)))
	}
	if f.To != "" {
		args = append(args, f.To)
		conds = append(conds, fmt.Sprintf("fecha <= $%d", len(args)))
	}

	query := `SELECT ` + summaryColumns + ` FROM shift_summaries`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY fecha DESC, created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var list []*entity.ShiftSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSummary(row rowScanner) (*entity.ShiftSummary, error) {
	var s entity.ShiftSummary
	var fotos []byte
	err := row.Scan(
		&s.ID, &s.Fecha, &s.Area, &s.Ubicacion, &s.Novedades, &fotos,
		&s.OwnerID, &s.OwnerName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(fotos) > 0 {
		if err := json.Unmarshal(fotos, &s.Fotos); err != nil {
			return nil, fmt.Errorf("unmarshal fotos: %w", err)
		}
	}
	return &s, nil
}
