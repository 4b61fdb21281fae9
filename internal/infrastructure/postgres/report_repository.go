package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/folio"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo implementación del puerto ReportRepository sobre PostgreSQL.
// Las fotos se guardan como jsonb para preservar el orden de inserción.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de persistencia para reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const reportColumns = `id, folio, fecha, hora, reportante, area, ubicacion, tipo, severidad,
	descripcion, causas, acciones, responsable, compromiso, tags, fotos, status,
	owner_id, owner_name, created_at, updated_at`

// Create persiste un nuevo reporte. La violación del índice único de folio se
// traduce a domain.ErrDuplicateFolio: es la señal de reintento del asignador.
func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	fotos, err := json.Marshal(rep.Fotos)
	if err != nil {
		return fmt.Errorf("marshal fotos: %w", err)
	}
	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err = r.pool.Exec(ctx, query,
		rep.ID, rep.Folio, rep.Fecha, rep.Hora, rep.Reportante, rep.Area, rep.Ubicacion,
		rep.Tipo, rep.Severidad, rep.Descripcion, rep.Causas, rep.Acciones, rep.Responsable,
		rep.Compromiso, rep.Tags, fotos, string(rep.Status), rep.OwnerID, rep.OwnerName,
		rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && strings.Contains(constraint, "folio") {
			return domain.ErrDuplicateFolio
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID; nil si no existe.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	rep, err := scanReport(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report by id: %w", err)
	}
	return rep, nil
}

// Update actualiza los campos editables. El folio no aparece en el SET: es
// inmutable a nivel de consulta, no solo de validación.
func (r *ReportRepo) Update(ctx context.Context, rep *entity.Report) error {
	fotos, err := json.Marshal(rep.Fotos)
	if err != nil {
		return fmt.Errorf("marshal fotos: %w", err)
	}
	query := `
		UPDATE reports SET fecha = $2, hora = $3, reportante = $4, area = $5, ubicacion = $6,
			tipo = $7, severidad = $8, descripcion = $9, causas = $10, acciones = $11,
			responsable = $12, compromiso = $13, tags = $14, fotos = $15, status = $16,
			updated_at = $17
		WHERE id = $1`
	_, err = r.pool.Exec(ctx, query,
		rep.ID, rep.Fecha, rep.Hora, rep.Reportante, rep.Area, rep.Ubicacion,
		rep.Tipo, rep.Severidad, rep.Descripcion, rep.Causas, rep.Acciones,
		rep.Responsable, rep.Compromiso, rep.Tags, fotos, string(rep.Status), rep.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	return nil
}

// Delete elimina un reporte por ID.
func (r *ReportRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

// List retorna reportes filtrados, los más recientes primero.
func (r *ReportRepo) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, error) {
	where, args := buildReportWhere(f)
	query := `SELECT ` + reportColumns + ` FROM reports` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, f.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var list []*entity.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// FolioSuffixes retorna los consecutivos de los folios existentes que
// comienzan con prefix ("DESV-DDMMYY-"). Se extraen con el parser del
// dominio: filas con sufijo fuera de formato se ignoran.
func (r *ReportRepo) FolioSuffixes(ctx context.Context, prefix string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT folio FROM reports WHERE folio LIKE $1 || '%'`, prefix)
	if err != nil {
		return nil, fmt.Errorf("folio suffixes: %w", err)
	}
	defer rows.Close()

	var suffixes []int
	for rows.Next() {
		var f string
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan folio: %w", err)
		}
		if _, seq, ok := folio.Parse(f); ok {
			suffixes = append(suffixes, seq)
		}
	}
	return suffixes, rows.Err()
}

// CountByStatus agrega conteos por estado sobre el mismo filtro del listado.
func (r *ReportRepo) CountByStatus(ctx context.Context, f repository.ReportFilter) (map[entity.Status]int, error) {
	where, args := buildReportWhere(f)
	query := `SELECT status, COUNT(*) FROM reports` + where + ` GROUP BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[entity.Status(status)] = n
	}
	return counts, rows.Err()
}

// buildReportWhere arma la cláusula WHERE parametrizada del filtro.
func buildReportWhere(f repository.ReportFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.OwnerID != "" {
		add("owner_id = $%d", f.OwnerID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Fecha != "" {
		add("fecha = $%d", f.Fecha)
	}
	if f.FechaPrefix != "" {
		add("fecha LIKE $%d || '%%'", f.FechaPrefix)
	}
	if f.From != "" {
		add("fecha >= $%d", f.From)
	}
	if f.To != "" {
		add("fecha <= $%d", f.To)
	}
	if f.Query != "" {
		// Ambos lados se comparan sin diacríticos: la columna pasa por
		// unaccent (extensión habilitada en la migración) y el término llega
		// ya plegado desde la capa de aplicación. ILIKE cubre mayúsculas.
		pattern := "%" + f.QueryFolded + "%"
		if f.QueryFolded == "" {
			pattern = "%" + strings.ToLower(f.Query) + "%"
		}
		args = append(args, pattern)
		n := len(args)
		var ors []string
		for _, col := range []string{"folio", "area", "tipo", "severidad", "descripcion", "ubicacion", "owner_name", "tags"} {
			ors = append(ors, fmt.Sprintf("unaccent(%s) ILIKE $%d", col, n))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// rowScanner cubre pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*entity.Report, error) {
	var rep entity.Report
	var fotos []byte
	var status string
	err := row.Scan(
		&rep.ID, &rep.Folio, &rep.Fecha, &rep.Hora, &rep.Reportante, &rep.Area, &rep.Ubicacion,
		&rep.Tipo, &rep.Severidad, &rep.Descripcion, &rep.Causas, &rep.Acciones, &rep.Responsable,
		&rep.Compromiso, &rep.Tags, &fotos, &status, &rep.OwnerID, &rep.OwnerName,
		&rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rep.Status = entity.Status(status)
	if len(fotos) > 0 {
		if err := json.Unmarshal(fotos, &rep.Fotos); err != nil {
			return nil, fmt.Errorf("unmarshal fotos: %w", err)
		}
	}
	return &rep, nil
}
