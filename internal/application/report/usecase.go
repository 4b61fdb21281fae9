// Package report orquesta el ciclo de vida de los reportes de desviación:
// asignación de folio con reintento, control de acceso por dueño/rol,
// transiciones de estado, listados filtrados y estadísticas.
package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/access"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/folio"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

// Límites del listado.
const (
	defaultListLimit = 200
	maxListLimit     = 500
)

// PDFGenerator renderiza la ficha imprimible de un reporte.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, rep *entity.Report) ([]byte, error)
}

// ReportUseCase casos de uso de reportes.
type ReportUseCase struct {
	reports repository.ReportRepository
	pdf     PDFGenerator
}

// NewReportUseCase construye el caso de uso con sus puertos.
func NewReportUseCase(reports repository.ReportRepository, pdf PDFGenerator) *ReportUseCase {
	return &ReportUseCase{reports: reports, pdf: pdf}
}

// Create crea un reporte asignando folio. Si el cliente propone un folio y
// está libre se acepta; ocupado o ausente, se calcula el siguiente de la
// fecha. Las colisiones de concurrencia se resuelven con reintento acotado:
// el índice único decide al ganador y el perdedor recalcula.
func (uc *ReportUseCase) Create(ctx context.Context, actor access.Actor, in dto.ReportRequest) (*dto.ReportResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	rep := &entity.Report{
		ID:          uuid.New().String(),
		Fecha:       in.Fecha,
		Hora:        in.Hora,
		Reportante:  in.Reportante,
		Area:        in.Area,
		Ubicacion:   in.Ubicacion,
		Tipo:        in.Tipo,
		Severidad:   in.Severidad,
		Descripcion: in.Descripcion,
		Causas:      in.Causas,
		Acciones:    in.Acciones,
		Responsable: in.Responsable,
		Compromiso:  in.Compromiso,
		Tags:        in.Tags,
		Fotos:       dto.CleanFotos(in.Fotos),
		Status:      entity.StatusPendiente,
		OwnerID:     actor.ID,
		OwnerName:   actor.DisplayName(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	requested := strings.TrimSpace(in.Folio)
	usedRequested := false
	next := func(ctx context.Context) (string, error) {
		if requested != "" && !usedRequested {
			usedRequested = true
			return requested, nil
		}
		return uc.nextForDate(ctx, in.Fecha)
	}
	persist := func(ctx context.Context, f string) error {
		rep.Folio = f
		return uc.reports.Create(ctx, rep)
	}

	if _, err := folio.Allocate(ctx, folio.DefaultAttempts, next, persist); err != nil {
		return nil, err
	}
	return dto.ReportToResponse(rep), nil
}

// Get retorna un reporte si el actor es su dueño o admin.
func (uc *ReportUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.ReportResponse, error) {
	rep, err := uc.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.ReportToResponse(rep), nil
}

// Update reemplaza los campos editables del reporte. El folio del cuerpo se
// ignora siempre: es inmutable desde su asignación, también para admins.
// Si viene status, debe satisfacer la tabla de transiciones.
func (uc *ReportUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.ReportRequest) (*dto.ReportResponse, error) {
	// Autorización antes que validación: un no-dueño recibe forbidden
	// aunque el cuerpo sea inválido.
	rep, err := uc.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Status != "" {
		if err := entity.Transition(rep.Status, entity.Status(in.Status)); err != nil {
			return nil, err
		}
		rep.Status = entity.Status(in.Status)
	}

	rep.Fecha = in.Fecha
	rep.Hora = in.Hora
	rep.Reportante = in.Reportante
	rep.Area = in.Area
	rep.Ubicacion = in.Ubicacion
	rep.Tipo = in.Tipo
	rep.Severidad = in.Severidad
	rep.Descripcion = in.Descripcion
	rep.Causas = in.Causas
	rep.Acciones = in.Acciones
	rep.Responsable = in.Responsable
	rep.Compromiso = in.Compromiso
	rep.Tags = in.Tags
	rep.Fotos = dto.CleanFotos(in.Fotos)
	rep.UpdatedAt = time.Now()

	if err := uc.reports.Update(ctx, rep); err != nil {
		return nil, err
	}
	return dto.ReportToResponse(rep), nil
}

// PatchStatus aplica una transición de estado. La transición al mismo estado
// es un no-op exitoso.
func (uc *ReportUseCase) PatchStatus(ctx context.Context, actor access.Actor, id string, in dto.StatusPatchRequest) (*dto.ReportResponse, error) {
	rep, err := uc.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	to := entity.Status(in.Status)
	if err := entity.Transition(rep.Status, to); err != nil {
		return nil, err
	}
	if rep.Status != to {
		rep.Status = to
		rep.UpdatedAt = time.Now()
		if err := uc.reports.Update(ctx, rep); err != nil {
			return nil, err
		}
	}
	return dto.ReportToResponse(rep), nil
}

// Delete elimina un reporte del dueño (o cualquiera, si el actor es admin).
func (uc *ReportUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uc.authorize(ctx, actor, id); err != nil {
		return err
	}
	return uc.reports.Delete(ctx, id)
}

// List retorna reportes según el alcance del rol: los no-admin solo ven los
// propios sin importar los filtros; el admin ve todo salvo que pida owner=me.
func (uc *ReportUseCase) List(ctx context.Context, actor access.Actor, in dto.ReportListRequest) ([]*dto.ReportResponse, error) {
	f, err := uc.buildFilter(actor, in)
	if err != nil {
		return nil, err
	}
	items, err := uc.reports.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ReportResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ReportToResponse(it))
	}
	return out, nil
}

// Stats agrega conteos por estado y el porcentaje de cumplimiento sobre el
// mismo conjunto filtrado del listado.
func (uc *ReportUseCase) Stats(ctx context.Context, actor access.Actor, in dto.ReportListRequest) (*dto.StatsResponse, error) {
	f, err := uc.buildFilter(actor, in)
	if err != nil {
		return nil, err
	}
	counts, err := uc.reports.CountByStatus(ctx, f)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int, len(entity.Statuses))
	total := 0
	for _, s := range entity.Statuses {
		byStatus[string(s)] = counts[s]
		total += counts[s]
	}
	return &dto.StatsResponse{
		Total:      total,
		ByStatus:   byStatus,
		Compliance: Compliance(counts[entity.StatusConcluido], total),
	}, nil
}

// NextFolio previsualiza el siguiente folio para una fecha sin reservarlo.
func (uc *ReportUseCase) NextFolio(ctx context.Context, fecha string) (*dto.NextFolioResponse, error) {
	f, err := uc.nextForDate(ctx, fecha)
	if err != nil {
		return nil, err
	}
	return &dto.NextFolioResponse{Folio: f}, nil
}

// PDF genera la ficha imprimible del reporte. Retorna los bytes y el nombre
// de archivo sugerido, derivado del folio.
func (uc *ReportUseCase) PDF(ctx context.Context, actor access.Actor, id string) ([]byte, string, error) {
	rep, err := uc.authorize(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateReportPDF(ctx, rep)
	if err != nil {
		return nil, "", err
	}
	return doc, rep.Folio + ".pdf", nil
}

// authorize carga el reporte y aplica la regla dueño-o-admin. No encontrado y
// prohibido son errores distintos: el primero no revela existencia ajena.
func (uc *ReportUseCase) authorize(ctx context.Context, actor access.Actor, id string) (*entity.Report, error) {
	rep, err := uc.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, rep) {
		return nil, domain.ErrForbidden
	}
	return rep, nil
}

func (uc *ReportUseCase) nextForDate(ctx context.Context, fecha string) (string, error) {
	suffixes, err := uc.reports.FolioSuffixes(ctx, folio.PrefixForDate(fecha))
	if err != nil {
		return "", err
	}
	return folio.NextForDate(fecha, suffixes)
}

func (uc *ReportUseCase) buildFilter(actor access.Actor, in dto.ReportListRequest) (repository.ReportFilter, error) {
	f := repository.ReportFilter{Limit: clampLimit(in.Limit)}

	// Alcance por rol: el filtro de dueño de un no-admin no es opcional.
	if !actor.IsAdmin() || in.Owner == "me" {
		f.OwnerID = actor.ID
	}

	if q := strings.TrimSpace(in.Q); q != "" {
		f.Query = q
		f.QueryFolded = Fold(q)
	}
	if in.Status != "" {
		s := entity.Status(in.Status)
		if !s.Valid() {
			return repository.ReportFilter{}, dto.InvalidStatusFilter(in.Status)
		}
		f.Status = s
	}

	// Periodo: día exacto, mes o año como prefijo, o rango from/to.
	// Los valores malformados se ignoran, como en los filtros de fecha del
	// listado de novedades.
	switch {
	case dto.ValidFecha(in.Date):
		f.Fecha = in.Date
	case len(in.Month) == 7 && dto.ValidFecha(in.Month+"-01"):
		f.FechaPrefix = in.Month
	case len(in.Year) == 4:
		f.FechaPrefix = in.Year
	default:
		if dto.ValidFecha(in.From) {
			f.From = in.From
		}
		if dto.ValidFecha(in.To) {
			f.To = in.To
		}
	}
	return f, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
