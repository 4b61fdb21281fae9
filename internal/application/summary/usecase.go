// Package summary gestiona las novedades de cambio de turno: CRUD con regla
// de propiedad (dueño o admin), sin flujo de estados.
package summary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/access"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

// Límites del listado.
const (
	defaultListLimit = 200
	maxListLimit     = 500
)

// SummaryUseCase casos de uso de novedades de turno.
type SummaryUseCase struct {
	summaries repository.SummaryRepository
	users     repository.UserRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(summaries repository.SummaryRepository, users repository.UserRepository) *SummaryUseCase {
	return &SummaryUseCase{summaries: summaries, users: users}
}

// Create registra una novedad a nombre del actor.
func (uc *SummaryUseCase) Create(ctx context.Context, actor access.Actor, in dto.SummaryRequest) (*dto.SummaryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.ShiftSummary{
		ID:        uuid.New().String(),
		Fecha:     in.Fecha,
		Area:      in.Area,
		Ubicacion: in.Ubicacion,
		Novedades: in.Novedades,
		Fotos:     dto.CleanFotos(in.Fotos),
		OwnerID:   actor.ID,
		OwnerName: actor.DisplayName(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.summaries.Create(ctx, s); err != nil {
		return nil, err
	}
	return dto.SummaryToResponse(s), nil
}

// List retorna novedades según el alcance del rol, con filtro de rango de
// fechas. El admin puede acotar a un dueño específico o a "me".
func (uc *SummaryUseCase) List(ctx context.Context, actor access.Actor, in dto.SummaryListRequest) ([]*dto.SummaryResponse, error) {
	f := repository.SummaryFilter{Limit: clampLimit(in.Limit)}
	switch {
	case !actor.IsAdmin() || in.Owner == "me":
		f.OwnerID = actor.ID
	case in.Owner != "":
		f.OwnerID = in.Owner
	}
	if dto.ValidFecha(in.From) {
		f.From = in.From
	}
	if dto.ValidFecha(in.To) {
		f.To = in.To
	}

	items, err := uc.summaries.List(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.SummaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SummaryToResponse(it))
	}
	uc.attachOwnerNames(ctx, out)
	return out, nil
}

// Update aplica una actualización parcial si el actor es dueño o admin.
func (uc *SummaryUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.SummaryUpdateRequest) (*dto.SummaryResponse, error) {
	s, err := uc.authorize(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, domain.ErrNothingToUpdate
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.Fecha != nil {
		s.Fecha = *in.Fecha
	}
	if in.Area != nil {
		s.Area = *in.Area
	}
	if in.Ubicacion != nil {
		s.Ubicacion = *in.Ubicacion
	}
	if in.Novedades != nil {
		s.Novedades = *in.Novedades
	}
	if in.Fotos != nil {
		s.Fotos = dto.CleanFotos(*in.Fotos)
	}
	s.UpdatedAt = time.Now()

	if err := uc.summaries.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.SummaryToResponse(s), nil
}

// Delete elimina una novedad del dueño (o cualquiera, si el actor es admin).
func (uc *SummaryUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uc.authorize(ctx, actor, id); err != nil {
		return err
	}
	return uc.summaries.Delete(ctx, id)
}

func (uc *SummaryUseCase) authorize(ctx context.Context, actor access.Actor, id string) (*entity.ShiftSummary, error) {
	s, err := uc.summaries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !access.CanAccess(actor, s) {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

// attachOwnerNames resuelve el nombre completo vigente de cada dueño en una
// sola consulta. Un fallo aquí no degrada el listado: los nombres estampados
// al crear siguen presentes.
func (uc *SummaryUseCase) attachOwnerNames(ctx context.Context, items []*dto.SummaryResponse) {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, it := range items {
		if !seen[it.OwnerID] {
			seen[it.OwnerID] = true
			ids = append(ids, it.OwnerID)
		}
	}
	if len(ids) == 0 {
		return
	}
	users, err := uc.users.GetByIDs(ctx, ids)
	if err != nil {
		return
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for _, it := range items {
		u := byID[it.OwnerID]
		if u == nil {
			continue
		}
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		it.OwnerFullName = name
		if it.OwnerName == "" {
			it.OwnerName = name
		}
	}
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
