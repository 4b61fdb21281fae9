package summary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/access"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de persistencia en memoria
// ──────────────────────────────────────────────────────────────────────────────

type novedadesFalsas struct {
	porID map[string]*entity.ShiftSummary
}

func nuevasNovedadesFalsas() *novedadesFalsas {
	return &novedadesFalsas{porID: map[string]*entity.ShiftSummary{}}
}

func (r *novedadesFalsas) Create(_ context.Context, s *entity.ShiftSummary) error {
	cp := *s
	r.porID[s.ID] = &cp
	return nil
}

func (r *novedadesFalsas) GetByID(_ context.Context, id string) (*entity.ShiftSummary, error) {
	s, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *novedadesFalsas) Update(_ context.Context, s *entity.ShiftSummary) error {
	cp := *s
	r.porID[s.ID] = &cp
	return nil
}

func (r *novedadesFalsas) Delete(_ context.Context, id string) error {
	delete(r.porID, id)
	return nil
}

func (r *novedadesFalsas) List(_ context.Context, f repository.SummaryFilter) ([]*entity.ShiftSummary, error) {
	var out []*entity.ShiftSummary
	for _, s := range r.porID {
		if f.OwnerID != "" && s.OwnerID != f.OwnerID {
			continue
		}
		if f.From != "" && s.Fecha < f.From {
			continue
		}
		if f.To != "" && s.Fecha > f.To {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// duenosFalsos cubre la parte de UserRepository que usa el caso de uso.
type duenosFalsos struct {
	porID map[string]*entity.User
}

func (r *duenosFalsos) Create(context.Context, *entity.User) error { return nil }
func (r *duenosFalsos) GetByID(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *duenosFalsos) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *duenosFalsos) GetByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.porID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
func (r *duenosFalsos) Update(context.Context, *entity.User) error      { return nil }
func (r *duenosFalsos) List(context.Context) ([]*entity.User, error)    { return nil, nil }
func (r *duenosFalsos) Delete(context.Context, string) error            { return nil }
func (r *duenosFalsos) Count(context.Context) (int, error)              { return 0, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var (
	actorUser  = access.Actor{ID: "u1", Username: "jlopez", Role: "user"}
	actorOtro  = access.Actor{ID: "u2", Username: "mgarcia", Role: "user"}
	actorAdmin = access.Actor{ID: "a1", Username: "root", Role: "admin"}
)

func nuevoUC(repo *novedadesFalsas, duenos *duenosFalsos) *SummaryUseCase {
	if duenos == nil {
		duenos = &duenosFalsos{porID: map[string]*entity.User{}}
	}
	return NewSummaryUseCase(repo, duenos)
}

func novedadValida() dto.SummaryRequest {
	return dto.SummaryRequest{
		Fecha:     "2025-01-05",
		Area:      "Almacén",
		Novedades: "Turno sin incidentes, pendiente revisión de montacargas",
	}
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EstampaAlActor(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	out, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	assert.Equal(t, "u1", out.OwnerID)
	assert.Equal(t, "jlopez", out.OwnerName, "sin nombre completo se estampa el username")
	assert.NotEmpty(t, out.ID)
}

func TestCreate_Validacion(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	in := novedadValida()
	in.Fecha = "05/01/2025"
	_, err := uc.Create(context.Background(), actorUser, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_NoAdminSoloVeLoPropio(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	_, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), actorOtro, novedadValida())
	require.NoError(t, err)

	propias, err := uc.List(context.Background(), actorUser, dto.SummaryListRequest{})
	require.NoError(t, err)
	require.Len(t, propias, 1)
	assert.Equal(t, "u1", propias[0].OwnerID)

	todas, err := uc.List(context.Background(), actorAdmin, dto.SummaryListRequest{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)
}

func TestList_AdminAcotadoAUnDueno(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	_, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), actorOtro, novedadValida())
	require.NoError(t, err)

	out, err := uc.List(context.Background(), actorAdmin, dto.SummaryListRequest{Owner: "u2"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u2", out[0].OwnerID)
}

func TestList_ResuelveNombresVigentes(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	duenos := &duenosFalsos{porID: map[string]*entity.User{
		"u1": {ID: "u1", Username: "jlopez", FullName: "Juan López"},
	}}
	uc := nuevoUC(repo, duenos)

	_, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	out, err := uc.List(context.Background(), actorUser, dto.SummaryListRequest{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Juan López", out[0].OwnerFullName)
}

func TestUpdate_SoloCamposPresentes(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	creada, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), actorUser, creada.ID, dto.SummaryUpdateRequest{
		Novedades: ptr("Se reparó el montacargas al final del turno"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Se reparó el montacargas al final del turno", out.Novedades)
	assert.Equal(t, creada.Area, out.Area, "los campos ausentes no cambian")
}

func TestUpdate_SinCamposEsError(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	creada, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), actorUser, creada.ID, dto.SummaryUpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)
}

func TestUpdate_NoDuenoRecibeForbidden(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	creada, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), actorOtro, creada.ID, dto.SummaryUpdateRequest{
		Novedades: ptr("intento ajeno de edición"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete_DuenoYAdmin(t *testing.T) {
	repo := nuevasNovedadesFalsas()
	uc := nuevoUC(repo, nil)

	creada, err := uc.Create(context.Background(), actorUser, novedadValida())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(context.Background(), actorOtro, creada.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), actorAdmin, creada.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), actorAdmin, creada.ID), domain.ErrNotFound)
}
