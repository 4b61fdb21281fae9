package folio_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/folio"
)

// duplicadorFalso simula una capa de persistencia cuyo índice único rechaza
// las primeras n escrituras; permite probar el combinador sin base de datos.
type duplicadorFalso struct {
	rechazosRestantes int
	intentos          []string
}

func (d *duplicadorFalso) persist(_ context.Context, f string) error {
	d.intentos = append(d.intentos, f)
	if d.rechazosRestantes > 0 {
		d.rechazosRestantes--
		return domain.ErrDuplicateFolio
	}
	return nil
}

// siguienteSecuencial produce candidatos 01, 02, 03... como haría el cálculo
// real tras cada colisión (el perdedor de la carrera ve el nuevo máximo).
func siguienteSecuencial() func(ctx context.Context) (string, error) {
	seq := 0
	return func(_ context.Context) (string, error) {
		seq++
		return folio.Format("2025-01-05", seq)
	}
}

func TestAllocate_SinColision_PrimerIntento(t *testing.T) {
	fake := &duplicadorFalso{}
	got, err := folio.Allocate(context.Background(), folio.DefaultAttempts, siguienteSecuencial(), fake.persist)

	require.NoError(t, err)
	assert.Equal(t, "DESV-050125-01", got)
	assert.Len(t, fake.intentos, 1)
}

func TestAllocate_RecalculaTrasColision(t *testing.T) {
	// Dos rechazos por duplicado: el tercer candidato debe ganar.
	fake := &duplicadorFalso{rechazosRestantes: 2}
	got, err := folio.Allocate(context.Background(), folio.DefaultAttempts, siguienteSecuencial(), fake.persist)

	require.NoError(t, err)
	assert.Equal(t, "DESV-050125-03", got)
	assert.Equal(t, []string{"DESV-050125-01", "DESV-050125-02", "DESV-050125-03"}, fake.intentos)
}

func TestAllocate_AgotaIntentos_RetornaConflicto(t *testing.T) {
	// Más rechazos que intentos: la operación falla con error terminal,
	// nunca se descarta en silencio.
	fake := &duplicadorFalso{rechazosRestantes: 10}
	_, err := folio.Allocate(context.Background(), folio.DefaultAttempts, siguienteSecuencial(), fake.persist)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFolioExhausted)
	assert.Len(t, fake.intentos, folio.DefaultAttempts)
}

func TestAllocate_ErrorNoDuplicado_CortaElCiclo(t *testing.T) {
	errDB := errors.New("conexión perdida")
	intentos := 0
	persist := func(_ context.Context, _ string) error {
		intentos++
		return errDB
	}

	_, err := folio.Allocate(context.Background(), folio.DefaultAttempts, siguienteSecuencial(), persist)

	assert.ErrorIs(t, err, errDB)
	assert.Equal(t, 1, intentos, "un error ajeno a la unicidad no debe reintentarse")
}

func TestAllocate_ErrorDelCalculo_SePropaga(t *testing.T) {
	next := func(_ context.Context) (string, error) {
		return "", domain.ErrFolioExhausted // p.ej. secuencia > 999
	}
	_, err := folio.Allocate(context.Background(), folio.DefaultAttempts, next, func(context.Context, string) error {
		t.Fatal("no debe intentar persistir sin candidato")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrFolioExhausted)
}

func TestAllocate_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := folio.Allocate(ctx, folio.DefaultAttempts, siguienteSecuencial(), func(context.Context, string) error {
		return domain.ErrDuplicateFolio
	})
	assert.ErrorIs(t, err, context.Canceled)
}
