package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Limpieza de fotos
// ──────────────────────────────────────────────────────────────────────────────

func TestCleanFotos_DescartaURLsNoHTTP(t *testing.T) {
	entrada := []FotoDTO{
		{URL: "https://res.cloudinary.com/demo/a.jpg", Nota: " antes del turno "},
		{URL: "javascript:alert(1)", Nota: "maliciosa"},
		{URL: "ftp://servidor/b.jpg"},
		{URL: "", Nota: "sin url"},
		{URL: "http://fotos.local/c.png", Nota: "pasillo 3"},
	}

	out := CleanFotos(entrada)

	require.Len(t, out, 2)
	assert.Equal(t, "https://res.cloudinary.com/demo/a.jpg", out[0].URL)
	assert.Equal(t, "antes del turno", out[0].Nota, "la nota se recorta")
	assert.Equal(t, "http://fotos.local/c.png", out[1].URL)
}

func TestCleanFotos_PreservaOrden(t *testing.T) {
	entrada := []FotoDTO{
		{URL: "https://x/1.jpg"},
		{URL: "https://x/2.jpg"},
		{URL: "https://x/3.jpg"},
	}

	out := CleanFotos(entrada)

	require.Len(t, out, 3)
	for i, f := range out {
		assert.Equal(t, entrada[i].URL, f.URL)
	}
}

func TestCleanFotos_EntradaVacia(t *testing.T) {
	assert.Empty(t, CleanFotos(nil))
	assert.Empty(t, CleanFotos([]FotoDTO{}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Formatos de fecha y hora
// ──────────────────────────────────────────────────────────────────────────────

func TestValidFecha(t *testing.T) {
	assert.True(t, ValidFecha("2025-01-05"))
	assert.False(t, ValidFecha("05-01-2025"))
	assert.False(t, ValidFecha("2025-1-5"))
	assert.False(t, ValidFecha(""))
}

func TestValidHora(t *testing.T) {
	assert.True(t, ValidHora("14:30"))
	assert.True(t, ValidHora("00:00"))
	assert.False(t, ValidHora("9:30"))
	assert.False(t, ValidHora("14:30:00"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del cuerpo de reporte
// ──────────────────────────────────────────────────────────────────────────────

func peticionBase() ReportRequest {
	return ReportRequest{
		Fecha:       "2025-01-05",
		Hora:        "14:30",
		Tipo:        "Seguridad",
		Severidad:   "Alta",
		Descripcion: "Derrame de aceite en zona de carga",
	}
}

func TestReportRequest_Validate(t *testing.T) {
	valida := peticionBase()
	require.NoError(t, valida.Validate())

	casos := map[string]func(*ReportRequest){
		"fecha con formato incorrecto":   func(r *ReportRequest) { r.Fecha = "05/01/2025" },
		"hora con formato incorrecto":    func(r *ReportRequest) { r.Hora = "2pm" },
		"tipo en blanco":                 func(r *ReportRequest) { r.Tipo = "   " },
		"severidad fuera del catálogo":   func(r *ReportRequest) { r.Severidad = "Extrema" },
		"descripcion menor a 10 chars":   func(r *ReportRequest) { r.Descripcion = "corta" },
		"status desconocido":             func(r *ReportRequest) { r.Status = "archivado" },
	}
	for nombre, mutar := range casos {
		req := peticionBase()
		mutar(&req)
		err := req.Validate()
		assert.ErrorIs(t, err, domain.ErrInvalidInput, nombre)
	}
}

func TestReportRequest_Validate_AceptaStatusConocido(t *testing.T) {
	req := peticionBase()
	req.Status = string(entity.StatusTratamiento)
	assert.NoError(t, req.Validate())
}
