package dto

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OKResponse respuesta mínima de operaciones sin cuerpo (eliminar, logout).
type OKResponse struct {
	OK bool `json:"ok"`
}

// FotoDTO foto adjunta; el orden de la lista es el orden de despliegue.
type FotoDTO struct {
	URL  string `json:"url"`
	Nota string `json:"nota"`
}

var (
	fechaRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	horaRe    = regexp.MustCompile(`^\d{2}:\d{2}$`)
	fotoURLRe = regexp.MustCompile(`^https?://`)
)

// ValidFecha valida el formato "YYYY-MM-DD".
func ValidFecha(s string) bool { return fechaRe.MatchString(s) }

// ValidHora valida el formato "HH:mm".
func ValidHora(s string) bool { return horaRe.MatchString(s) }

// CleanFotos descarta entradas sin URL http(s) y normaliza la nota,
// preservando el orden de inserción.
func CleanFotos(fotos []FotoDTO) []entity.Foto {
	out := make([]entity.Foto, 0, len(fotos))
	for _, f := range fotos {
		if !fotoURLRe.MatchString(f.URL) {
			continue
		}
		out = append(out, entity.Foto{URL: f.URL, Nota: strings.TrimSpace(f.Nota)})
	}
	return out
}

// FotosToDTO convierte fotos de entidad a DTO manteniendo el orden.
func FotosToDTO(fotos []entity.Foto) []FotoDTO {
	out := make([]FotoDTO, 0, len(fotos))
	for _, f := range fotos {
		out = append(out, FotoDTO{URL: f.URL, Nota: f.Nota})
	}
	return out
}

// invalid construye un error de validación con mensaje legible.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}
