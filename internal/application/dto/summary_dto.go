package dto

import (
	"strings"
	"time"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// SummaryRequest cuerpo de creación de una novedad de turno.
type SummaryRequest struct {
	Fecha     string    `json:"fecha"`
	Area      string    `json:"area"`
	Ubicacion string    `json:"ubicacion"`
	Novedades string    `json:"novedades"`
	Fotos     []FotoDTO `json:"fotos"`
}

// Validate aplica las reglas de campos obligatorios.
func (s *SummaryRequest) Validate() error {
	if !ValidFecha(s.Fecha) {
		return invalid("fecha debe tener formato YYYY-MM-DD")
	}
	if len(strings.TrimSpace(s.Area)) < 2 {
		return invalid("area debe tener al menos 2 caracteres")
	}
	if len(strings.TrimSpace(s.Novedades)) < 3 {
		return invalid("novedades debe tener al menos 3 caracteres")
	}
	return nil
}

// SummaryUpdateRequest actualización parcial: solo los campos presentes se
// aplican. Todos nil es un error ("nada para actualizar").
type SummaryUpdateRequest struct {
	Fecha     *string    `json:"fecha"`
	Area      *string    `json:"area"`
	Ubicacion *string    `json:"ubicacion"`
	Novedades *string    `json:"novedades"`
	Fotos     *[]FotoDTO `json:"fotos"`
}

// Empty indica si la actualización no trae ningún campo.
func (s *SummaryUpdateRequest) Empty() bool {
	return s.Fecha == nil && s.Area == nil && s.Ubicacion == nil && s.Novedades == nil && s.Fotos == nil
}

// Validate valida los campos presentes.
func (s *SummaryUpdateRequest) Validate() error {
	if s.Fecha != nil && !ValidFecha(*s.Fecha) {
		return invalid("fecha debe tener formato YYYY-MM-DD")
	}
	if s.Area != nil && len(strings.TrimSpace(*s.Area)) < 2 {
		return invalid("area debe tener al menos 2 caracteres")
	}
	if s.Novedades != nil && len(strings.TrimSpace(*s.Novedades)) < 3 {
		return invalid("novedades debe tener al menos 3 caracteres")
	}
	return nil
}

// SummaryListRequest filtros del listado de novedades.
type SummaryListRequest struct {
	Owner string `query:"owner"` // "me" o un ownerId (solo admin)
	From  string `query:"from"`
	To    string `query:"to"`
	Limit int    `query:"limit"`
}

// SummaryResponse representación de salida de una novedad.
type SummaryResponse struct {
	ID            string    `json:"id"`
	Fecha         string    `json:"fecha"`
	Area          string    `json:"area"`
	Ubicacion     string    `json:"ubicacion"`
	Novedades     string    `json:"novedades"`
	Fotos         []FotoDTO `json:"fotos"`
	OwnerID       string    `json:"ownerId"`
	OwnerName     string    `json:"ownerName"`
	OwnerFullName string    `json:"ownerFullName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SummaryToResponse convierte la entidad a su representación de salida.
func SummaryToResponse(s *entity.ShiftSummary) *SummaryResponse {
	if s == nil {
		return nil
	}
	return &SummaryResponse{
		ID:        s.ID,
		Fecha:     s.Fecha,
		Area:      s.Area,
		Ubicacion: s.Ubicacion,
		Novedades: s.Novedades,
		Fotos:     FotosToDTO(s.Fotos),
		OwnerID:   s.OwnerID,
		OwnerName: s.OwnerName,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
