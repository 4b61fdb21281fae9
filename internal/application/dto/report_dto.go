package dto

import (
	"strings"
	"time"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// ReportRequest cuerpo de creación/actualización de un reporte.
// Folio solo se considera en la creación; en actualizaciones se ignora
// siempre (el folio es inmutable y asignado por el servidor).
type ReportRequest struct {
	Folio       string    `json:"folio"`
	Fecha       string    `json:"fecha"`
	Hora        string    `json:"hora"`
	Reportante  string    `json:"reportante"`
	Area        string    `json:"area"`
	Ubicacion   string    `json:"ubicacion"`
	Tipo        string    `json:"tipo"`
	Severidad   string    `json:"severidad"`
	Descripcion string    `json:"descripcion"`
	Causas      string    `json:"causas"`
	Acciones    string    `json:"acciones"`
	Responsable string    `json:"responsable"`
	Compromiso  string    `json:"compromiso"`
	Tags        string    `json:"tags"`
	Fotos       []FotoDTO `json:"fotos"`
	Status      string    `json:"status"` // opcional en updates; validado contra la tabla de transiciones
}

// Validate aplica las reglas de los campos obligatorios.
func (r *ReportRequest) Validate() error {
	if !ValidFecha(r.Fecha) {
		return invalid("fecha debe tener formato YYYY-MM-DD")
	}
	if !ValidHora(r.Hora) {
		return invalid("hora debe tener formato HH:mm")
	}
	if strings.TrimSpace(r.Tipo) == "" {
		return invalid("tipo es requerido")
	}
	if !entity.ValidSeveridad(r.Severidad) {
		return invalid("severidad debe ser una de: %s", strings.Join(entity.Severidades, ", "))
	}
	if len(strings.TrimSpace(r.Descripcion)) < 10 {
		return invalid("descripcion debe tener al menos 10 caracteres")
	}
	if r.Status != "" && !entity.Status(r.Status).Valid() {
		return invalid("status desconocido: %q", r.Status)
	}
	return nil
}

// InvalidStatusFilter error de validación para filtros con estado desconocido.
func InvalidStatusFilter(s string) error {
	return invalid("status desconocido: %q", s)
}

// StatusPatchRequest cuerpo de PATCH /reports/:id/status.
type StatusPatchRequest struct {
	Status string `json:"status"`
}

// ReportListRequest filtros del listado y las estadísticas.
type ReportListRequest struct {
	Owner  string `query:"owner"` // "me" | "all" (solo admin distingue)
	Q      string `query:"q"`
	Status string `query:"status"`
	Date   string `query:"date"`  // día exacto YYYY-MM-DD
	Month  string `query:"month"` // YYYY-MM
	Year   string `query:"year"`  // YYYY
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit"`
}

// ReportResponse representación de salida de un reporte.
type ReportResponse struct {
	ID          string    `json:"id"`
	Folio       string    `json:"folio"`
	Fecha       string    `json:"fecha"`
	Hora        string    `json:"hora"`
	Reportante  string    `json:"reportante"`
	Area        string    `json:"area"`
	Ubicacion   string    `json:"ubicacion"`
	Tipo        string    `json:"tipo"`
	Severidad   string    `json:"severidad"`
	Descripcion string    `json:"descripcion"`
	Causas      string    `json:"causas"`
	Acciones    string    `json:"acciones"`
	Responsable string    `json:"responsable"`
	Compromiso  string    `json:"compromiso"`
	Tags        string    `json:"tags"`
	Fotos       []FotoDTO `json:"fotos"`
	Status      string    `json:"status"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NextFolioResponse respuesta de la previsualización de folio.
type NextFolioResponse struct {
	Folio string `json:"folio"`
}

// StatsResponse agregado por estado más el porcentaje de cumplimiento
// (concluidos / total * 100, redondeado a 2 decimales; 0 si no hay reportes).
type StatsResponse struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	Compliance float64        `json:"compliance"`
}

// ReportToResponse convierte la entidad a su representación de salida.
func ReportToResponse(r *entity.Report) *ReportResponse {
	if r == nil {
		return nil
	}
	return &ReportResponse{
		ID:          r.ID,
		Folio:       r.Folio,
		Fecha:       r.Fecha,
		Hora:        r.Hora,
		Reportante:  r.Reportante,
		Area:        r.Area,
		Ubicacion:   r.Ubicacion,
		Tipo:        r.Tipo,
		Severidad:   r.Severidad,
		Descripcion: r.Descripcion,
		Causas:      r.Causas,
		Acciones:    r.Acciones,
		Responsable: r.Responsable,
		Compromiso:  r.Compromiso,
		Tags:        r.Tags,
		Fotos:       FotosToDTO(r.Fotos),
		Status:      string(r.Status),
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerName,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
