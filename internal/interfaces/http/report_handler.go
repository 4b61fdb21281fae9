package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/application/report"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Create crea un reporte con folio asignado por el servidor.
// POST /api/reports
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista reportes según el alcance del rol.
// GET /api/reports
func (h *ReportHandler) List(c *fiber.Ctx) error {
	var in dto.ReportListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Stats agrega conteos por estado y el porcentaje de cumplimiento.
// GET /api/reports/stats/summary
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	var in dto.ReportListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.Stats(c.Context(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// NextFolio previsualiza el siguiente folio para una fecha sin reservarlo.
// GET /api/reports/next-folio?fecha=YYYY-MM-DD
func (h *ReportHandler) NextFolio(c *fiber.Ctx) error {
	out, err := h.uc.NextFolio(c.Context(), c.Query("fecha"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un reporte (dueño o admin).
// GET /api/reports/:id
func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza los campos editables de un reporte. El folio es inmutable.
// PUT /api/reports/:id
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PatchStatus aplica una transición de estado del flujo de tratamiento.
// PATCH /api/reports/:id/status
func (h *ReportHandler) PatchStatus(c *fiber.Ctx) error {
	var in dto.StatusPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PatchStatus(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un reporte.
// DELETE /api/reports/:id
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// PDF descarga la ficha imprimible del reporte.
// GET /api/reports/:id/pdf
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.PDF(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
