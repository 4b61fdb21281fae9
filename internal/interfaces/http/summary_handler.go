package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/application/summary"
)

// SummaryHandler maneja las novedades de turno (protegido).
type SummaryHandler struct {
	uc *summary.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *summary.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// Create registra las novedades de un turno.
// POST /api/summaries
func (h *SummaryHandler) Create(c *fiber.Ctx) error {
	var in dto.SummaryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista novedades según el alcance del rol.
// GET /api/summaries
func (h *SummaryHandler) List(c *fiber.Ctx) error {
	var in dto.SummaryListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de consulta inválidos"})
	}
	out, err := h.uc.List(c.Context(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update modifica campos puntuales de una novedad.
// PATCH /api/summaries/:id
func (h *SummaryHandler) Update(c *fiber.Ctx) error {
	var in dto.SummaryUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una novedad.
// DELETE /api/summaries/:id
func (h *SummaryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
