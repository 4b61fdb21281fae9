package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/infrastructure/cloudinary"
)

// UploadHandler firma subidas directas del cliente a Cloudinary.
type UploadHandler struct {
	signer *cloudinary.Signer
}

// NewUploadHandler construye el handler.
func NewUploadHandler(signer *cloudinary.Signer) *UploadHandler {
	return &UploadHandler{signer: signer}
}

// Signature firma el timestamp y la carpeta que el cliente usará en su
// subida directa. Ambos son requeridos: Cloudinary rechaza la subida si el
// timestamp firmado no coincide con el enviado.
// POST /api/upload/signature
func (h *UploadHandler) Signature(c *fiber.Ctx) error {
	if !h.signer.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UPLOADS_DISABLED", Message: "subida de fotos no configurada"})
	}
	var req dto.UploadSignatureRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return fail(c, err)
	}
	return c.JSON(h.signer.SignAt(req.Folder, req.Timestamp))
}
