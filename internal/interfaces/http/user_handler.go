package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/application/user"
)

// UserHandler maneja el perfil propio y la administración de usuarios.
// Las rutas de administración van detrás de RequireRole("admin").
type UserHandler struct {
	uc *user.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *user.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// ── Perfil propio ─────────────────────────────────────────────────────────────

// UpdateMe actualiza nombre y foto del propio usuario.
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.ProfileUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ChangePassword cambia la contraseña propia verificando la actual.
// PATCH /api/users/me/password
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.PasswordChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}

// ── Administración (solo admin) ───────────────────────────────────────────────

// Create da de alta un usuario.
// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista todos los usuarios.
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update modifica usuario, rol o contraseña de un usuario.
// PATCH /api/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un usuario (nunca la propia cuenta).
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.OKResponse{OK: true})
}
