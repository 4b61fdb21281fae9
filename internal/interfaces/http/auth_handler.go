package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/auth"
	"github.com/jcamargo/desviaciones-api/internal/application/dto"
)

// refreshCookie nombre de la cookie httpOnly del refresh token. Se acota al
// grupo /api/auth para que no viaje en cada petición.
const (
	refreshCookie     = "refreshToken"
	refreshCookiePath = "/api/auth"
)

// AuthHandler maneja login, bootstrap del primer admin y refresh de sesión.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	refreshHours int
	secure       bool
}

// NewAuthHandler construye el handler de auth. secure marca la cookie de
// refresh como Secure (solo HTTPS).
func NewAuthHandler(uc *auth.AuthUseCase, refreshHours int, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, refreshHours: refreshHours, secure: secure}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, refresh, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	h.setRefreshCookie(c, refresh)
	return c.JSON(out)
}

// SetupAdmin godoc
// @Summary      Crear el primer administrador
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/setup-admin [post]
func (h *AuthHandler) SetupAdmin(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, refresh, err := h.uc.SetupAdmin(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	h.setRefreshCookie(c, refresh)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Register godoc
// @Summary      Registro abierto (deshabilitado por defecto)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CredentialsRequest  true  "username, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.CredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Refresh godoc
// @Summary      Renovar el token de acceso con la cookie de refresh
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refresh := c.Cookies(refreshCookie)
	if refresh == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "cookie de refresh requerida"})
	}
	out, err := h.uc.Refresh(c.Context(), refresh)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie de refresh)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.OKResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    "",
		Path:     refreshCookiePath,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	return c.JSON(dto.OKResponse{OK: true})
}

// Status godoc
// @Summary      Indica si ya existen usuarios registrados
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.BootstrapStatusResponse
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	exist, err := h.uc.UsersExist(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.BootstrapStatusResponse{UsersExist: exist})
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refresh string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    refresh,
		Path:     refreshCookiePath,
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Duration(h.refreshHours) * time.Hour),
	})
}
