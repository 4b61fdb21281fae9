package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
)

// photoURLRe acepta vacío, http(s) o data-URI (avatar embebido).
var photoURLRe = regexp.MustCompile(`^$|^https?://|^data:`)

// ValidPhotoURL valida la URL de foto de perfil.
func ValidPhotoURL(s string) bool { return len(s) <= 1000 && photoURLRe.MatchString(s) }

// CreateUserRequest alta de usuario por un administrador.
type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate aplica las reglas de alta.
func (r *CreateUserRequest) Validate() error {
	if l := len(strings.TrimSpace(r.Username)); l < 3 || l > 50 {
		return invalid("username debe tener entre 3 y 50 caracteres")
	}
	if l := len(strings.TrimSpace(r.FullName)); l < 3 || l > 120 {
		return invalid("fullName debe tener entre 3 y 120 caracteres")
	}
	if len(r.Password) < 6 {
		return invalid("password debe tener al menos 6 caracteres")
	}
	if r.Role != "" && r.Role != entity.RoleAdmin && r.Role != entity.RoleUser {
		return invalid("role debe ser admin o user")
	}
	return nil
}

// UpdateUserRequest actualización parcial de un usuario (solo admin).
type UpdateUserRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	PhotoURL *string `json:"photoUrl"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// Empty indica si no hay ningún campo que aplicar.
func (r *UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.FullName == nil && r.PhotoURL == nil && r.Role == nil && r.Password == nil
}

// Validate valida los campos presentes.
func (r *UpdateUserRequest) Validate() error {
	if r.Username != nil {
		if l := len(strings.TrimSpace(*r.Username)); l < 3 || l > 50 {
			return invalid("username debe tener entre 3 y 50 caracteres")
		}
	}
	if r.FullName != nil {
		if l := len(strings.TrimSpace(*r.FullName)); l < 3 || l > 120 {
			return invalid("fullName debe tener entre 3 y 120 caracteres")
		}
	}
	if r.PhotoURL != nil && !ValidPhotoURL(*r.PhotoURL) {
		return invalid("URL de foto inválida")
	}
	if r.Role != nil && *r.Role != entity.RoleAdmin && *r.Role != entity.RoleUser {
		return invalid("role debe ser admin o user")
	}
	if r.Password != nil && len(*r.Password) < 6 {
		return invalid("password debe tener al menos 6 caracteres")
	}
	return nil
}

// ProfileUpdateRequest autoedición de perfil (nombre y foto).
type ProfileUpdateRequest struct {
	FullName *string `json:"fullName"`
	PhotoURL *string `json:"photoUrl"`
}

// Validate valida los campos presentes; vacío es error.
func (r *ProfileUpdateRequest) Validate() error {
	if r.FullName == nil && r.PhotoURL == nil {
		return invalid("nada para actualizar")
	}
	if r.FullName != nil {
		if l := len(strings.TrimSpace(*r.FullName)); l < 3 || l > 120 {
			return invalid("fullName debe tener entre 3 y 120 caracteres")
		}
	}
	if r.PhotoURL != nil && !ValidPhotoURL(*r.PhotoURL) {
		return invalid("URL de foto inválida")
	}
	return nil
}

// PasswordChangeRequest cambio de contraseña propio.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate aplica las reglas mínimas de longitud.
func (r *PasswordChangeRequest) Validate() error {
	if len(r.CurrentPassword) < 6 || len(r.NewPassword) < 6 {
		return invalid("las contraseñas deben tener al menos 6 caracteres")
	}
	return nil
}

// UserResponse representación de salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	PhotoURL  string    `json:"photoUrl"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserToResponse convierte la entidad a su representación de salida.
func UserToResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		PhotoURL:  u.PhotoURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
