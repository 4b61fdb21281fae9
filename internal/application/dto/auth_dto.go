package dto

import "strings"

// CredentialsRequest cuerpo de login, registro y setup-admin.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate aplica las reglas de credenciales.
func (r *CredentialsRequest) Validate() error {
	if l := len(strings.TrimSpace(r.Username)); l < 3 || l > 50 {
		return invalid("username debe tener entre 3 y 50 caracteres")
	}
	if l := len(r.Password); l < 6 || l > 200 {
		return invalid("password debe tener entre 6 y 200 caracteres")
	}
	return nil
}

// UserPublic identidad mínima que viaja en las respuestas de auth.
type UserPublic struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

// LoginResponse token de acceso más la identidad; el refresh token viaja
// aparte como cookie httpOnly.
type LoginResponse struct {
	User   UserPublic `json:"user"`
	Access string     `json:"access"`
}

// BootstrapStatusResponse indica si ya existe algún usuario (para decidir si
// ofrecer el alta del primer admin).
type BootstrapStatusResponse struct {
	UsersExist bool `json:"usersExist"`
}
