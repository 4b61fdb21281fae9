// Package user gestiona perfiles y la administración de cuentas.
// Las operaciones administrativas asumen que el transporte ya exigió rol
// admin; aquí se aplican las reglas que el rol no cubre: nadie elimina su
// propia cuenta ni se quita a sí mismo el rol de admin.
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/access"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
)

// bcryptCost costo de hashing de contraseñas.
const bcryptCost = 12

// UserUseCase casos de uso de usuarios.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// UpdateProfile autoedición de nombre completo y foto.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actorID string, in dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.PhotoURL != nil {
		u.PhotoURL = *in.PhotoURL
	}
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.UserToResponse(u), nil
}

// ChangePassword verifica la contraseña actual antes de aplicar la nueva.
func (uc *UserUseCase) ChangePassword(ctx context.Context, actorID string, in dto.PasswordChangeRequest) error {
	if err := in.Validate(); err != nil {
		return err
	}
	u, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(in.CurrentPassword)); err != nil {
		return fmt.Errorf("%w: contraseña actual incorrecta", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.PassHash = string(hash)
	u.UpdatedAt = time.Now()
	return uc.users.Update(ctx, u)
}

// Create alta administrativa de un usuario.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	now := time.Now()
	u := &entity.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		PassHash:  string(hash),
		FullName:  in.FullName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.UserToResponse(u), nil
}

// List retorna todos los usuarios (solo superficie admin).
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserToResponse(u))
	}
	return out, nil
}

// Update actualización administrativa parcial. Un admin no puede quitarse a
// sí mismo el rol de admin.
func (uc *UserUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Empty() {
		return nil, domain.ErrNothingToUpdate
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Username != nil && *in.Username != u.Username {
		existing, err := uc.users.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrUsernameTaken
		}
		u.Username = *in.Username
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.PhotoURL != nil {
		u.PhotoURL = *in.PhotoURL
	}
	if in.Role != nil && *in.Role != u.Role {
		if u.ID == actor.ID && *in.Role != entity.RoleAdmin {
			return nil, fmt.Errorf("%w: no puedes quitarte el rol de admin a ti mismo", domain.ErrInvalidInput)
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PassHash = string(hash)
	}
	u.UpdatedAt = time.Now()

	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.UserToResponse(u), nil
}

// Delete elimina una cuenta. Nadie elimina la propia.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if id == actor.ID {
		return fmt.Errorf("%w: no puedes eliminar tu propia cuenta", domain.ErrInvalidInput)
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(ctx, id)
}
