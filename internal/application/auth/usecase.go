package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/domain/repository"
	"github.com/jcamargo/desviaciones-api/pkg/jwt"
)

// bcryptCost costo de hashing de contraseñas.
const bcryptCost = 12

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	RefreshSecret   string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: login, bootstrap del primer
// admin, refresh de sesión y registro (si la política lo permite).
type AuthUseCase struct {
	users        repository.UserRepository
	jwtCfg       JWTConfig
	allowOpenReg bool
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, allowOpenReg bool) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, allowOpenReg: allowOpenReg}
}

// Login verifica username/password y emite token de acceso más refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.CredentialsRequest) (*dto.LoginResponse, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}
	user, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(in.Password)); err != nil {
		return nil, "", domain.ErrUnauthorized
	}
	return uc.issueTokens(user)
}

// SetupAdmin crea el primer administrador. Solo opera con la colección de
// usuarios vacía: no es una vía de registro general.
func (uc *AuthUseCase) SetupAdmin(ctx context.Context, in dto.CredentialsRequest) (*dto.LoginResponse, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}
	count, err := uc.users.Count(ctx)
	if err != nil {
		return nil, "", err
	}
	if count > 0 {
		return nil, "", fmt.Errorf("%w: ya existe al menos un usuario", domain.ErrInvalidInput)
	}
	user, err := uc.createUser(ctx, in, entity.RoleAdmin)
	if err != nil {
		return nil, "", err
	}
	return uc.issueTokens(user)
}

// Register alta abierta de usuarios convencionales. Deshabilitada salvo que
// la configuración lo permita explícitamente.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.CredentialsRequest) (*dto.UserResponse, error) {
	if !uc.allowOpenReg {
		return nil, fmt.Errorf("%w: registro cerrado", domain.ErrForbidden)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.createUser(ctx, in, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	return dto.UserToResponse(user), nil
}

// Refresh valida el refresh token y emite un nuevo token de acceso con la
// identidad vigente del usuario (el rol puede haber cambiado desde el login).
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	userID, err := jwt.ParseRefresh(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, identityOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{User: publicOf(user), Access: access}, nil
}

// UsersExist indica si ya hay usuarios registrados (decide si el front ofrece
// el alta del primer admin).
func (uc *AuthUseCase) UsersExist(ctx context.Context) (bool, error) {
	count, err := uc.users.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, in dto.CredentialsRequest, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  in.Username,
		PassHash:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) issueTokens(user *entity.User) (*dto.LoginResponse, string, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, identityOf(user), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, "", err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.RefreshSecret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return nil, "", err
	}
	return &dto.LoginResponse{User: publicOf(user), Access: access}, refresh, nil
}

func identityOf(u *entity.User) jwt.Identity {
	return jwt.Identity{UserID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}
}

func publicOf(u *entity.User) dto.UserPublic {
	return dto.UserPublic{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}
}
