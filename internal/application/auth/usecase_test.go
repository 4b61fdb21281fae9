package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcamargo/desviaciones-api/internal/application/dto"
	"github.com/jcamargo/desviaciones-api/internal/domain"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de persistencia en memoria
// ──────────────────────────────────────────────────────────────────────────────

type cuentasFalsas struct {
	porID map[string]*entity.User
}

func nuevasCuentasFalsas() *cuentasFalsas {
	return &cuentasFalsas{porID: map[string]*entity.User{}}
}

func (r *cuentasFalsas) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.porID {
		if strings.EqualFold(ex.Username, u.Username) {
			return domain.ErrUsernameTaken
		}
	}
	cp := *u
	r.porID[u.ID] = &cp
	return nil
}

func (r *cuentasFalsas) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *cuentasFalsas) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	// Misma colación que el adaptador real: búsqueda sin distinguir
	// mayúsculas.
	for _, u := range r.porID {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *cuentasFalsas) GetByIDs(context.Context, []string) ([]*entity.User, error) {
	return nil, nil
}

func (r *cuentasFalsas) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.porID[u.ID] = &cp
	return nil
}

func (r *cuentasFalsas) List(context.Context) ([]*entity.User, error) { return nil, nil }

func (r *cuentasFalsas) Delete(_ context.Context, id string) error {
	delete(r.porID, id)
	return nil
}

func (r *cuentasFalsas) Count(context.Context) (int, error) {
	return len(r.porID), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var cfgPrueba = JWTConfig{
	Secret:          "secreto-acceso-pruebas",
	RefreshSecret:   "secreto-refresh-pruebas",
	ExpMinutes:      30,
	RefreshExpHours: 168,
	Issuer:          "desviaciones-test",
}

func credenciales() dto.CredentialsRequest {
	return dto.CredentialsRequest{Username: "jlopez", Password: "secreto1"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bootstrap del primer admin
// ──────────────────────────────────────────────────────────────────────────────

func TestSetupAdmin_CreaAdminConBaseVacia(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)

	out, refresh, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.NotEmpty(t, out.Access)
	assert.NotEmpty(t, refresh)

	existe, err := uc.UsersExist(context.Background())
	require.NoError(t, err)
	assert.True(t, existe)
}

func TestSetupAdmin_RechazadoConUsuariosExistentes(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)

	_, _, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	_, _, err = uc.SetupAdmin(context.Background(), dto.CredentialsRequest{Username: "otro", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokensValidos(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)
	_, _, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	out, refresh, err := uc.Login(context.Background(), credenciales())
	require.NoError(t, err)

	id, err := jwt.Parse(cfgPrueba.Secret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, "jlopez", id.Username)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	userID, err := jwt.ParseRefresh(cfgPrueba.RefreshSecret, refresh)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
}

func TestLogin_UsernameSinDistinguirMayusculas(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)
	_, _, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	creds := credenciales()
	creds.Username = strings.ToUpper(creds.Username)

	out, _, err := uc.Login(context.Background(), creds)
	require.NoError(t, err, "la búsqueda por username usa la colación del índice único")
	assert.Equal(t, "jlopez", out.User.Username)
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)
	_, _, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), dto.CredentialsRequest{Username: "jlopez", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)

	_, _, err := uc.Login(context.Background(), credenciales())
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"usuario inexistente y contraseña incorrecta deben ser indistinguibles")
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_EmiteAccesoConRolVigente(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)
	primero, refresh, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	// El rol cambia después del login; el refresh debe reflejarlo.
	u := repo.porID[primero.User.ID]
	u.Role = entity.RoleUser

	out, err := uc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	id, err := jwt.Parse(cfgPrueba.Secret, out.Access)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, id.Role)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)

	_, err := uc.Refresh(context.Background(), "token.basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_UsuarioEliminado(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)
	primero, refresh, err := uc.SetupAdmin(context.Background(), credenciales())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), primero.User.ID))

	_, err = uc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro abierto
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CerradoPorDefecto(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, false)

	_, err := uc.Register(context.Background(), credenciales())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_HabilitadoCreaRolUser(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, true)

	out, err := uc.Register(context.Background(), credenciales())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role)

	guardado := repo.porID[out.ID]
	require.NotNil(t, guardado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PassHash), []byte("secreto1")))
}

func TestRegister_UsernameOcupado(t *testing.T) {
	repo := nuevasCuentasFalsas()
	uc := NewAuthUseCase(repo, cfgPrueba, true)

	_, err := uc.Register(context.Background(), credenciales())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), credenciales())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}
