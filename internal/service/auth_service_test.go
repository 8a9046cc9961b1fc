package service

import (
	"context"
	"testing"

	"hostalpos/internal/config"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsuarioRepo struct {
	users map[uuid.UUID]*model.Usuario
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{users: make(map[uuid.UUID]*model.Usuario)}
}

func (f *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range f.users {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.users {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (f *fakeUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-hostalpos",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func seedUsuario(t *testing.T, repo *fakeUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.Usuario{Username: username, Nombre: "Recepción Test", PasswordHash: string(hash), Rol: rol, Activo: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeUsuarioRepo()
	seedUsuario(t, repo, "recepcion1", "secreto123", model.RolRecepcionista)
	svc := NewAuthService(repo, testAuthConfig())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "recepcion1", Password: "secreto123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RolRecepcionista, resp.User.Rol)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUsuarioRepo()
	seedUsuario(t, repo, "recepcion1", "secreto123", model.RolRecepcionista)
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "recepcion1", Password: "otro"})
	require.Error(t, err)
	// Mismo mensaje para password malo y usuario inexistente.
	_, err2 := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "otro"})
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUsuarioRepo()
	u := seedUsuario(t, repo, "recepcion1", "secreto123", model.RolRecepcionista)
	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))
	svc := NewAuthService(repo, testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "recepcion1", Password: "secreto123"})
	require.Error(t, err)
}

func TestRefresh_EmiteNuevosTokens(t *testing.T) {
	repo := newFakeUsuarioRepo()
	seedUsuario(t, repo, "super1", "secreto123", model.RolSupervisor)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "super1", Password: "secreto123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, model.RolSupervisor, refreshed.User.Rol)
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc := NewAuthService(newFakeUsuarioRepo(), testAuthConfig())

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	require.Error(t, err)
}

func TestRefresh_UsuarioDesactivadoDespuesDelLogin(t *testing.T) {
	repo := newFakeUsuarioRepo()
	u := seedUsuario(t, repo, "super1", "secreto123", model.RolSupervisor)
	svc := NewAuthService(repo, testAuthConfig())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "super1", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
}

func TestCrearUsuario_HashBcryptYListado(t *testing.T) {
	repo := newFakeUsuarioRepo()
	svc := NewAuthService(repo, testAuthConfig())

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "admin1",
		Nombre:   "Admin Uno",
		Password: "clave-larga-8",
		Rol:      model.RolAdministrador,
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	// El password nunca se guarda en claro.
	stored, err := repo.FindByUsername(context.Background(), "admin1")
	require.NoError(t, err)
	assert.NotEqual(t, "clave-larga-8", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-larga-8")))

	require.NoError(t, svc.DesactivarUsuario(context.Background(), stored.ID))
	activos, err := svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)
	todos, err := svc.ListarUsuarios(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)

	require.NoError(t, svc.ReactivarUsuario(context.Background(), stored.ID))
	activos, err = svc.ListarUsuarios(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, activos, 1)
}
