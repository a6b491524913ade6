package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/petmaison-api/internal/application/auth"
	"github.com/jhoicas/petmaison-api/internal/application/dto"
	"github.com/jhoicas/petmaison-api/internal/domain"
	"github.com/jhoicas/petmaison-api/internal/domain/entity"
	"github.com/jhoicas/petmaison-api/internal/infrastructure/memory"
	"github.com/jhoicas/petmaison-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	users := memory.New(time.UTC).Users()
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 15, Issuer: "test"}), users
}

func TestRegisterUser_RolPorDefectoVendedor(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "  Caja@PetMaison.cl ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	assert.Equal(t, "caja@petmaison.cl", u.Email)
	assert.Equal(t, "caja@petmaison.cl", u.Name, "sin nombre se usa el email")

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.cl", Password: "corta"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Password: "secreto123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.cl", Password: "secreto123", Role: "gerente"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@petmaison.cl", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ADMIN@petmaison.cl", Password: "otroSecreto"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@petmaison.cl", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	t.Run("credenciales correctas", func(t *testing.T) {
		out, err := uc.Login(ctx, dto.LoginRequest{Email: "Admin@PetMaison.cl", Password: "secreto123"})
		require.NoError(t, err)
		assert.Equal(t, u.ID, out.User.ID)

		userID, role, err := jwt.Parse(secret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, userID)
		assert.Equal(t, entity.RoleAdmin, role)
	})

	t.Run("password incorrecta", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@petmaison.cl", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("email inexistente", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@petmaison.cl", Password: "secreto123"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: "u-inactivo", Email: "baja@petmaison.cl", PasswordHash: string(hash), Role: entity.RoleVendedor, Active: false,
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@petmaison.cl", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@petmaison.cl", Password: "secreto123", Name: "Vale"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vale", me.Name)

	_, err = uc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
