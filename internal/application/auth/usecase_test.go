package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Despacho-api/internal/application/auth"
	"github.com/jhoicas/Despacho-api/internal/application/dto"
	"github.com/jhoicas/Despacho-api/internal/domain"
	"github.com/jhoicas/Despacho-api/internal/domain/entity"
	"github.com/jhoicas/Despacho-api/pkg/jwt"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.byEmail[email], nil
}

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(&memUsers{byEmail: map[string]*entity.User{}},
		auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestCreateUserYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: " Ana@Despacho.co ", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "ana@despacho.co", u.Email)
	assert.Equal(t, "ana@despacho.co", u.Name, "sin nombre se usa el email")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@despacho.co", Password: "secreto123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestCreateUser_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@y.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@y.co", Password: "secreto123", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "x@y.co", Password: "secreto123"})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "X@y.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "v@y.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@y.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "v@y.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
