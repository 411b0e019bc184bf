package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Agromercados-api/internal/application/auth"
	"github.com/jhoicas/Agromercados-api/internal/application/dto"
	"github.com/jhoicas/Agromercados-api/internal/domain"
	"github.com/jhoicas/Agromercados-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Agromercados-api/pkg/jwt"
)

const secret = "auth-test-secret"

func newAuth() (*auth.AuthUseCase, *memory.Store) {
	s := memory.NewStore()
	uc := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"})
	return uc, s
}

func TestRegister_CreaUsuarioConRolUser(t *testing.T) {
	uc, s := newAuth()
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Email: "  Ana@Mercado.CU ", Password: "secreta123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@mercado.cu", out.Email)
	assert.Equal(t, "USER", out.Role)

	stored, err := s.Users().GetByEmail(ctx, "ana@mercado.cu")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "la contraseña se guarda hasheada")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.cu", Password: "12345678"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "A@B.cu", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.cu", Password: "1234567"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_GeneraTokenConRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.cu", Password: "12345678"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "A@B.CU", Password: "12345678"})
	require.NoError(t, err)

	userID, role, err := pkgjwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, "USER", role)

	me, err := uc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.cu", me.Email)
}

func TestLogin_CredencialesInvalidasRespondenIgual(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.cu", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.cu", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@b.cu", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.Me(context.Background(), "00000000-0000-0000-0000-000000000009")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
