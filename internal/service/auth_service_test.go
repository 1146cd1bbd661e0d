package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigoGutierrezPacheco/blxcktrainingback/internal/domain"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	env := newTestEnv(t)
	return NewAuthService(env.userRepo, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "s3cret-pass", domain.RoleTrainer)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTrainer, user.Role)
	assert.NotEmpty(t, user.ID)
	// The hash is never handed back to callers.
	assert.Empty(t, user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The token carries the uid and role claims the middleware expects.
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.String(), claims["uid"])
	assert.Equal(t, string(domain.RoleTrainer), claims["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "s3cret-pass", domain.RoleUser)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Ana Again", "ana@example.com", "other-pass", domain.RoleUser)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "Eve", "eve@example.com", "s3cret-pass", domain.Role("superadmin"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginWrongCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "s3cret-pass", domain.RoleUser)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
