package auth

import (
	"context"
	"testing"

	"github.com/kriyahr/workforce-backend-go/internal/domain/user"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func hashOf(t *testing.T, password string) *string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(hash)
	return &s
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: hashOf(t, "s3cret"),
			IsAdmin:      true,
		},
	}}
	s := NewService(repo, jwt.NewJWTService("test-secret", "15m"))

	resp, err := s.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresAt, int64(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"admin@example.com": {ID: "user-1", Email: "admin@example.com", PasswordHash: hashOf(t, "s3cret")},
	}}
	s := NewService(repo, jwt.NewJWTService("test-secret", "15m"))

	_, err := s.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	s := NewService(&fakeUserRepo{byEmail: map[string]user.User{}}, jwt.NewJWTService("test-secret", "15m"))

	_, err := s.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_NoPasswordSet(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"sso@example.com": {ID: "user-2", Email: "sso@example.com"},
	}}
	s := NewService(repo, jwt.NewJWTService("test-secret", "15m"))

	_, err := s.Login(context.Background(), "sso@example.com", "anything")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}
