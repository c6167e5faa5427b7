package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swachhjanta/backend/internal/config"
	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/store"
)

func newTestAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return NewAuthService(store.NewMemoryStore(), cfg)
}

func TestRegister(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:     "asha@example.com",
		Password:  "strong-password",
		FirstName: "Asha",
		LastName:  "Verma",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "citizen", resp.User.UserType)
	assert.Equal(t, "asha@example.com", resp.User.Email)

	// Registration always produces a citizen; the access token says so too
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "citizen", claims["user_type"])
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(&dto.RegisterRequest{Email: "", Password: "strong-password"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(&dto.RegisterRequest{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "strong-password"})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "other-password"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.Register(&dto.RegisterRequest{Email: "login@example.com", Password: "strong-password"})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "strong-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "login@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "strong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(&dto.RegisterRequest{Email: "rot@example.com", Password: "strong-password"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The presented token is revoked; replaying it must fail
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The rotated token still works
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)
}

func TestRefresh_UnknownToken(t *testing.T) {
	svc := newTestAuthService()
	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "made-up-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc := newTestAuthService()

	registered, err := svc.Register(&dto.RegisterRequest{Email: "out@example.com", Password: "strong-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: registered.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
