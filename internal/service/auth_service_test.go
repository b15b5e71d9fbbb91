package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uniadvisor/counsel-api/internal/dto"
	"github.com/uniadvisor/counsel-api/internal/repository"
)

func setupAuthService(t *testing.T) AuthService {
	t.Helper()

	db := openTestDB(t, "auth_service")
	users := repository.NewUserRepository(db)
	return NewAuthService(users, newValidator(), "test-secret", time.Hour, zerolog.Nop())
}

func TestSignupIssuesToken(t *testing.T) {
	svc := setupAuthService(t)

	token, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email:    "Amina@Example.com",
		FullName: "Amina Yusuf",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	require.Equal(t, "bearer", token.TokenType)
	require.Equal(t, "amina@example.com", token.User.Email)
	require.True(t, token.User.IsActive)
	require.False(t, token.User.OnboardingCompleted)

	parsed, err := jwt.Parse(token.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	subject, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	require.NotEmpty(t, subject)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)

	payload := dto.SignupRequest{Email: "amina@example.com", FullName: "Amina Yusuf", Password: "correct horse"}
	_, err := svc.Signup(context.Background(), payload)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := setupAuthService(t)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "amina@example.com", FullName: "Amina Yusuf", Password: "correct horse",
	})
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), dto.LoginRequest{Email: "amina@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "amina@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser(t *testing.T) {
	svc := setupAuthService(t)

	token, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "amina@example.com", FullName: "Amina Yusuf", Password: "correct horse",
	})
	require.NoError(t, err)

	user, err := svc.CurrentUser(context.Background(), token.User.ID)
	require.NoError(t, err)
	require.Equal(t, token.User.Email, user.Email)

	_, err = svc.CurrentUser(context.Background(), 9999)
	require.ErrorIs(t, err, ErrUserNotFound)
}
