package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/session"
	"github.com/imramugh/ai-task-manager/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and open a session.
//   - Register: create an account (no session is opened).
//   - Logout: drop the session and show the login view.
//   - Me: fetch the profile from the server.
//   - VerifySession: confirm the local session with the server.
//   - password reset: request, verify and confirm a reset token.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	VerifySession(ctx context.Context) bool
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyResetToken(ctx context.Context, token string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error)
}

// AuthAPI is the slice of api.AuthAPI the service needs.
type AuthAPI interface {
	Login(ctx context.Context, c models.Credentials) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetResponse, error)
	VerifyResetToken(ctx context.Context, token string) (*models.ResetTokenInfo, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) (*models.PasswordResetResponse, error)
}

type authService struct {
	api       AuthAPI
	store     session.Store
	cookieTTL time.Duration
}

// NewAuthService binds the auth endpoints to the session store. cookieTTL is
// the lifetime of the token cookie; zero means the store default.
func NewAuthService(api AuthAPI, store session.Store, cookieTTL time.Duration) AuthService {
	return &authService{api: api, store: store, cookieTTL: cookieTTL}
}

// Login authenticates and stores the token. The returned profile is the one
// the store managed to cache; it is nil when that fetch failed.
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	tok, err := a.api.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	if err := a.store.Login(ctx, tok.AccessToken, a.cookieTTL); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	u, _ := a.store.CachedUser(ctx)
	return u, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}
	return a.api.Register(ctx, req)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	return a.api.Me(ctx)
}

// VerifySession checks the local session and then asks the server. A session
// the server rejects is logged out.
func (a *authService) VerifySession(ctx context.Context) bool {
	if !a.store.IsAuthenticated(ctx) {
		return false
	}
	token, _ := a.store.Token(ctx)
	u, err := a.api.Me(ctx)
	if err != nil {
		_ = a.store.Logout(ctx)
		return false
	}
	err = a.store.SaveUserFor(ctx, token, u)
	return !errors.Is(err, common.ErrSessionChanged)
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	r, err := a.api.RequestPasswordReset(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	return r.Message, nil
}

// VerifyResetToken returns the email the token was issued for.
func (a *authService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	info, err := a.api.VerifyResetToken(ctx, token)
	if err != nil {
		return "", err
	}
	return info.Email, nil
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	if len(newPassword) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	r, err := a.api.ConfirmPasswordReset(ctx, token, newPassword)
	if err != nil {
		return "", err
	}
	return r.Message, nil
}
