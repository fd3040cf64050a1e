package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/imramugh/ai-task-manager/internal/client/models"
)

const authBase = "/api/auth"

type AuthAPI struct {
	d Doer
}

func NewAuthAPI(d Doer) *AuthAPI { return &AuthAPI{d: d} }

// Login exchanges credentials for an access token. The backend expects an
// OAuth2 password form where username carries the email.
func (a *AuthAPI) Login(ctx context.Context, c models.Credentials) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", c.Username)
	form.Set("password", c.Password)

	var out models.TokenResponse
	if err := a.d.DoForm(ctx, http.MethodPost, authBase+"/login", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var out models.User
	if err := a.d.Do(ctx, http.MethodPost, authBase+"/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me fetches the profile of the token's owner.
func (a *AuthAPI) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.d.Do(ctx, http.MethodGet, authBase+"/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetResponse, error) {
	var out models.PasswordResetResponse
	err := a.d.Do(ctx, http.MethodPost, authBase+"/password-reset/request", nil,
		models.PasswordResetRequest{Email: email}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) VerifyResetToken(ctx context.Context, token string) (*models.ResetTokenInfo, error) {
	var out models.ResetTokenInfo
	path := authBase + "/password-reset/verify/" + url.PathEscape(token)
	if err := a.d.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ConfirmPasswordReset(ctx context.Context, token, newPassword string) (*models.PasswordResetResponse, error) {
	var out models.PasswordResetResponse
	err := a.d.Do(ctx, http.MethodPost, authBase+"/password-reset/confirm", nil,
		models.PasswordResetConfirm{Token: token, NewPassword: newPassword}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
