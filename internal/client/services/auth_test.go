package services

import (
	"context"
	"errors"
	"testing"

	"github.com/imramugh/ai-task-manager/internal/client/client"
	"github.com/imramugh/ai-task-manager/internal/client/models"
	"github.com/imramugh/ai-task-manager/internal/client/navigation"
	"github.com/imramugh/ai-task-manager/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake auth api ----

type fakeAuthAPI struct {
	LoginRet *models.TokenResponse
	LoginErr error

	RegisterRet *models.User
	RegisterErr error

	MeRet   *models.User
	MeErr   error
	MeCalls int

	ResetMsg   string
	ResetEmail string
	ResetErr   error

	LastCreds       models.Credentials
	LastRegister    models.RegisterRequest
	LastResetEmail  string
	LastResetToken  string
	LastNewPassword string
}

func (f *fakeAuthAPI) Login(_ context.Context, c models.Credentials) (*models.TokenResponse, error) {
	f.LastCreds = c
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuthAPI) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	f.LastRegister = req
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAuthAPI) Me(context.Context) (*models.User, error) {
	f.MeCalls++
	return f.MeRet, f.MeErr
}

func (f *fakeAuthAPI) RequestPasswordReset(_ context.Context, email string) (*models.PasswordResetResponse, error) {
	f.LastResetEmail = email
	if f.ResetErr != nil {
		return nil, f.ResetErr
	}
	return &models.PasswordResetResponse{Message: f.ResetMsg}, nil
}

func (f *fakeAuthAPI) VerifyResetToken(_ context.Context, token string) (*models.ResetTokenInfo, error) {
	f.LastResetToken = token
	if f.ResetErr != nil {
		return nil, f.ResetErr
	}
	return &models.ResetTokenInfo{Email: f.ResetEmail}, nil
}

func (f *fakeAuthAPI) ConfirmPasswordReset(_ context.Context, token, newPassword string) (*models.PasswordResetResponse, error) {
	f.LastResetToken = token
	f.LastNewPassword = newPassword
	if f.ResetErr != nil {
		return nil, f.ResetErr
	}
	return &models.PasswordResetResponse{Message: f.ResetMsg}, nil
}

// ---- helpers ----

func newStore(api *fakeAuthAPI) (*session.Manager, *navigation.Recorder) {
	nav := navigation.NewRecorder(navigation.ViewLogin)
	m := session.NewManager(
		session.NewMemoryBackend("cookie", true),
		session.NewMemoryBackend("local", false),
		session.WithNavigator(nav),
		session.WithUserFetcher(api),
	)
	return m, nav
}

var bob = &models.User{ID: 2, Email: "bob@example.com", Username: "bob", IsActive: true}

// ---- tests ----

func TestLogin_OpensSession(t *testing.T) {
	api := &fakeAuthAPI{LoginRet: &models.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, MeRet: bob}
	store, _ := newStore(api)
	svc := NewAuthService(api, store, 0)

	u, err := svc.Login(context.Background(), "  bob@example.com ", "secret")
	require.NoError(t, err)

	require.NotNil(t, u)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "bob@example.com", api.LastCreds.Username, "username trimmed")
	assert.True(t, store.IsAuthenticated(context.Background()))
	tok, _ := store.Token(context.Background())
	assert.Equal(t, "tok", tok)
}

func TestLogin_ProfileFailureStillLogsIn(t *testing.T) {
	api := &fakeAuthAPI{LoginRet: &models.TokenResponse{AccessToken: "tok"}, MeErr: errors.New("down")}
	store, _ := newStore(api)

	u, err := NewAuthService(api, store, 0).Login(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.True(t, store.IsAuthenticated(context.Background()))
}

func TestLogin_BadCredentials(t *testing.T) {
	api := &fakeAuthAPI{LoginErr: &client.APIError{Status: 401, Message: "Incorrect email or password"}}
	store, _ := newStore(api)

	u, err := NewAuthService(api, store, 0).Login(context.Background(), "bob", "wrong")
	assert.Nil(t, u)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated(context.Background()))
}

func TestLogin_MissingCredentials(t *testing.T) {
	api := &fakeAuthAPI{}
	store, _ := newStore(api)
	svc := NewAuthService(api, store, 0)

	_, err := svc.Login(context.Background(), " ", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Login(context.Background(), "bob", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Empty(t, api.LastCreds.Username, "no request sent")
}

func TestRegister(t *testing.T) {
	api := &fakeAuthAPI{RegisterRet: bob}
	store, _ := newStore(api)
	svc := NewAuthService(api, store, 0)

	req := models.RegisterRequest{Email: "bob@example.com", Username: "bob", Password: "secret123"}
	u, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, bob, u)
	assert.Equal(t, req, api.LastRegister)
	assert.False(t, store.IsAuthenticated(context.Background()), "register does not log in")

	_, err = svc.Register(context.Background(), models.RegisterRequest{Username: "x"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLogout(t *testing.T) {
	api := &fakeAuthAPI{LoginRet: &models.TokenResponse{AccessToken: "tok"}, MeRet: bob}
	store, nav := newStore(api)
	svc := NewAuthService(api, store, 0)
	_, err := svc.Login(context.Background(), "bob", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.False(t, store.IsAuthenticated(context.Background()))
	assert.Equal(t, navigation.ViewLogin, nav.CurrentView())
}

func TestVerifySession(t *testing.T) {
	ctx := context.Background()

	t.Run("no local session", func(t *testing.T) {
		api := &fakeAuthAPI{MeRet: bob}
		store, _ := newStore(api)
		assert.False(t, NewAuthService(api, store, 0).VerifySession(ctx))
		assert.Zero(t, api.MeCalls)
	})

	t.Run("server confirms", func(t *testing.T) {
		api := &fakeAuthAPI{MeRet: bob}
		store, _ := newStore(api)
		require.NoError(t, store.Login(ctx, "tok", 0))
		assert.True(t, NewAuthService(api, store, 0).VerifySession(ctx))
		u, ok := store.CachedUser(ctx)
		require.True(t, ok)
		assert.Equal(t, "bob", u.Username)
	})

	t.Run("server rejects", func(t *testing.T) {
		api := &fakeAuthAPI{MeRet: bob}
		store, nav := newStore(api)
		require.NoError(t, store.Login(ctx, "tok", 0))
		api.MeErr = &client.APIError{Status: 401}

		assert.False(t, NewAuthService(api, store, 0).VerifySession(ctx))
		assert.False(t, store.IsAuthenticated(ctx))
		assert.Equal(t, navigation.ViewLogin, nav.CurrentView())
	})
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()
	api := &fakeAuthAPI{ResetMsg: "If the email exists, a reset link has been sent", ResetEmail: "bob@example.com"}
	store, _ := newStore(api)
	svc := NewAuthService(api, store, 0)

	msg, err := svc.RequestPasswordReset(ctx, " bob@example.com ")
	require.NoError(t, err)
	assert.Equal(t, api.ResetMsg, msg)
	assert.Equal(t, "bob@example.com", api.LastResetEmail)

	email, err := svc.VerifyResetToken(ctx, "rt")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)

	_, err = svc.ConfirmPasswordReset(ctx, "rt", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, api.LastNewPassword)

	_, err = svc.ConfirmPasswordReset(ctx, "rt", "long-enough")
	require.NoError(t, err)
	assert.Equal(t, "long-enough", api.LastNewPassword)

	api.ResetErr = &client.APIError{Status: 400, Message: "Invalid or expired reset token"}
	_, err = svc.VerifyResetToken(ctx, "bad")
	assert.Error(t, err)
	_, err = svc.RequestPasswordReset(ctx, "x")
	assert.Error(t, err)
}

func TestMe(t *testing.T) {
	api := &fakeAuthAPI{MeRet: bob}
	store, _ := newStore(api)
	u, err := NewAuthService(api, store, 0).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bob, u)
}
