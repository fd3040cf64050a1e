package models

// User is the authenticated account as returned by /api/auth/me. The session
// store keeps a JSON copy of it as the cached profile.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	CreatedAt Time   `json:"created_at"`
	UpdatedAt *Time  `json:"updated_at,omitempty"`
}

// Credentials are posted form-encoded to /api/auth/login.
type Credentials struct {
	Username string
	Password string
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordResetResponse is the acknowledgement body of the reset endpoints.
type PasswordResetResponse struct {
	Message string `json:"message"`
}

// ResetTokenInfo is returned when a reset token verifies.
type ResetTokenInfo struct {
	Email string `json:"email"`
}
