package common

// Header names attached to every outbound API request.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerScheme            = "Bearer"
)

// Storage keys shared by every session backend.
const (
	TokenKey          = "token"
	TokenTimestampKey = "token_timestamp"
	UserKey           = "user"
)

// DefaultAPIURL is used when neither config nor environment name a backend.
const DefaultAPIURL = "http://localhost:8000"
