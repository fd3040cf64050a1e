// Package common defines shared constants and sentinel errors used across
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	// ErrSessionChanged means the session a profile was fetched for has
	// since ended or been replaced.
	ErrSessionChanged = errors.New("session changed")

	// Navigation.
	ErrRedirected = errors.New("redirected to login")
)
