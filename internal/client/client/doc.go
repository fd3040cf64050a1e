// Package client contains the transport layer of the task manager client.
//
// # Overview
//
// HTTPClient is the single path every REST call takes. Before a request it
// reads the session token from a TokenSource and attaches it as a bearer
// credential, plus an X-Request-ID. After a response it decodes 2xx bodies
// and converts every other outcome into *APIError.
//
// A 401 from any endpoint clears the session (SessionClearer) and, unless the
// Navigator already shows an auth view, navigates to the login view. The
// clearing happens before the error is returned to the caller.
//
// # Error Handling
//
// Callers match failures with errors.As(err, &apiErr) or with errors.Is
// against ErrUnauthorized, ErrValidation, ErrNotFound and ErrUnavailable.
// APIError.UserMessage renders a failure for display.
//
// # Local persistence
//
// InitDatabase opens the SQLite state file and applies the embedded goose
// migrations. The resulting local storage backs the persistent session.
package client
