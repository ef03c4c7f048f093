package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/likestem/authd/pkg/httpx"
)

// Error codes used in the error envelope.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeDuplicateUser      = "duplicate_user"
	ErrorCodeRoleNotFound       = "role_not_found"
	ErrorCodeUserNotFound       = "user_not_found"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeTokenExpired       = "token_expired"
	ErrorCodeMFAConflict        = "mfa_conflict"
	ErrorCodeServerError        = "server_error"
)

// AuthError is the error envelope the service returns on every failure. It
// implements the error interface so the SDK can surface server errors as
// typed Go errors.
type AuthError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this AuthError to an HTTP response writer.
func (e *AuthError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// Predefined errors shared by the server handlers and the SDK client.
var (
	ErrInvalidRequest = &AuthError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidJSONBody = &AuthError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid JSON body",
	}

	// ErrInvalidCredentials deliberately covers both unknown usernames and
	// wrong passwords.
	ErrInvalidCredentials = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid username or password",
	}

	ErrDuplicateUser = &AuthError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeDuplicateUser,
		Description: "username already taken",
	}

	ErrRoleNotFound = &AuthError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeRoleNotFound,
		Description: "requested role does not exist",
	}

	ErrUserNotFound = &AuthError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeUserNotFound,
		Description: "user not found",
	}

	ErrInvalidResetToken = &AuthError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidToken,
		Description: "reset token is invalid or already used",
	}

	ErrResetTokenExpired = &AuthError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeTokenExpired,
		Description: "reset token has expired",
	}

	ErrInvalidToken = &AuthError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid or expired",
	}

	ErrMFAConflict = &AuthError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeMFAConflict,
		Description: "MFA state does not allow this operation",
	}

	ErrServerError = &AuthError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAuthError creates a custom AuthError while keeping the envelope shape.
func NewAuthError(statusCode int, code, description string) *AuthError {
	return &AuthError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}
