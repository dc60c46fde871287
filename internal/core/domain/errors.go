package domain

import (
	"errors"
	"fmt"
)

// Storage sentinels. Adapters translate backend-specific failures into
// these so services can branch without knowing the backend.
var (
	ErrStorageNotFound = errors.New("record not found")
	ErrStorageNetwork  = errors.New("storage backend unreachable")
	ErrStorageConflict = errors.New("storage write conflict")
)

// AuthErrorCode is the closed set of authentication failure categories
type AuthErrorCode string

const (
	AuthErrInvalidEmail       AuthErrorCode = "invalidEmail"
	AuthErrWeakPassword       AuthErrorCode = "weakPassword"
	AuthErrEmailAlreadyInUse  AuthErrorCode = "emailAlreadyInUse"
	AuthErrUserNotFound       AuthErrorCode = "userNotFound"
	AuthErrWrongPassword      AuthErrorCode = "wrongPassword"
	AuthErrInvalidCredentials AuthErrorCode = "invalidCredentials"
	AuthErrNetwork            AuthErrorCode = "networkError"
	AuthErrUnknown            AuthErrorCode = "unknown"
)

// AuthError is a categorised authentication failure with a message safe
// to show the user
type AuthError struct {
	Code    AuthErrorCode
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Code, e.Message)
}

// NewAuthError builds an AuthError with the standard message for a code
func NewAuthError(code AuthErrorCode) *AuthError {
	return &AuthError{Code: code, Message: authMessage(code)}
}

func authMessage(code AuthErrorCode) string {
	switch code {
	case AuthErrInvalidEmail:
		return "The email address is badly formatted"
	case AuthErrWeakPassword:
		return "The password must be 6 characters long or more"
	case AuthErrEmailAlreadyInUse:
		return "The email address is already in use by another account"
	case AuthErrUserNotFound:
		return "There is no user record corresponding to this email"
	case AuthErrWrongPassword:
		return "The password is invalid"
	case AuthErrInvalidCredentials:
		return "The supplied credentials are incorrect or have expired"
	case AuthErrNetwork:
		return "A network error occurred, please try again"
	default:
		return "An unknown error occurred"
	}
}

// MigrationError reports which stage of the legacy import failed
type MigrationError struct {
	Stage string
	Err   error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed at %s: %v", e.Stage, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// ValidationError signals rejected user input with a field hint
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
