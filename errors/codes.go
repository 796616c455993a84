package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeValidation indicates malformed or missing input.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Authentication errors
const (
	// ErrCodeUnauthorized indicates the request carries no usable identity.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidCredentials indicates a failed handle/password check.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeTokenExpired indicates the session token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the session token failed verification.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeNotImplemented indicates a collaborator that was never configured.
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
)

// Kind is the coarse classification the pipeline maps to a status code.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindUnauthorized Kind = "Unauthorized"
	KindInternal     Kind = "InternalError"
)

var codeKinds = map[ErrorCode]Kind{
	ErrCodeValidation:         KindValidation,
	ErrCodeAlreadyExists:      KindValidation,
	ErrCodeUnauthorized:       KindUnauthorized,
	ErrCodeInvalidCredentials: KindUnauthorized,
	ErrCodeTokenExpired:       KindUnauthorized,
	ErrCodeInvalidToken:       KindUnauthorized,
	ErrCodeInternal:           KindInternal,
	ErrCodeNotImplemented:     KindInternal,
}

// KindOf returns the kind a code belongs to. Unknown codes are internal.
func KindOf(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindInternal
}

// StatusOf returns the HTTP status for a kind.
func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
