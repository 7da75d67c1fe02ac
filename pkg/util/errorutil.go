package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes surfaced to clients. Each code carries a default HTTP status.
const (
	CodeInvalidBody   = "INVALID_BODY"
	CodeInvalidQuery  = "INVALID_QUERY"
	CodeInvalidParams = "INVALID_PARAMS"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeTokenRevoked  = "TOKEN_REVOKED"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeInternal      = "INTERNAL_ERROR"
)

var defaultStatus = map[string]int{
	CodeInvalidBody:   http.StatusBadRequest,
	CodeInvalidQuery:  http.StatusBadRequest,
	CodeInvalidParams: http.StatusBadRequest,
	CodeUnauthorized:  http.StatusUnauthorized,
	CodeInvalidToken:  http.StatusUnauthorized,
	CodeTokenExpired:  http.StatusUnauthorized,
	CodeTokenRevoked:  http.StatusUnauthorized,
	CodeNotFound:      http.StatusNotFound,
	CodeConflict:      http.StatusConflict,
	CodeInternal:      http.StatusInternalServerError,
}

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError. A zero status falls back to the
// code's default, or 500 for unknown codes.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	if status == 0 {
		if s, ok := defaultStatus[code]; ok {
			status = s
		} else {
			status = http.StatusInternalServerError
		}
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidBody(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidBody, message, 0, details)
}

func NewInvalidQuery(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidQuery, message, 0, details)
}

func NewInvalidParams(message string, details map[string]any) error {
	return NewDomainError(CodeInvalidParams, message, 0, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, 0, nil)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), 0, nil)
}

func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, 0, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized errors
// become INTERNAL_ERROR; the cause is retained for server-side logging only.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError) //nolint:errcheck
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
