package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Code identifies an error class. Codes are stable strings so the HTTP
// layer and clients can match on them.
type Code string

const (
	CodeInvalidArgument Code = "INVALID_INPUT"
	CodeUnauthorized    Code = "INVALID_TOKEN"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeConflict        Code = "CONFLICT"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeStore           Code = "DB_ERROR"
	CodeUpstream        Code = "UPSTREAM_ERROR"
	CodeInternal        Code = "INTERNAL_ERROR"
)

// Error is the typed error value returned by services. Callers match on
// Code instead of catching broad error hierarchies.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }
func Unauthorized(message string) *Error    { return New(CodeUnauthorized, message) }
func Forbidden(message string) *Error       { return New(CodeForbidden, message) }
func NotFound(message string) *Error        { return New(CodeNotFound, message) }
func Conflict(message string) *Error        { return New(CodeConflict, message) }
func RateLimited(message string) *Error     { return New(CodeRateLimited, message) }

// Store wraps a database/transaction failure.
func Store(err error) *Error {
	return Wrap(CodeStore, "database error", err)
}

// Upstream wraps a completion/transcription provider failure.
func Upstream(err error) *Error {
	return Wrap(CodeUpstream, "upstream provider error", err)
}

// CodeOf extracts the Code from err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps an error class to its response status.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeConflict:
		return fiber.StatusConflict
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	case CodeUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
