package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "typed", err: NotFound("gone"), want: CodeNotFound},
		{name: "wrapped", err: fmt.Errorf("handler: %w", Forbidden("no")), want: CodeForbidden},
		{name: "untyped", err: errors.New("boom"), want: CodeInternal},
		{name: "store", err: Store(errors.New("conn reset")), want: CodeStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: InvalidArgument("bad"), want: fiber.StatusBadRequest},
		{err: Unauthorized("who"), want: fiber.StatusUnauthorized},
		{err: Forbidden("no"), want: fiber.StatusForbidden},
		{err: NotFound("gone"), want: fiber.StatusNotFound},
		{err: Conflict("dup"), want: fiber.StatusConflict},
		{err: RateLimited("slow down"), want: fiber.StatusTooManyRequests},
		{err: Upstream(errors.New("llm down")), want: fiber.StatusBadGateway},
		{err: Store(errors.New("db down")), want: fiber.StatusInternalServerError},
		{err: errors.New("unknown"), want: fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("socket closed")
	err := Store(inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped cause must survive errors.Is")
	}
}
