package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"study-assistant-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct `validate` tags and converts failures to
// an InvalidArgument error the handler middleware can map to 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.InvalidArgument("invalid request body")
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperror.InvalidArgument("invalid request: " + strings.Join(fields, ", "))
}
