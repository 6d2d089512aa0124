package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-speechcoach-be/internal/pkg/apperrors"
)

var validate = validator.New()

// ValidateStruct checks a bound DTO against its validate tags. Shape errors
// must be rejected before any backend call is made.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validation(err.Error())
	}

	var problems []string
	for _, fieldErr := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return apperrors.Validation(strings.Join(problems, "; "))
}
