package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/security"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator with the security tags registered.
func NewValidator() (*echoValidator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := security.RegisterTags(v); err != nil {
		return nil, fmt.Errorf("register security tags: %w", err)
	}
	return &echoValidator{v: v}, nil
}

// Validate satisfies the echo.Validator interface. Each failing field
// becomes a *domain.FieldError so the error handler answers 422.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	errs := make([]error, 0, len(ve))
	for _, fe := range ve {
		errs = append(errs, &domain.FieldError{
			Field:    fe.Field(),
			Result:   domain.ValidationResult{Errors: []string{fieldError(fe)}},
			Security: isSecurityTag(fe.Tag()),
		})
	}
	return errors.Join(errs...)
}

func isSecurityTag(tag string) bool {
	switch tag {
	case "safe", "nosqli", "noxss":
		return true
	}
	return false
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "safe":
		return field + " contains potentially dangerous content"
	case "nosqli":
		return field + " contains potentially dangerous SQL patterns"
	case "noxss":
		return field + " contains potentially dangerous script content"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
