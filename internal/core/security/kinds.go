package security

import (
	"fmt"
	"math"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// Kind selects a validator by name, as used by the validation endpoint and
// the CLI.
type Kind string

const (
	KindInput      Kind = "input"
	KindEmail      Kind = "email"
	KindPhone      Kind = "phone"
	KindUsername   Kind = "username"
	KindName       Kind = "name"
	KindPassword   Kind = "password"
	KindNumber     Kind = "number"
	KindDate       Kind = "date"
	KindFutureDate Kind = "future_date"
	KindPastDate   Kind = "past_date"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindInput, KindEmail, KindPhone, KindUsername, KindName,
	KindPassword, KindNumber, KindDate, KindFutureDate, KindPastDate,
}

// Check describes one field to validate.
type Check struct {
	Kind  Kind
	Field string
	Value string
	// Min and Max bound KindNumber; nil means unbounded.
	Min *float64
	Max *float64
}

// Verdict is a ValidationResult with the password grade when one applies.
type Verdict struct {
	domain.ValidationResult
	Strength domain.PasswordStrength `json:"strength,omitempty"`
}

// Run dispatches c to the validator for its kind.
func Run(c Check) (Verdict, error) {
	var res domain.ValidationResult
	switch c.Kind {
	case KindInput, "":
		res = ValidateInput(c.Value, c.Field)
	case KindEmail:
		res = ValidateEmail(c.Value)
	case KindPhone:
		res = ValidatePhone(c.Value)
	case KindUsername:
		res = ValidateUsername(c.Value)
	case KindName:
		res = ValidateName(c.Value, c.Field)
	case KindPassword:
		p := ValidatePassword(c.Value)
		return Verdict{ValidationResult: p.ValidationResult, Strength: p.Strength}, nil
	case KindNumber:
		min, max := math.Inf(-1), math.Inf(1)
		if c.Min != nil {
			min = *c.Min
		}
		if c.Max != nil {
			max = *c.Max
		}
		res = ValidateNumberRange(c.Value, c.Field, min, max)
	case KindDate:
		res = ValidateDate(c.Value, c.Field)
	case KindFutureDate:
		res = ValidateFutureDate(c.Value, c.Field)
	case KindPastDate:
		res = ValidatePastDate(c.Value, c.Field)
	default:
		return Verdict{}, fmt.Errorf("unknown validation kind %q: %w", c.Kind, domain.ErrFormatInvalid)
	}
	return Verdict{ValidationResult: res}, nil
}
