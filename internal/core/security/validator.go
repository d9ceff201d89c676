package security

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	phoneSeparators = regexp.MustCompile(`[\s\-().]`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	namePattern     = regexp.MustCompile(`^[\p{L}\s'.\-]{2,50}$`)
)

const maxEmailLength = 254

// now is swapped in tests.
var now = time.Now

// ValidateInput runs every detection rule against input and always returns
// the sanitized copy. Each matching family contributes one error.
func ValidateInput(input, field string) domain.ValidationResult {
	field = label(field)
	res := domain.ValidationResult{
		IsValid:   true,
		Errors:    []string{},
		Sanitized: Sanitize(input),
	}
	for _, r := range Rules {
		if r.Match(input) {
			res.IsValid = false
			res.Errors = append(res.Errors, r.message(field))
		}
	}
	return res
}

// ValidateValue is ValidateInput for arbitrary values. Anything other than a
// string is already valid and passes through; Sanitized is left empty.
func ValidateValue(v any, field string) domain.ValidationResult {
	s, ok := v.(string)
	if !ok {
		return domain.ValidationResult{IsValid: true, Errors: []string{}}
	}
	return ValidateInput(s, field)
}

func label(field string) string {
	if strings.TrimSpace(field) == "" {
		return "Input"
	}
	return field
}

func invalid(res domain.ValidationResult, msg string) domain.ValidationResult {
	res.IsValid = false
	res.Errors = append(res.Errors, msg)
	return res
}

// required runs the security check and rejects empty input. ok is false when
// the returned result is already final.
func required(input, field string) (domain.ValidationResult, bool) {
	res := ValidateInput(input, field)
	if !res.IsValid {
		return res, false
	}
	if strings.TrimSpace(input) == "" {
		return invalid(res, label(field)+" is required"), false
	}
	return res, true
}

func ValidateEmail(input string) domain.ValidationResult {
	res, ok := required(input, "Email")
	if !ok {
		return res
	}
	v := strings.TrimSpace(input)
	if len(v) > maxEmailLength || !emailPattern.MatchString(v) {
		return invalid(res, "Please enter a valid email address")
	}
	return res
}

func ValidatePhone(input string) domain.ValidationResult {
	res, ok := required(input, "Phone number")
	if !ok {
		return res
	}
	digits := phoneSeparators.ReplaceAllString(strings.TrimSpace(input), "")
	if !phonePattern.MatchString(digits) {
		return invalid(res, "Please enter a valid phone number")
	}
	return res
}

func ValidateUsername(input string) domain.ValidationResult {
	res, ok := required(input, "Username")
	if !ok {
		return res
	}
	if !usernamePattern.MatchString(strings.TrimSpace(input)) {
		return invalid(res, "Username must be 3-20 characters and contain only letters, numbers and underscores")
	}
	return res
}

// ValidateName checks a person name: letters, spaces, apostrophes, dots and
// hyphens, 2 to 50 characters.
func ValidateName(input, field string) domain.ValidationResult {
	if field == "" {
		field = "Name"
	}
	res, ok := required(input, field)
	if !ok {
		return res
	}
	if !namePattern.MatchString(strings.TrimSpace(input)) {
		return invalid(res, field+" must be 2-50 letters and may contain spaces, apostrophes and hyphens")
	}
	return res
}

type passwordRule struct {
	ok      func(string) bool
	message string
}

var passwordRules = []passwordRule{
	{func(s string) bool { return len([]rune(s)) >= 8 }, "Password must be at least 8 characters long"},
	{regexp.MustCompile(`[A-Z]`).MatchString, "Password must contain at least one uppercase letter"},
	{regexp.MustCompile(`[a-z]`).MatchString, "Password must contain at least one lowercase letter"},
	{regexp.MustCompile(`\d`).MatchString, "Password must contain at least one number"},
	{regexp.MustCompile(`[^A-Za-z0-9\s]`).MatchString, "Password must contain at least one special character"},
}

// ValidatePassword grades the password against all five rules and reports
// every failing one. Strength: no failures strong, one or two medium,
// otherwise weak. A security hit replaces the rule errors and grades weak.
func ValidatePassword(input string) domain.PasswordResult {
	var failed []string
	for _, r := range passwordRules {
		if !r.ok(input) {
			failed = append(failed, r.message)
		}
	}
	out := domain.PasswordResult{Strength: strength(len(failed))}

	sec := ValidateInput(input, "Password")
	if !sec.IsValid {
		out.ValidationResult = sec
		out.Strength = domain.StrengthWeak
		return out
	}
	if input == "" {
		out.ValidationResult = invalid(sec, "Password is required")
		out.Strength = domain.StrengthWeak
		return out
	}
	sec.Errors = append(sec.Errors, failed...)
	sec.IsValid = len(failed) == 0
	out.ValidationResult = sec
	return out
}

func strength(failures int) domain.PasswordStrength {
	switch {
	case failures == 0:
		return domain.StrengthStrong
	case failures <= 2:
		return domain.StrengthMedium
	default:
		return domain.StrengthWeak
	}
}

// ValidateNumberRange parses input as a number within [min, max].
func ValidateNumberRange(input, field string, min, max float64) domain.ValidationResult {
	res, ok := required(input, field)
	if !ok {
		return res
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return invalid(res, label(field)+" must be a valid number")
	}
	if n < min || n > max {
		return invalid(res, fmt.Sprintf("%s must be between %s and %s",
			label(field), formatNumber(min), formatNumber(max)))
	}
	return res
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05"}

// ParseDate accepts a calendar date or a timestamp. Calendar dates are
// interpreted as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, domain.ErrFormatInvalid)
}

func ValidateDate(input, field string) domain.ValidationResult {
	res, _, _ := validateDate(input, field)
	return res
}

func validateDate(input, field string) (domain.ValidationResult, time.Time, bool) {
	res, ok := required(input, field)
	if !ok {
		return res, time.Time{}, false
	}
	t, err := ParseDate(input)
	if err != nil {
		return invalid(res, label(field)+" must be a valid date"), time.Time{}, false
	}
	return res, t, true
}

// ValidateFutureDate rejects dates at or before the current instant, so a
// calendar date equal to today is not in the future.
func ValidateFutureDate(input, field string) domain.ValidationResult {
	res, t, ok := validateDate(input, field)
	if !ok {
		return res
	}
	if !t.After(now()) {
		return invalid(res, label(field)+" must be in the future")
	}
	return res
}

func ValidatePastDate(input, field string) domain.ValidationResult {
	res, t, ok := validateDate(input, field)
	if !ok {
		return res
	}
	if !t.Before(now()) {
		return invalid(res, label(field)+" must be in the past")
	}
	return res
}

const DefaultMaxFileSize int64 = 5 << 20

var DefaultAllowedFileTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
}

// ValidateFile checks the file name for injection patterns, then size and
// content type. A zero maxSize or empty allowed list selects the defaults.
func ValidateFile(f domain.FileInfo, allowed []string, maxSize int64) domain.ValidationResult {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedFileTypes
	}
	res, ok := required(f.Name, "File name")
	if !ok {
		return res
	}
	if f.Size > maxSize {
		return invalid(res, fmt.Sprintf("File size must be less than %dMB", maxSize>>20))
	}
	if !slices.Contains(allowed, strings.ToLower(f.ContentType)) {
		return invalid(res, "File type not allowed")
	}
	return res
}
