package domain

// ValidationResult is the per-field verdict produced by the security validator.
type ValidationResult struct {
	IsValid   bool     `json:"is_valid"`
	Errors    []string `json:"errors"`
	Sanitized string   `json:"sanitized"`
}

// PasswordStrength grades a password by the number of failed rules.
type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

// PasswordResult extends ValidationResult with a strength grade.
type PasswordResult struct {
	ValidationResult
	Strength PasswordStrength `json:"strength"`
}

// FileInfo describes an upload candidate.
type FileInfo struct {
	Name        string
	Size        int64
	ContentType string
}
