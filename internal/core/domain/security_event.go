package domain

import "time"

// SecurityEvent is the audit record of an input that matched one or more
// injection families. Only a fingerprint of the input is kept.
type SecurityEvent struct {
	ID          string    `json:"id"`
	Field       string    `json:"field"`
	Families    []string  `json:"families"`
	Fingerprint string    `json:"fingerprint"`
	Path        string    `json:"path,omitempty"`
	RemoteIP    string    `json:"remote_ip,omitempty"`
	Username    string    `json:"username,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
