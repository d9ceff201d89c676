package domain

import "time"

// AccessCode is an admin-managed registration code. The backend owns every
// invariant; the portal only lists and triggers changes.
type AccessCode struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	IsActive   bool       `json:"isActive"`
	UsageCount int        `json:"usageCount"`
	Expiry     *time.Time `json:"expiry,omitempty"`
}
