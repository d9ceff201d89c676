package domain

import "strings"

// Role is the fixed tag that decides which views and API routes a session may use.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleDoctor        Role = "DOCTOR"
	RoleNurse         Role = "NURSE"
	RoleReceptionist  Role = "RECEPTIONIST"
	RolePatient       Role = "PATIENT"
	RolePharmacist    Role = "PHARMACIST"
	RoleLabTechnician Role = "LAB_TECHNICIAN"
	RoleTest          Role = "TEST"
)

// rolePrefix is the conventional prefix the backend puts in front of role names.
const rolePrefix = "ROLE_"

var knownRoles = map[Role]struct{}{
	RoleAdmin:         {},
	RoleDoctor:        {},
	RoleNurse:         {},
	RoleReceptionist:  {},
	RolePatient:       {},
	RolePharmacist:    {},
	RoleLabTechnician: {},
	RoleTest:          {},
}

// NormalizeRole upper-cases s and strips the ROLE_ prefix, so "ROLE_DOCTOR",
// "doctor" and " Doctor " all become DOCTOR. The result is not checked
// against the known roles.
func NormalizeRole(s string) Role {
	r := strings.ToUpper(strings.TrimSpace(s))
	return Role(strings.TrimPrefix(r, rolePrefix))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string { return string(r) }
