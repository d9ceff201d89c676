// Package authz maps roles to their landing routes and gates access to
// navigable views.
package authz

import (
	"slices"
	"strings"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

const (
	FallbackRoute = "/dashboard"
	LoginRoute    = "/login"
)

var dashboardRoutes = map[domain.Role]string{
	domain.RoleAdmin:         "/dashboard/admin",
	domain.RoleDoctor:        "/dashboard/doctor",
	domain.RoleNurse:         "/dashboard/nurse",
	domain.RoleReceptionist:  "/dashboard/receptionist",
	domain.RolePatient:       "/dashboard/patient",
	domain.RolePharmacist:    "/dashboard/pharmacist",
	domain.RoleLabTechnician: "/dashboard/lab-technician",
}

// DashboardRouteFor normalizes role and returns its landing route, or
// FallbackRoute for unknown and empty roles.
func DashboardRouteFor(role string) string {
	if r, ok := dashboardRoutes[domain.NormalizeRole(role)]; ok {
		return r
	}
	return FallbackRoute
}

// Decision tells the caller whether to render a route or where to go
// instead. It is never an error.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Route    string `json:"route"`
	Redirect string `json:"redirect,omitempty"`
}

// IsRouteAllowed lets any authenticated role through when allowed is empty.
// Otherwise the normalized role must equal one of the entries exactly; a
// mismatch redirects to the role's own dashboard. An empty role is
// unauthenticated and goes to the login route.
func IsRouteAllowed(route, role string, allowed ...string) Decision {
	if strings.TrimSpace(role) == "" {
		return Decision{Route: route, Redirect: LoginRoute}
	}
	if len(allowed) == 0 {
		return Decision{Allowed: true, Route: route}
	}
	r := string(domain.NormalizeRole(role))
	if slices.Contains(allowed, r) {
		return Decision{Allowed: true, Route: route}
	}
	return Decision{Route: route, Redirect: DashboardRouteFor(r)}
}
