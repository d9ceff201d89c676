package authz

import (
	"sort"
	"strings"

	"github.com/medicore/hospital-portal/internal/core/domain"
)

// RouteTable holds the allow-list of each view. A route matches its own
// entry or the longest entry that is a path prefix of it.
type RouteTable struct {
	entries map[string][]string
	order   []string
}

func NewRouteTable(entries map[string][]domain.Role) *RouteTable {
	t := &RouteTable{entries: make(map[string][]string, len(entries))}
	for route, roles := range entries {
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		t.entries[route] = names
		t.order = append(t.order, route)
	}
	sort.Slice(t.order, func(i, j int) bool { return len(t.order[i]) > len(t.order[j]) })
	return t
}

// AllowedRoles returns the allow-list governing route, nil when unrestricted.
func (t *RouteTable) AllowedRoles(route string) []string {
	route = cleanRoute(route)
	for _, prefix := range t.order {
		if route == prefix || strings.HasPrefix(route, prefix+"/") {
			return t.entries[prefix]
		}
	}
	return nil
}

// Check applies IsRouteAllowed with the allow-list of route.
func (t *RouteTable) Check(route, role string) Decision {
	return IsRouteAllowed(route, role, t.AllowedRoles(route)...)
}

func cleanRoute(r string) string {
	if i := strings.IndexAny(r, "?#"); i >= 0 {
		r = r[:i]
	}
	if len(r) > 1 {
		r = strings.TrimRight(r, "/")
	}
	return r
}

var (
	clinicalStaff = []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist, domain.RoleTest}
)

// DefaultRoutes is the view table of the hospital portal.
func DefaultRoutes() *RouteTable {
	withTest := func(r ...domain.Role) []domain.Role { return append(r, domain.RoleTest) }
	return NewRouteTable(map[string][]domain.Role{
		"/dashboard/admin":          withTest(domain.RoleAdmin),
		"/dashboard/doctor":         withTest(domain.RoleDoctor),
		"/dashboard/nurse":          withTest(domain.RoleNurse),
		"/dashboard/receptionist":   withTest(domain.RoleReceptionist),
		"/dashboard/patient":        withTest(domain.RolePatient),
		"/dashboard/pharmacist":     withTest(domain.RolePharmacist),
		"/dashboard/lab-technician": withTest(domain.RoleLabTechnician),
		"/patients":                 clinicalStaff,
		"/doctors":                  withTest(domain.RoleAdmin, domain.RoleReceptionist),
		"/appointments":             withTest(domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist, domain.RolePatient),
		"/prescriptions":            withTest(domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RolePharmacist, domain.RolePatient),
		"/bills":                    withTest(domain.RoleAdmin, domain.RoleReceptionist, domain.RolePatient),
		"/admin":                    withTest(domain.RoleAdmin),
	})
}
