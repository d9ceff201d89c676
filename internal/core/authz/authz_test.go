package authz

import "testing"

func TestDashboardRouteFor(t *testing.T) {
	cases := map[string]string{
		"ROLE_DOCTOR":    "/dashboard/doctor",
		"doctor":         "/dashboard/doctor",
		" Doctor ":       "/dashboard/doctor",
		"ADMIN":          "/dashboard/admin",
		"role_nurse":     "/dashboard/nurse",
		"RECEPTIONIST":   "/dashboard/receptionist",
		"patient":        "/dashboard/patient",
		"PHARMACIST":     "/dashboard/pharmacist",
		"LAB_TECHNICIAN": "/dashboard/lab-technician",
		"TEST":           FallbackRoute,
		"janitor":        FallbackRoute,
		"":               FallbackRoute,
	}
	for in, want := range cases {
		if got := DashboardRouteFor(in); got != want {
			t.Errorf("DashboardRouteFor(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDashboardRouteFor_NormalizationIdempotent(t *testing.T) {
	a := DashboardRouteFor("ROLE_DOCTOR")
	b := DashboardRouteFor("doctor")
	if a != b || a != "/dashboard/doctor" {
		t.Fatalf("expected both to be /dashboard/doctor, got %q and %q", a, b)
	}
}

func TestIsRouteAllowed(t *testing.T) {
	d := IsRouteAllowed("/profile", "NURSE")
	if !d.Allowed || d.Redirect != "" {
		t.Fatalf("no allow-list must admit any role: %+v", d)
	}

	d = IsRouteAllowed("/dashboard/admin", "NURSE", "ADMIN", "TEST")
	if d.Allowed {
		t.Fatalf("nurse must not reach the admin dashboard")
	}
	if d.Redirect != "/dashboard/nurse" {
		t.Fatalf("expected redirect to /dashboard/nurse, got %q", d.Redirect)
	}

	d = IsRouteAllowed("/dashboard/admin", "role_admin", "ADMIN", "TEST")
	if !d.Allowed {
		t.Fatalf("normalized admin must pass: %+v", d)
	}

	d = IsRouteAllowed("/dashboard/admin", "ADMIN", "admin")
	if d.Allowed {
		t.Fatalf("allow-list entries are matched case-sensitively")
	}

	d = IsRouteAllowed("/dashboard/admin", "", "ADMIN")
	if d.Allowed || d.Redirect != LoginRoute {
		t.Fatalf("unauthenticated must go to login: %+v", d)
	}
}

func TestRouteTable(t *testing.T) {
	rt := DefaultRoutes()

	if d := rt.Check("/patients/42", "DOCTOR"); !d.Allowed {
		t.Fatalf("doctor should see patient detail: %+v", d)
	}
	if d := rt.Check("/patients", "PATIENT"); d.Allowed || d.Redirect != "/dashboard/patient" {
		t.Fatalf("patient should be redirected home: %+v", d)
	}
	if d := rt.Check("/admin/access-codes?page=2", "TEST"); !d.Allowed {
		t.Fatalf("test role should reach admin utilities: %+v", d)
	}
	if d := rt.Check("/dashboard/admin", "LAB_TECHNICIAN"); d.Redirect != "/dashboard/lab-technician" {
		t.Fatalf("unexpected decision %+v", d)
	}
	if roles := rt.AllowedRoles("/settings"); roles != nil {
		t.Fatalf("expected unrestricted route, got %v", roles)
	}
	if roles := rt.AllowedRoles("/patientsXYZ"); roles != nil {
		t.Fatalf("prefix match must respect path segments, got %v", roles)
	}
}
