package security

import (
	"reflect"
	"testing"
)

func TestDetectSQLInjection(t *testing.T) {
	flagged := []string{
		"' OR 1=1",
		"admin' OR 'a'='a",
		" or 1 = 1 --",
		"1; DROP TABLE patients",
		"UNION SELECT password FROM users",
		"x' ; shutdown",
		"WAITFOR DELAY '0:0:5'",
	}
	for _, s := range flagged {
		if !DetectSQLInjection(s) {
			t.Errorf("expected SQL detection for %q", s)
		}
	}

	clean := []string{"John Smith", "Color of the sky", "Dr. O'Brien", "2024-05-01"}
	for _, s := range clean {
		if DetectSQLInjection(s) {
			t.Errorf("unexpected SQL detection for %q", s)
		}
	}
}

func TestDetectXSS(t *testing.T) {
	flagged := []string{
		"<script>alert(1)</script>",
		"<SCRIPT src=x></SCRIPT>",
		`<img src=x onerror=alert(1)>`,
		`<div onclick = "steal()">`,
		"javascript:alert(1)",
		"<iframe src=evil>",
	}
	for _, s := range flagged {
		if !DetectXSS(s) {
			t.Errorf("expected XSS detection for %q", s)
		}
	}

	for _, s := range []string{"plain text", "a < b and c > d", "one sentence"} {
		if DetectXSS(s) {
			t.Errorf("unexpected XSS detection for %q", s)
		}
	}
}

func TestDetectCommandInjection(t *testing.T) {
	for _, s := range []string{"`id`", "$(whoami)", "${HOME}", "a; rm -rf /", "x && curl evil", "a | sh"} {
		if !DetectCommandInjection(s) {
			t.Errorf("expected command detection for %q", s)
		}
	}
	for _, s := range []string{"(555) 123-4567", "Tom and Jerry", "take 2 tablets; after meals"} {
		if DetectCommandInjection(s) {
			t.Errorf("unexpected command detection for %q", s)
		}
	}
}

func TestDetectPathTraversal(t *testing.T) {
	for _, s := range []string{"../../etc/passwd", `..\windows`, "%2e%2e%2fetc", "..%2f", "%252e%252e", "file%00.txt"} {
		if !DetectPathTraversal(s) {
			t.Errorf("expected traversal detection for %q", s)
		}
	}
	for _, s := range []string{"report.pdf", "a.b.c", "v1.2"} {
		if DetectPathTraversal(s) {
			t.Errorf("unexpected traversal detection for %q", s)
		}
	}
}

func TestFamilies_AllMatchesReported(t *testing.T) {
	got := Families("<script>x</script> ' OR 1=1 `id` ../etc")
	want := []string{FamilySQL, FamilyXSS, FamilyCommand, FamilyPathTraversal}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRules_EachFamilyIndependentlyTestable(t *testing.T) {
	samples := map[string]string{
		FamilySQL:           "1 OR 1=1",
		FamilyXSS:           "<script>a</script>",
		FamilyCommand:       "$(id)",
		FamilyPathTraversal: "../x",
	}
	for _, r := range Rules {
		s, ok := samples[r.Name]
		if !ok {
			t.Fatalf("no sample for rule %s", r.Name)
		}
		if !r.Match(s) {
			t.Errorf("rule %s did not match %q", r.Name, s)
		}
	}
}
