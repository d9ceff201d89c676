package security

import (
	"reflect"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"<b>", "&lt;b&gt;"},
		{"  hello   world \n\t again ", "hello world again"},
		{`"quoted" & 'single'`, "&quot;quoted&quot; &amp; &#x27;single&#x27;"},
		{"nul\x00byte", "nulbyte"},
		{"", ""},
		{"already &amp; encoded &lt;", "already &amp; encoded &lt;"},
		{"AT&T", "AT&amp;T"},
		{"a\u00a0\u00a0 \u00a0b", "a b"},
		{"\u2003ward\u3000 7\u00a0", "ward 7"},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitize_RunsEvenWhenFlagged(t *testing.T) {
	res := ValidateInput("<script>alert('x')</script>", "Comment")
	if res.IsValid {
		t.Fatalf("expected invalid result")
	}
	want := "&lt;script&gt;alert(&#x27;x&#x27;)&lt;/script&gt;"
	if res.Sanitized != want {
		t.Fatalf("expected %q, got %q", want, res.Sanitized)
	}
}

func TestSanitizeObject_Recursive(t *testing.T) {
	in := map[string]any{
		"name":  "  <b>Ann</b> ",
		"age":   42,
		"ok":    true,
		"tags":  []any{"a<b", 3.5, map[string]any{"deep": "x > y"}},
		"list":  []string{" q "},
		"empty": nil,
	}
	got := SanitizeObject(in).(map[string]any)

	if got["name"] != "&lt;b&gt;Ann&lt;/b&gt;" {
		t.Fatalf("unexpected name: %v", got["name"])
	}
	if got["age"] != 42 || got["ok"] != true || got["empty"] != nil {
		t.Fatalf("non-string leaves must pass through: %+v", got)
	}
	tags := got["tags"].([]any)
	if tags[0] != "a&lt;b" || tags[1] != 3.5 {
		t.Fatalf("unexpected tags: %+v", tags)
	}
	if tags[2].(map[string]any)["deep"] != "x &gt; y" {
		t.Fatalf("nested map not sanitized: %+v", tags[2])
	}
	if !reflect.DeepEqual(got["list"], []string{"q"}) {
		t.Fatalf("unexpected list: %+v", got["list"])
	}
	if in["name"] != "  <b>Ann</b> " {
		t.Fatalf("input must not be mutated")
	}
}

func TestSanitizeObject_Idempotent(t *testing.T) {
	inputs := []any{
		map[string]any{
			"note":  `Tom & Jerry <said> "hi" it's`,
			"inner": []any{"  a   b ", "&lt;kept&gt;", "&unknown;"},
		},
		"AT&T & &amp; &#x27;",
		[]string{"<", ">", "&"},
	}
	for _, in := range inputs {
		once := SanitizeObject(in)
		twice := SanitizeObject(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("second pass changed output:\n once=%#v\ntwice=%#v", once, twice)
		}
	}
}
