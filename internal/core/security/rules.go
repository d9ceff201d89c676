// Package security holds the input security validator: signature-based
// detection of injection attempts, unconditional sanitization, and the
// format validators built on top of both.
//
// Detection is heuristic. Legitimate text that happens to contain a keyword
// such as "select" is flagged, and crafted payloads can slip through; callers
// treat a verdict as advisory for display and as a gate for submission.
package security

import (
	"fmt"
	"regexp"
)

// Family names, also used as metric and audit labels.
const (
	FamilySQL           = "sql"
	FamilyXSS           = "xss"
	FamilyCommand       = "command"
	FamilyPathTraversal = "path_traversal"
)

// Rule is one detection family: any pattern hit flags the whole family once.
type Rule struct {
	Name     string
	Patterns []*regexp.Regexp
	// Message is a format string receiving the field label.
	Message string
}

// Match reports whether any of the rule's patterns matches s.
func (r Rule) Match(s string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func (r Rule) message(field string) string {
	return fmt.Sprintf(r.Message, field)
}

const shellCommands = `rm|ls|cat|wget|curl|nc|ncat|bash|sh|zsh|chmod|chown|kill|shutdown|reboot|powershell|cmd|python|perl`

// Rules is evaluated in order; the order fixes the order of reported errors.
var Rules = []Rule{
	{
		Name: FamilySQL,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|EXECUTE|UNION|TRUNCATE|MERGE)\b`),
			regexp.MustCompile(`(?i)\b(OR|AND)\b\s*['"]?\s*\w+\s*['"]?\s*=\s*['"]?\s*\w+`),
			regexp.MustCompile(`(?i)['"]\s*(OR|AND)\s*['"]`),
			regexp.MustCompile(`(--|/\*|\*/)`),
			regexp.MustCompile(`(?i)['"]\s*;`),
			regexp.MustCompile(`(?i)\b(WAITFOR\s+DELAY|SLEEP\s*\(|BENCHMARK\s*\()`),
			regexp.MustCompile(`(?i)\b(INFORMATION_SCHEMA|SYSOBJECTS|SYSCOLUMNS|XP_CMDSHELL)\b`),
		},
		Message: "%s contains potentially dangerous SQL patterns",
	},
	{
		Name: FamilyXSS,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
			regexp.MustCompile(`(?i)<\s*/?\s*(script|iframe|object|embed|applet|meta|link|style|base|form|svg)\b`),
			regexp.MustCompile(`(?i)\bon[a-z]+\s*=`),
			regexp.MustCompile(`(?i)(javascript|vbscript|livescript)\s*:`),
			regexp.MustCompile(`(?i)data\s*:\s*text/html`),
			regexp.MustCompile(`(?i)expression\s*\(`),
		},
		Message: "%s contains potentially dangerous script content",
	},
	{
		Name: FamilyCommand,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile("`"),
			regexp.MustCompile(`\$[({]`),
			regexp.MustCompile(`(?i)(;|&&?|\|\|?)\s*(` + shellCommands + `)\b`),
		},
		Message: "%s contains potentially dangerous command characters",
	},
	{
		Name: FamilyPathTraversal,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\.\.[/\\]`),
			regexp.MustCompile(`(?i)(%2e%2e|\.\.)(%2f|%5c)`),
			regexp.MustCompile(`(?i)%2e%2e[/\\]`),
			regexp.MustCompile(`(?i)%252e%252e`),
			regexp.MustCompile(`(?i)(\x00|%00)`),
		},
		Message: "%s contains path traversal sequences",
	},
}

func ruleByName(name string) Rule {
	for _, r := range Rules {
		if r.Name == name {
			return r
		}
	}
	panic("security: unknown rule " + name)
}

// DetectSQLInjection reports whether s matches the SQL family.
func DetectSQLInjection(s string) bool { return ruleByName(FamilySQL).Match(s) }

// DetectXSS reports whether s matches the script/markup family.
func DetectXSS(s string) bool { return ruleByName(FamilyXSS).Match(s) }

// DetectCommandInjection reports whether s matches the shell family.
func DetectCommandInjection(s string) bool { return ruleByName(FamilyCommand).Match(s) }

// DetectPathTraversal reports whether s matches the traversal family.
func DetectPathTraversal(s string) bool { return ruleByName(FamilyPathTraversal).Match(s) }

// Families returns the names of every family matching s, in rule order.
func Families(s string) []string {
	var out []string
	for _, r := range Rules {
		if r.Match(s) {
			out = append(out, r.Name)
		}
	}
	return out
}
