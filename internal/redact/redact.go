package redact

import (
	"regexp"
	"strings"
)

// Marker replaces any value judged sensitive.
const Marker = "***"

// Rule pairs a pattern with the strategy used to rewrite its matches.
type Rule struct {
	Pattern *regexp.Regexp
	Replace func(match string) string
}

// keepLabel drops everything after the first ':' or '=' separator,
// keeping the label so redacted output stays readable.
func keepLabel(match string) string {
	idx := strings.IndexAny(match, ":=")
	if idx < 0 {
		return Marker
	}
	label := strings.TrimRight(match[:idx], " \t")
	return label + ": " + Marker
}

func labelRule(expr string) Rule {
	return Rule{
		Pattern: regexp.MustCompile(expr),
		Replace: keepLabel,
	}
}

var rules = []Rule{
	labelRule(`(?i)password\s*[:=]\s*\S+`),
	labelRule(`(?i)token\s*[:=]\s*\S+`),
	labelRule(`(?i)secret\s*[:=]\s*\S+`),
	labelRule(`(?i)api[_-]?key\s*[:=]\s*\S+`),
	labelRule(`(?i)aws[_-]?(?:access|secret)[_-]?key\s*[:=]\s*\S+`),
	labelRule(`(?i)authorization\s*[:=]\s*\S+`),
	{
		Pattern: regexp.MustCompile(`(?i)bearer\s+\S+`),
		Replace: func(string) string { return "bearer " + Marker },
	},
	labelRule(`(?i)private[_-]?key\s*[:=]\s*\S+`),
	labelRule(`(?i)certificate\s*[:=]\s*\S+`),
	labelRule(`(?i)oauth[_-]?token\s*[:=]\s*\S+`),
	{
		Pattern: regexp.MustCompile(`(?i)"value":\s*"[^"]*(?:password|token|secret|key)[^"]*"`),
		Replace: func(string) string { return `"value": "` + Marker + `"` },
	},
	{
		Pattern: regexp.MustCompile(`(?i)value\s*=\s*"[^"]*(?:password|token|secret|key)[^"]*"`),
		Replace: func(string) string { return `value = "` + Marker + `"` },
	},
	{
		// AWS access key IDs have a fixed, recognizable shape.
		Pattern: regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Replace: func(string) string { return "AKIA" + Marker },
	},
	{
		// Catch-all for long opaque literals in quotes.
		Pattern: regexp.MustCompile(`['"]\s*[a-zA-Z0-9_-]{20,}['"]`),
		Replace: func(string) string { return `"` + Marker + `"` },
	},
}

var sensitiveNameParts = []string{
	"password", "token", "secret", "key", "credential", "auth",
}

var entropyRun = regexp.MustCompile(`[a-z0-9]{20,}`)

// Rules returns the ordered rule set applied by Text.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Text applies every rule in order over free-form text.
func Text(text string) string {
	if text == "" {
		return text
	}

	redacted := text
	for _, rule := range rules {
		redacted = rule.Pattern.ReplaceAllStringFunc(redacted, rule.Replace)
	}
	return redacted
}

// Variable returns the marker when the variable name suggests the value
// is sensitive, otherwise the value unchanged.
func Variable(name, value string) string {
	if name == "" || value == "" {
		return value
	}

	lower := strings.ToLower(name)
	for _, part := range sensitiveNameParts {
		if strings.Contains(lower, part) {
			return Marker
		}
	}
	return value
}

// Variables applies Variable to every entry, returning a new map.
func Variables(vars map[string]string) map[string]string {
	if vars == nil {
		return nil
	}

	redacted := make(map[string]string, len(vars))
	for name, value := range vars {
		redacted[name] = Variable(name, value)
	}
	return redacted
}

// LooksSensitive reports whether a value appears to be a secret: long
// enough to matter and either carrying a sensitive keyword or shaped
// like an opaque machine-generated literal.
func LooksSensitive(value string) bool {
	if len(value) <= 10 {
		return false
	}

	lower := strings.ToLower(value)
	for _, part := range sensitiveNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return entropyRun.MatchString(lower)
}
