package tokenizer

import (
	"regexp"
	"slices"
	"strings"
)

// SeparatorRule picks the separator placed between two adjacent tokens when
// Match holds. An empty Separator joins the tokens directly.
type SeparatorRule struct {
	Name      string
	Match     func(current, next string) bool
	Separator string
}

var numeric = regexp.MustCompile(`^\d+$`)

// artifactTokens are artifact names commonly followed by a version in Maven
// coordinates.
var artifactTokens = []string{"core", "api", "boot", "databind", "lang3"}

// DefaultRules recovers the likely original separator from token shape alone.
// Rules are evaluated in order and the first match wins; append new rules
// before the catch-all.
var DefaultRules = []SeparatorRule{
	{
		Name: "next-has-separator",
		Match: func(_, next string) bool {
			return strings.HasPrefix(next, "-") || strings.HasPrefix(next, ".") || strings.HasPrefix(next, ":")
		},
	},
	{
		Name: "numeric-dot",
		Match: func(current, next string) bool {
			return (isNumber(current) && next == ".") || (current == "." && isNumber(next))
		},
	},
	{
		Name:      "group-id",
		Match:     func(current, _ string) bool { return looksLikeGroupID(current) },
		Separator: ":",
	},
	{
		Name:      "artifact",
		Match:     func(current, _ string) bool { return slices.Contains(artifactTokens, current) },
		Separator: ":",
	},
	{
		Name:      "version",
		Match:     func(current, next string) bool { return isNumber(current) && isNumber(next) },
		Separator: ".",
	},
	{
		Name:      "default",
		Match:     func(_, _ string) bool { return true },
		Separator: "-",
	},
}

func isNumber(token string) bool {
	return numeric.MatchString(token)
}

func looksLikeGroupID(token string) bool {
	return strings.Contains(token, "org") || strings.Contains(token, "com") || strings.Contains(token, "io")
}

// ChooseSeparator returns the separator of the first rule matching the pair,
// or "" when none does.
func ChooseSeparator(rules []SeparatorRule, current, next string) string {
	for _, r := range rules {
		if r.Match(current, next) {
			return r.Separator
		}
	}
	return ""
}

// Reconstruct joins tokens, inserting the separator chosen by rules between
// each adjacent pair. Nothing is inserted before an empty token.
func Reconstruct(rules []SeparatorRule, tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		b.WriteString(tok)
		if i+1 < len(tokens) && tokens[i+1] != "" {
			b.WriteString(ChooseSeparator(rules, tok, tokens[i+1]))
		}
	}
	return b.String()
}
