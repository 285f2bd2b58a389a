package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChooseSeparator(t *testing.T) {
	tests := []struct {
		name          string
		current, next string
		want          string
	}{
		{"next starts with hyphen", "log4j", "-core", ""},
		{"next starts with dot", "2", ".14", ""},
		{"next starts with colon", "org", ":x", ""},
		{"number then dot", "2", ".", ""},
		{"dot then number", ".", "14", ""},
		{"group id org", "org", "apache", ":"},
		{"group id com", "com", "google", ":"},
		{"group id io", "netty-io", "x", ":"},
		{"group id substring", "logging", "log4j", "-"},
		{"group id substring io", "version", "x", ":"},
		{"artifact core", "core", "2", ":"},
		{"artifact databind", "databind", "2", ":"},
		{"version digits", "2", "14", "."},
		{"number then word", "2", "RELEASE", "-"},
		{"default", "log4j", "core", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseSeparator(DefaultRules, tt.current, tt.next))
		})
	}
}

func TestChooseSeparator_RuleOrder(t *testing.T) {
	// "core" is also an artifact token, but a next token carrying its own
	// separator wins because that rule comes first.
	assert.Equal(t, "", ChooseSeparator(DefaultRules, "core", "-x"))
	// "io" is both group-like and would otherwise default.
	assert.Equal(t, ":", ChooseSeparator(DefaultRules, "io", "1"))
}

func TestChooseSeparator_NoRules(t *testing.T) {
	assert.Equal(t, "", ChooseSeparator(nil, "a", "b"))
}

func TestChooseSeparator_AppendedRule(t *testing.T) {
	rules := append([]SeparatorRule{{
		Name:      "snapshot",
		Match:     func(_, next string) bool { return next == "SNAPSHOT" },
		Separator: "-",
	}}, DefaultRules...)
	assert.Equal(t, "-", ChooseSeparator(rules, "0", "SNAPSHOT"))
}

func TestDefaultRules_Names(t *testing.T) {
	names := make([]string, 0, len(DefaultRules))
	for _, r := range DefaultRules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"next-has-separator", "numeric-dot", "group-id", "artifact", "version", "default"}, names)
	assert.Equal(t, "default", DefaultRules[len(DefaultRules)-1].Name)
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		tokens []string
		want   string
	}{
		{nil, ""},
		{[]string{"guava"}, "guava"},
		{[]string{"spring", "boot", "2", "5", "0"}, "spring-boot:2.5.0"},
		{[]string{"log4j", "core", "2", "14", "1"}, "log4j-core:2.14.1"},
		{[]string{"org", "apache", "logging", "log4j"}, "org:apache-logging-log4j"},
		{[]string{"guava", "31", "1", "jre"}, "guava-31.1-jre"},
		{[]string{"a", "", "b"}, "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconstruct(DefaultRules, tt.tokens))
		})
	}
}
