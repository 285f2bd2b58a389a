package tokenizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1.0},
		{"", "", 1.0},
		{"abc", "abd", 2.0 / 3.0},
		{"abc", "", 0},
		{"abc", "abcdef", 0.5},
		// Position-anchored: a leading insertion ruins every match.
		{"abc", "xabc", 0},
		{"héllo", "hello", 0.8},
		// Distinct invalid bytes are distinct characters.
		{"log4j-\xff", "log4j-\xfe", 6.0 / 7.0},
		{"\xff", "\xfe", 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q|%q", tt.a, tt.b), func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, Similarity(tt.b, tt.a), 1e-9)
		})
	}
}

func TestSimilarity_OnlyEqualStringsScoreOne(t *testing.T) {
	pairs := [][2]string{
		{"log4j-\xff", "log4j-\xfe"},
		{"a\xc3", "a\xc4"},
		{"\xe2\x82", "\xe2\x83"},
	}
	for _, p := range pairs {
		assert.Less(t, Similarity(p[0], p[1]), 1.0, "%q vs %q", p[0], p[1])
	}
}
