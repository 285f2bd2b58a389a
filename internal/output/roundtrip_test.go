package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripReport_Success(t *testing.T) {
	var buf bytes.Buffer
	err := RoundTripReport{}.Write(&buf, "guava-31.1-jre", "guava-31.1-jre", []string{"guava", "31", "1", "jre"}, 1)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Tokens:    [guava, 31, 1, jre]")
	assert.Contains(t, out, "Success:   yes (100.0% similar)")
	assert.NotContains(t, out, "Diff:")
}

func TestRoundTripReport_Diff(t *testing.T) {
	var buf bytes.Buffer
	err := RoundTripReport{}.Write(&buf, "log4j-core-2.14.1", "log4j-core:2.14.1", nil, 16.0/17.0)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Success:   no (94.1% similar)")
	assert.Contains(t, out, "Diff:      log4j-core[---]{+:+}2.14.1")
}

func TestRoundTripReport_Color(t *testing.T) {
	var buf bytes.Buffer
	err := RoundTripReport{ColorEnabled: true}.Write(&buf, "a-b", "a:b", nil, 2.0/3.0)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[31m")
}
