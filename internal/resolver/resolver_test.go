package resolver

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/rosettabom/internal/metrics"
	"github.com/StinkyLord/rosettabom/internal/model"
)

const (
	basicLog4j = "log4j-core-2.14.1"
	mavenLog4j = "org.apache.logging.log4j:log4j-core:2.14.1"
	purlLog4j  = "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1"
)

func TestExtractComponent_AllFormats(t *testing.T) {
	r := New(nil, nil)

	tests := []struct {
		input  string
		format model.Format
	}{
		{basicLog4j, model.FormatBasic},
		{mavenLog4j, model.FormatMaven},
		{purlLog4j, model.FormatPURL},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			id, err := r.ExtractComponent(tt.input)
			require.NoError(t, err)
			assert.Equal(t, "log4j-core", id.Component)
			assert.Equal(t, "2.14.1", id.Version)
			assert.Equal(t, tt.format, id.Format)
			assert.Equal(t, tt.input, id.OriginalInput)
		})
	}
}

func TestExtractComponent_Empty(t *testing.T) {
	r := New(nil, nil)
	_, err := r.ExtractComponent("")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "non-empty string")
}

func TestExtractComponent_Malformed(t *testing.T) {
	r := New(nil, nil)
	_, err := r.ExtractComponent("invalid")
	require.ErrorIs(t, err, ErrMalformed)

	var merr *MalformedError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, model.FormatBasic, merr.Format)
	require.Len(t, merr.Diagnostics, 1)
	assert.Equal(t, "component", merr.Diagnostics[0].Field)
}

func TestExtractComponent_UnsupportedFormat(t *testing.T) {
	r := New(nil, nil)
	delete(r.Extractors, model.FormatMaven)

	_, err := r.ExtractComponent(mavenLog4j)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSameComponent(t *testing.T) {
	r := New(nil, nil)

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"basic vs maven", basicLog4j, mavenLog4j, true},
		{"maven vs purl", mavenLog4j, purlLog4j, true},
		{"basic vs purl", basicLog4j, purlLog4j, true},
		{"different component", basicLog4j, "spring-boot-2.5.0", false},
		{"different version", basicLog4j, "log4j-core-2.15.0", false},
		{"empty input", basicLog4j, "", false},
		{"both malformed", "invalid", "invalid", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.SameComponent(tt.a, tt.b))
		})
	}
}

func TestCompare(t *testing.T) {
	r := New(nil, nil)
	assert.Equal(t, MatchSame, r.Compare(basicLog4j, purlLog4j))
	assert.Equal(t, MatchDifferent, r.Compare(basicLog4j, "log4j-core-2.15.0"))
	assert.Equal(t, MatchIncomparable, r.Compare(basicLog4j, ""))
	assert.Equal(t, MatchIncomparable, r.Compare("invalid", basicLog4j))
	assert.Equal(t, "incomparable", MatchIncomparable.String())
}

func TestExtractBatch_Isolation(t *testing.T) {
	r := New(nil, nil)

	results, err := r.ExtractBatch(context.Background(), []string{basicLog4j, "invalid"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].OK())
	assert.Equal(t, "log4j-core", results[0].Identifier.Component)

	assert.False(t, results[1].OK())
	assert.Equal(t, "invalid", results[1].Input)
	assert.NotEmpty(t, results[1].Error)
	assert.ErrorIs(t, results[1].Err(), ErrMalformed)
}

func TestExtractBatch_PreservesOrder(t *testing.T) {
	r := New(nil, nil)
	r.Workers = 4

	inputs := make([]string, 200)
	for i := range inputs {
		if i%7 == 0 {
			inputs[i] = ""
			continue
		}
		inputs[i] = fmt.Sprintf("lib%d-1.%d", i, i)
	}

	results, err := r.ExtractBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, res := range results {
		assert.Equal(t, inputs[i], res.Input)
		if i%7 == 0 {
			assert.ErrorIs(t, res.Err(), ErrInvalidInput)
			continue
		}
		require.True(t, res.OK(), "input %q", inputs[i])
		assert.Equal(t, fmt.Sprintf("lib%d", i), res.Identifier.Component)
		assert.Equal(t, fmt.Sprintf("1.%d", i), res.Identifier.Version)
	}
}

func TestExtractBatch_Cancelled(t *testing.T) {
	r := New(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.ExtractBatch(ctx, []string{basicLog4j})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractBatch_Empty(t *testing.T) {
	r := New(nil, nil)
	results, err := r.ExtractBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMetrics(t *testing.T) {
	m := metrics.New()
	r := New(m, nil)

	_, _ = r.ExtractComponent(basicLog4j)
	_, _ = r.ExtractComponent(purlLog4j)
	_, _ = r.ExtractComponent("")
	r.SameComponent(basicLog4j, mavenLog4j)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Extractions.WithLabelValues("basic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("PURL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("maven")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Comparisons.WithLabelValues("same")))
}

func TestStats(t *testing.T) {
	s := New(nil, nil).Stats()
	assert.Equal(t, "RosettaBOM", s.Name)
	assert.Equal(t, []model.Format{model.FormatBasic, model.FormatMaven, model.FormatPURL}, s.SupportedFormats)
}
