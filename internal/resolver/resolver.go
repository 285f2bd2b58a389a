// Package resolver decides whether identifiers written in different formats
// name the same component and version.
package resolver

import (
	"fmt"
	"log/slog"

	"github.com/StinkyLord/rosettabom/internal/extract"
	"github.com/StinkyLord/rosettabom/internal/logging"
	"github.com/StinkyLord/rosettabom/internal/metrics"
	"github.com/StinkyLord/rosettabom/internal/model"
)

const name = "RosettaBOM"

// Match is the outcome of comparing two identifiers.
type Match int

const (
	MatchIncomparable Match = iota // at least one input could not be extracted
	MatchDifferent
	MatchSame
)

func (m Match) String() string {
	switch m {
	case MatchSame:
		return "same"
	case MatchDifferent:
		return "different"
	default:
		return "incomparable"
	}
}

// Resolver runs format detection and extraction.
type Resolver struct {
	Extractors extract.Registry
	Metrics    *metrics.Metrics // optional
	Logger     *slog.Logger

	// Workers bounds the number of inputs ExtractBatch processes at once.
	// Zero or less means one worker per CPU.
	Workers int
}

// New creates a Resolver with the built-in extractors.
func New(m *metrics.Metrics, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Resolver{
		Extractors: extract.DefaultRegistry(),
		Metrics:    m,
		Logger:     logger,
	}
}

// ExtractComponent detects the format of input and extracts its canonical
// identifier.
func (r *Resolver) ExtractComponent(input string) (model.Identifier, error) {
	id, err := r.extract(input)
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.Failures.WithLabelValues(errorKind(err)).Inc()
		}
		r.Logger.Debug("extraction failed", "input", input, "error", err)
		return model.Identifier{}, err
	}
	if r.Metrics != nil {
		r.Metrics.Extractions.WithLabelValues(string(id.Format)).Inc()
	}
	return id, nil
}

func (r *Resolver) extract(input string) (model.Identifier, error) {
	if input == "" {
		return model.Identifier{}, ErrInvalidInput
	}

	format := extract.Detect(input)
	fn, ok := r.Extractors[format]
	if !ok || fn == nil {
		return model.Identifier{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	id := fn(input)
	if diags := id.Validate(); len(diags) > 0 {
		return model.Identifier{}, &MalformedError{Input: input, Format: format, Diagnostics: diags}
	}
	return id, nil
}

// Compare extracts both inputs and reports whether they name the same
// component and version.
func (r *Resolver) Compare(a, b string) Match {
	m := r.compare(a, b)
	if r.Metrics != nil {
		r.Metrics.Comparisons.WithLabelValues(m.String()).Inc()
	}
	return m
}

func (r *Resolver) compare(a, b string) Match {
	idA, err := r.ExtractComponent(a)
	if err != nil {
		return MatchIncomparable
	}
	idB, err := r.ExtractComponent(b)
	if err != nil {
		return MatchIncomparable
	}
	if idA.Same(idB) {
		return MatchSame
	}
	return MatchDifferent
}

// SameComponent reports whether a and b name the same component and version.
// Inputs that cannot be extracted are never the same as anything.
func (r *Resolver) SameComponent(a, b string) bool {
	return r.Compare(a, b) == MatchSame
}

// Stats describes the resolver.
type Stats struct {
	Name             string         `json:"name" yaml:"name"`
	SupportedFormats []model.Format `json:"supportedFormats" yaml:"supportedFormats"`
}

// Stats reports the resolver name and the formats it has extractors for.
func (r *Resolver) Stats() Stats {
	formats := make([]model.Format, 0, len(model.Formats))
	for _, f := range []model.Format{model.FormatBasic, model.FormatMaven, model.FormatPURL} {
		if _, ok := r.Extractors[f]; ok {
			formats = append(formats, f)
		}
	}
	return Stats{Name: name, SupportedFormats: formats}
}
