package resolver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/StinkyLord/rosettabom/internal/model"
)

// BatchResult is one element of ExtractBatch. Exactly one of Identifier and
// Error is set.
type BatchResult struct {
	Input      string            `json:"input" yaml:"input"`
	Identifier *model.Identifier `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// OK reports whether the input was extracted.
func (b BatchResult) OK() bool { return b.Identifier != nil }

// Err returns the extraction error, if any.
func (b BatchResult) Err() error { return b.err }

// ExtractBatch extracts every input independently. A failing input yields an
// error record in its slot instead of aborting the batch, so the result always
// has len(inputs) entries in input order. Only cancellation of ctx stops the
// batch early, in which case the context error is returned.
func (r *Resolver) ExtractBatch(ctx context.Context, inputs []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())

	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.extractOne(input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Resolver) extractOne(input string) BatchResult {
	id, err := r.ExtractComponent(input)
	if err != nil {
		return BatchResult{Input: input, Error: err.Error(), err: err}
	}
	return BatchResult{Input: input, Identifier: &id}
}

func (r *Resolver) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}
