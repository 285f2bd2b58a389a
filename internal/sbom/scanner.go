package sbom

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/StinkyLord/rosettabom/internal/logging"
	"github.com/StinkyLord/rosettabom/internal/metrics"
	"github.com/StinkyLord/rosettabom/internal/model"
	"github.com/StinkyLord/rosettabom/internal/resolver"
)

// DocumentResult is the decode summary of one SBOM.
type DocumentResult struct {
	Source              string                 `json:"document" yaml:"document"`
	Format              DocumentFormat         `json:"format" yaml:"format"`
	TotalPackages       int                    `json:"totalPackages" yaml:"totalPackages"`
	SuccessfullyDecoded int                    `json:"successfullyDecoded" yaml:"successfullyDecoded"`
	Results             []resolver.BatchResult `json:"results" yaml:"results"`
}

// Result holds every per-document summary plus the merged set of decoded
// components.
type Result struct {
	Documents           []*DocumentResult   `json:"documents" yaml:"documents"`
	Components          []*model.Identifier `json:"components" yaml:"components"`
	TotalPackages       int                 `json:"totalPackages" yaml:"totalPackages"`
	SuccessfullyDecoded int                 `json:"successfullyDecoded" yaml:"successfullyDecoded"`
	Failed              []string            `json:"failedDocuments,omitempty" yaml:"failedDocuments,omitempty"`
}

// Scanner decodes the package lists of one or more SBOM documents.
type Scanner struct {
	Resolver *resolver.Resolver
	Metrics  *metrics.Metrics // optional
	Logger   *slog.Logger

	// UseVersion appends SPDX versionInfo to package names; see
	// Document.Identifiers.
	UseVersion bool
}

// New creates a Scanner.
func New(r *resolver.Resolver, m *metrics.Metrics, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Scanner{Resolver: r, Metrics: m, Logger: logger}
}

// ProcessDocument decodes every package of doc. A package that cannot be
// decoded is recorded in its slot and does not stop the rest.
func (s *Scanner) ProcessDocument(ctx context.Context, doc *Document) (*DocumentResult, error) {
	results, err := s.Resolver.ExtractBatch(ctx, doc.Identifiers(s.UseVersion))
	if err != nil {
		return nil, err
	}

	dr := &DocumentResult{
		Source:        doc.Source,
		Format:        doc.Format,
		TotalPackages: len(results),
		Results:       results,
	}
	for _, r := range results {
		status := "failed"
		if r.OK() {
			dr.SuccessfullyDecoded++
			status = "decoded"
		}
		if s.Metrics != nil {
			s.Metrics.Packages.WithLabelValues(status).Inc()
		}
	}
	s.Logger.Info("sbom processed",
		"document", doc.Source,
		"format", doc.Format,
		"packages", dr.TotalPackages,
		"decoded", dr.SuccessfullyDecoded)
	return dr, nil
}

// Scan reads and decodes every path concurrently. Unreadable documents are
// logged and listed in Result.Failed; only context cancellation fails the
// whole scan.
func (s *Scanner) Scan(ctx context.Context, paths []string) (*Result, error) {
	type docResult struct {
		index  int
		path   string
		result *DocumentResult
		err    error
	}

	resultCh := make(chan docResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := ReadFile(path)
			if err != nil {
				resultCh <- docResult{index: i, path: path, err: err}
				return
			}
			dr, err := s.ProcessDocument(ctx, doc)
			resultCh <- docResult{index: i, path: path, result: dr, err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Slots keep the output in argument order regardless of completion order.
	slots := make([]*DocumentResult, len(paths))
	var failed []string
	for r := range resultCh {
		if r.err != nil {
			s.Logger.Warn("sbom skipped", "document", r.path, "error", r.err)
			failed = append(failed, r.path)
			continue
		}
		slots[r.index] = r.result
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}
	sort.Strings(failed)

	res := &Result{Failed: failed}
	merged := map[string]*model.Identifier{}
	for _, dr := range slots {
		if dr == nil {
			continue
		}
		res.Documents = append(res.Documents, dr)
		res.TotalPackages += dr.TotalPackages
		res.SuccessfullyDecoded += dr.SuccessfullyDecoded
		for _, br := range dr.Results {
			if br.OK() {
				mergeIdentifier(merged, br.Identifier)
			}
		}
	}

	res.Components = make([]*model.Identifier, 0, len(merged))
	for _, id := range merged {
		res.Components = append(res.Components, id)
	}
	sort.Slice(res.Components, func(i, j int) bool {
		return res.Components[i].Key() < res.Components[j].Key()
	})
	return res, nil
}

// mergeIdentifier keeps one identifier per normalized component@version.
// Richer formats win: a PURL carries ecosystem and namespace, a Maven
// coordinate carries the groupId, a basic name carries neither.
func mergeIdentifier(merged map[string]*model.Identifier, incoming *model.Identifier) {
	key := incoming.Key()
	existing, ok := merged[key]
	if !ok || formatRank(incoming.Format) > formatRank(existing.Format) {
		merged[key] = incoming
	}
}

func formatRank(f model.Format) int {
	switch f {
	case model.FormatPURL:
		return 3
	case model.FormatMaven:
		return 2
	case model.FormatBasic:
		return 1
	default:
		return 0
	}
}
