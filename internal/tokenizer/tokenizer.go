// Package tokenizer encodes component identifiers into vocabulary ids and
// rebuilds a best-effort string from ids.
//
// Encoding discards the original separators, so decoding guesses them from
// token shape (see DefaultRules). Token identity survives a round trip; the
// exact text does not have to.
package tokenizer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/StinkyLord/rosettabom/internal/logging"
	"github.com/StinkyLord/rosettabom/internal/vocab"
)

const (
	Name    = "RosettaBOM"
	Version = "2.0.0"
	Type    = "cybersecurity-component-tokenizer"
)

// ErrNotTrained is returned when the tokenizer has no vocabulary yet.
var ErrNotTrained = errors.New("tokenizer not loaded: train or load a vocabulary first")

// EncodedSequence is the result of Encode; Tokens[i] has id IDs[i].
type EncodedSequence struct {
	Input  string   `json:"input" yaml:"input"`
	Tokens []string `json:"tokens" yaml:"tokens"`
	IDs    []int    `json:"ids" yaml:"ids"`
	Length int      `json:"length" yaml:"length"`
}

// DecodedResult is the result of Decode. Text is a best-effort reconstruction.
type DecodedResult struct {
	IDs    []int    `json:"ids" yaml:"ids"`
	Tokens []string `json:"tokens" yaml:"tokens"`
	Text   string   `json:"text" yaml:"text"`
}

// RoundTrip reports how well text survives Encode followed by Decode.
type RoundTrip struct {
	Original   string          `json:"original" yaml:"original"`
	Encoded    EncodedSequence `json:"encoded" yaml:"encoded"`
	Decoded    DecodedResult   `json:"decoded" yaml:"decoded"`
	Success    bool            `json:"success" yaml:"success"`
	Similarity float64         `json:"similarity" yaml:"similarity"`
}

// Tokenizer encodes identifiers against a vocabulary and rebuilds text from
// ids with a separator rule table.
type Tokenizer struct {
	vocab  *vocab.Vocabulary
	rules  []SeparatorRule
	logger *slog.Logger

	// Workers bounds EncodeBatch and DecodeBatch concurrency.
	// Zero or less means one worker per CPU.
	Workers int
}

// New wraps v. A nil v yields an untrained tokenizer.
func New(v *vocab.Vocabulary, logger *slog.Logger) *Tokenizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tokenizer{vocab: v, rules: DefaultRules, logger: logger}
}

// WithRules replaces the separator rules used by Decode.
func (t *Tokenizer) WithRules(rules []SeparatorRule) *Tokenizer {
	t.rules = rules
	return t
}

// Vocabulary returns the wrapped vocabulary, or nil when untrained.
func (t *Tokenizer) Vocabulary() *vocab.Vocabulary { return t.vocab }

// Loaded reports whether a vocabulary is present.
func (t *Tokenizer) Loaded() bool { return t.vocab != nil }

// Train replaces the vocabulary with one built from corpus.
func (t *Tokenizer) Train(corpus string) *Tokenizer {
	t.vocab = vocab.New().BuildFromCorpus(corpus)
	t.logger.Info("tokenizer trained", "tokens", t.vocab.Size())
	return t
}

// TrainReader is Train over a newline-delimited stream.
func (t *Tokenizer) TrainReader(r io.Reader) error {
	v := vocab.New()
	if err := v.BuildFromReader(r); err != nil {
		return err
	}
	t.vocab = v
	t.logger.Info("tokenizer trained", "tokens", v.Size())
	return nil
}

// LoadVocabulary replaces the vocabulary with a restored dump.
func (t *Tokenizer) LoadVocabulary(d vocab.Dump) error {
	v := vocab.New()
	if err := v.Load(d); err != nil {
		return err
	}
	t.vocab = v
	return nil
}

// Encode tokenizes text and maps every token to its id. Unknown tokens map to
// the [UNK] id.
func (t *Tokenizer) Encode(text string) (EncodedSequence, error) {
	if t.vocab == nil {
		return EncodedSequence{}, ErrNotTrained
	}
	return t.encode(text), nil
}

func (t *Tokenizer) encode(text string) EncodedSequence {
	tokens := t.vocab.Tokenize(text)
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		ids[i] = t.vocab.Encode(tok)
	}
	return EncodedSequence{Input: text, Tokens: tokens, IDs: ids, Length: len(ids)}
}

// Decode maps ids back to tokens and reconstructs text from them.
func (t *Tokenizer) Decode(ids []int) (DecodedResult, error) {
	if t.vocab == nil {
		return DecodedResult{}, ErrNotTrained
	}
	return t.decode(ids), nil
}

func (t *Tokenizer) decode(ids []int) DecodedResult {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = t.vocab.Decode(id)
	}
	return DecodedResult{IDs: ids, Tokens: tokens, Text: Reconstruct(t.rules, tokens)}
}

// TestRoundTrip encodes and decodes text. Success means the reconstruction is
// byte-identical; Similarity scores near misses.
func (t *Tokenizer) TestRoundTrip(text string) (RoundTrip, error) {
	enc, err := t.Encode(text)
	if err != nil {
		return RoundTrip{}, err
	}
	dec := t.decode(enc.IDs)
	return RoundTrip{
		Original:   text,
		Encoded:    enc,
		Decoded:    dec,
		Success:    text == dec.Text,
		Similarity: Similarity(text, dec.Text),
	}, nil
}

// EncodeBatch encodes every text. Individual texts cannot fail once a
// vocabulary is loaded, so the batch fails as a whole only when the tokenizer
// is untrained or ctx is cancelled. Results keep input order.
func (t *Tokenizer) EncodeBatch(ctx context.Context, texts []string) ([]EncodedSequence, error) {
	if t.vocab == nil {
		return nil, ErrNotTrained
	}
	out := make([]EncodedSequence, len(texts))
	err := t.parallel(ctx, len(texts), func(i int) { out[i] = t.encode(texts[i]) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeBatch decodes every id list; see EncodeBatch for failure semantics.
func (t *Tokenizer) DecodeBatch(ctx context.Context, idLists [][]int) ([]DecodedResult, error) {
	if t.vocab == nil {
		return nil, ErrNotTrained
	}
	out := make([]DecodedResult, len(idLists))
	err := t.parallel(ctx, len(idLists), func(i int) { out[i] = t.decode(idLists[i]) })
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Tokenizer) parallel(ctx context.Context, n int, fn func(i int)) error {
	g, ctx := errgroup.WithContext(ctx)
	workers := t.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	return g.Wait()
}

// Stats is the vocabulary summary plus tokenizer identity.
type Stats struct {
	vocab.Stats `yaml:",inline"`
	IsLoaded    bool   `json:"isLoaded" yaml:"isLoaded"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
}

// Stats describes the loaded vocabulary.
func (t *Tokenizer) Stats() (Stats, error) {
	if t.vocab == nil {
		return Stats{}, ErrNotTrained
	}
	return Stats{Stats: t.vocab.Stats(), IsLoaded: true, Name: Name + " Tokenizer", Version: Version}, nil
}

// Tokenize returns the tokens of text without looking anything up.
func (t *Tokenizer) Tokenize(text string) []string {
	return vocab.Tokenize(text)
}
