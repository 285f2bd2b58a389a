// Package vocab implements the token<->id table the tokenizer is built on.
//
// A Vocabulary has a single owner. Concurrent reads (Encode, Decode,
// Tokenize) are safe; AddToken and Load must not run concurrently with
// anything else.
package vocab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// Special tokens, inserted at ids 0 to 3 in this order. Persisted
// vocabularies rely on these ids.
const (
	Unknown = "[UNK]"
	Start   = "[START]"
	End     = "[END]"
	Pad     = "[PAD]"
)

// SpecialTokens lists the special tokens in id order.
var SpecialTokens = []string{Unknown, Start, End, Pad}

// Vocabulary maps tokens to sequential ids and counts every token added.
type Vocabulary struct {
	tokenToID map[string]int
	idToToken map[int]string
	tokenFreq map[string]int
	nextID    int
}

// New returns a vocabulary holding only the special tokens.
func New() *Vocabulary {
	v := &Vocabulary{
		tokenToID: map[string]int{},
		idToToken: map[int]string{},
		tokenFreq: map[string]int{},
	}
	for _, t := range SpecialTokens {
		v.AddToken(t)
	}
	return v
}

// AddToken assigns the next id to token on first sight and bumps its
// frequency on every call.
func (v *Vocabulary) AddToken(token string) {
	if _, ok := v.tokenToID[token]; !ok {
		v.tokenToID[token] = v.nextID
		v.idToToken[v.nextID] = token
		v.nextID++
	}
	v.tokenFreq[token]++
}

// Tokenize splits text on runs of whitespace and the separators - : . @ /
// and drops empty pieces. It is the only normalization rule, shared by
// vocabulary construction and encoding.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}

func isSeparator(r rune) bool {
	switch r {
	case '-', ':', '.', '@', '/':
		return true
	}
	return unicode.IsSpace(r)
}

// Tokenize is a convenience wrapper around the package-level Tokenize.
func (v *Vocabulary) Tokenize(text string) []string {
	return Tokenize(text)
}

// BuildFromCorpus adds every token of every non-blank line of corpus.
func (v *Vocabulary) BuildFromCorpus(corpus string) *Vocabulary {
	for _, line := range strings.Split(corpus, "\n") {
		v.addLine(line)
	}
	return v
}

// BuildFromReader is BuildFromCorpus over a newline-delimited stream.
func (v *Vocabulary) BuildFromReader(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		v.addLine(line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading corpus: %w", err)
		}
	}
}

func (v *Vocabulary) addLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	for _, t := range Tokenize(line) {
		v.AddToken(t)
	}
}

// Encode returns the id of token, or the id of Unknown.
func (v *Vocabulary) Encode(token string) int {
	if id, ok := v.tokenToID[token]; ok {
		return id
	}
	return v.tokenToID[Unknown]
}

// Decode returns the token for id, or Unknown when id is not assigned.
func (v *Vocabulary) Decode(id int) string {
	if t, ok := v.idToToken[id]; ok {
		return t
	}
	return Unknown
}

// Contains reports whether token has an id.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.tokenToID[token]
	return ok
}

// Size is the number of distinct tokens.
func (v *Vocabulary) Size() int { return len(v.tokenToID) }

// NextID is the id the next new token will receive.
func (v *Vocabulary) NextID() int { return v.nextID }

// Freq returns how many times token has been added.
func (v *Vocabulary) Freq(token string) int { return v.tokenFreq[token] }

// TokenCount is a (token, frequency) pair.
type TokenCount struct {
	Token string `json:"token" yaml:"token"`
	Count int    `json:"count" yaml:"count"`
}

// MostFrequent returns up to n tokens ordered by descending frequency, ties
// broken by token.
func (v *Vocabulary) MostFrequent(n int) []TokenCount {
	counts := make([]TokenCount, 0, len(v.tokenFreq))
	for t, c := range v.tokenFreq {
		counts = append(counts, TokenCount{Token: t, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Token < counts[j].Token
	})
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Stats summarizes a vocabulary.
type Stats struct {
	TotalTokens    int          `json:"totalTokens" yaml:"totalTokens"`
	MostFrequent   []TokenCount `json:"mostFrequent" yaml:"mostFrequent"`
	VocabularySize int          `json:"vocabularySize" yaml:"vocabularySize"`
}

// Stats reports the total token count, the ten most frequent tokens and the
// vocabulary size.
func (v *Vocabulary) Stats() Stats {
	return Stats{
		TotalTokens:    len(v.tokenToID),
		MostFrequent:   v.MostFrequent(10),
		VocabularySize: v.nextID,
	}
}
