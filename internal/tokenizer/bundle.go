package tokenizer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/StinkyLord/rosettabom/internal/vocab"
)

// Bundle is the persisted tokenizer: a vocabulary dump plus metadata.
type Bundle struct {
	Vocabulary vocab.Dump `json:"vocabulary"`
	Metadata   Metadata   `json:"metadata"`
}

// Metadata identifies the tool that wrote a bundle and when.
type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Type    string `json:"type"`
	Created string `json:"created"`
}

// Bundle snapshots the tokenizer for persistence.
func (t *Tokenizer) Bundle() (Bundle, error) {
	if t.vocab == nil {
		return Bundle{}, fmt.Errorf("cannot save unloaded tokenizer: %w", ErrNotTrained)
	}
	return Bundle{
		Vocabulary: t.vocab.Save(),
		Metadata: Metadata{
			Name:    Name,
			Version: Version,
			Type:    Type,
			Created: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

// SaveFile writes the tokenizer bundle as indented JSON. If path is "-", it
// writes to stdout.
func (t *Tokenizer) SaveFile(path string) error {
	b, err := t.Bundle()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokenizer bundle: %w", err)
	}

	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create %q: %w", dir, err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// LoadFile restores a tokenizer from a bundle written by SaveFile.
func LoadFile(path string, logger *slog.Logger) (*Tokenizer, Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("cannot read tokenizer %q: %w", path, err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, Metadata{}, fmt.Errorf("cannot parse tokenizer %q: %w", path, err)
	}

	t := New(nil, logger)
	if err := t.LoadVocabulary(b.Vocabulary); err != nil {
		return nil, Metadata{}, fmt.Errorf("cannot load tokenizer %q: %w", path, err)
	}
	return t, b.Metadata, nil
}
