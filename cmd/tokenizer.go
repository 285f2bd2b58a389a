package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/StinkyLord/rosettabom/internal/output"
	"github.com/StinkyLord/rosettabom/internal/tokenizer"
)

var (
	flagCorpus string
	flagDiff   bool
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Build a tokenizer vocabulary from a corpus and save it",
	Long: `Train the tokenizer on a newline-delimited corpus of identifiers and write
the bundle to the --tokenizer path.

Example:
  rosettabom train --corpus data/training-corpus.txt --tokenizer data/tokenizer.json`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

var encodeCmd = &cobra.Command{
	Use:   "encode <text>",
	Short: "Encode an identifier into token ids",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := loadTokenizer()
		if err != nil {
			return err
		}
		enc, err := tok.Encode(args[0])
		if err != nil {
			return err
		}
		return printResult(enc)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode <json-array-of-ids>",
	Short: "Decode token ids back into an identifier",
	Long: `Decode a JSON array of token ids and reconstruct the identifier text.

Example:
  rosettabom decode '[4, 5, 6, 7, 8]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ids []int
		if err := json.Unmarshal([]byte(args[0]), &ids); err != nil {
			return fmt.Errorf("ids must be a JSON array of integers: %w", err)
		}
		tok, err := loadTokenizer()
		if err != nil {
			return err
		}
		dec, err := tok.Decode(ids)
		if err != nil {
			return err
		}
		return printResult(dec)
	},
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <text>",
	Short: "Split an identifier into tokens",
	Long: `Split an identifier into the tokens the vocabulary would see. No trained
tokenizer is needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(tokenizer.New(nil, logger).Tokenize(args[0]))
	},
}

var testCmd = &cobra.Command{
	Use:   "test <text>",
	Short: "Encode and decode an identifier and compare the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show tokenizer vocabulary statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tok, err := loadTokenizer()
		if err != nil {
			return err
		}
		s, err := tok.Stats()
		if err != nil {
			return err
		}
		return printResult(s)
	},
}

func init() {
	trainCmd.Flags().StringVarP(&flagCorpus, "corpus", "c", "", "Training corpus, one identifier per line (default from config)")
	testCmd.Flags().BoolVar(&flagDiff, "diff", false, "Print a readable comparison with an inline diff to stderr")

	rootCmd.AddCommand(trainCmd, encodeCmd, decodeCmd, tokenizeCmd, testCmd, statsCmd)
}

func loadTokenizer() (*tokenizer.Tokenizer, error) {
	tok, meta, err := tokenizer.LoadFile(cfg.Tokenizer, logger)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'rosettabom train' first)", err)
	}
	tok.Workers = cfg.Workers
	logger.Debug("tokenizer loaded", "path", cfg.Tokenizer, "version", meta.Version, "created", meta.Created)
	return tok, nil
}

func runTrain(cmd *cobra.Command, args []string) error {
	f, err := os.Open(cfg.Corpus)
	if err != nil {
		return fmt.Errorf("cannot open corpus: %w", err)
	}
	defer f.Close()

	tok := tokenizer.New(nil, logger)
	if err := tok.TrainReader(f); err != nil {
		return err
	}
	if err := tok.SaveFile(cfg.Tokenizer); err != nil {
		return fmt.Errorf("failed to save tokenizer: %w", err)
	}

	if cfg.Tokenizer != "-" {
		fmt.Fprintf(stderr, "Vocabulary of %d token(s) written to: %s\n", tok.Vocabulary().Size(), cfg.Tokenizer)
	}
	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	tok, err := loadTokenizer()
	if err != nil {
		return err
	}
	rt, err := tok.TestRoundTrip(args[0])
	if err != nil {
		return err
	}

	if flagDiff {
		report := output.RoundTripReport{ColorEnabled: !color.NoColor}
		if err := report.Write(stderr, rt.Original, rt.Decoded.Text, rt.Encoded.Tokens, rt.Similarity); err != nil {
			return err
		}
	}
	return printResult(rt)
}
