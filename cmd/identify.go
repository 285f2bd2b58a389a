package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/rosettabom/internal/resolver"
)

var extractCmd = &cobra.Command{
	Use:   "extract <identifier>...",
	Short: "Extract component, version and format from identifiers",
	Long: `Extract the canonical component, version and format of each identifier.

A single identifier prints its record or fails; several identifiers are
processed as a batch where malformed entries are reported inline.

Examples:
  rosettabom extract log4j-core-2.14.1
  rosettabom extract org.apache.logging.log4j:log4j-core:2.14.1 invalid`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var sameCmd = &cobra.Command{
	Use:   "same <identifier> <identifier>",
	Short: "Report whether two identifiers name the same component and version",
	Long: `Compare two identifiers regardless of format.

The result is "same", "different", or "incomparable" when either identifier
cannot be extracted. The command exits 0 in every case.

Example:
  rosettabom same log4j-core-2.14.1 pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1`,
	Args: cobra.ExactArgs(2),
	RunE: runSame,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported identifier formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printResult(newResolver().Stats())
	},
}

func init() {
	rootCmd.AddCommand(extractCmd, sameCmd, formatsCmd)
}

func newResolver() *resolver.Resolver {
	r := resolver.New(metric, logger)
	r.Workers = cfg.Workers
	return r
}

func runExtract(cmd *cobra.Command, args []string) error {
	r := newResolver()

	if len(args) == 1 {
		id, err := r.ExtractComponent(args[0])
		if err != nil {
			return fmt.Errorf("cannot extract %q: %w", args[0], err)
		}
		return printResult(id)
	}

	results, err := r.ExtractBatch(cmd.Context(), args)
	if err != nil {
		return err
	}
	return printResult(results)
}

type sameResult struct {
	A     string `json:"a" yaml:"a"`
	B     string `json:"b" yaml:"b"`
	Same  bool   `json:"same" yaml:"same"`
	Match string `json:"match" yaml:"match"`
}

func runSame(cmd *cobra.Command, args []string) error {
	m := newResolver().Compare(args[0], args[1])
	return printResult(sameResult{
		A:     args[0],
		B:     args[1],
		Same:  m == resolver.MatchSame,
		Match: m.String(),
	})
}
