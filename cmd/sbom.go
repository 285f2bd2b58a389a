package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/StinkyLord/rosettabom/internal/output"
	"github.com/StinkyLord/rosettabom/internal/sbom"
)

var (
	flagCycloneDX   string
	flagWithVersion bool
	flagSummary     bool
)

var sbomCmd = &cobra.Command{
	Use:   "sbom <file>...",
	Short: "Decode every package identifier of SPDX or CycloneDX JSON documents",
	Long: `Read one or more SPDX 2.x or CycloneDX JSON documents and extract the
canonical component and version of every package. Use '-' to read stdin.

Examples:
  rosettabom sbom app.spdx.json
  rosettabom sbom app.spdx.json service.cdx.json --cyclonedx merged.json
  rosettabom sbom app.spdx.json --with-version --summary`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSBOM,
}

func init() {
	sbomCmd.Flags().StringVar(&flagCycloneDX, "cyclonedx", "", "Also write the decoded components as a CycloneDX 1.4 SBOM (use '-' for stdout)")
	sbomCmd.Flags().BoolVar(&flagWithVersion, "with-version", false, "Append SPDX versionInfo to package names that lack it")
	sbomCmd.Flags().BoolVar(&flagSummary, "summary", false, "Print only the totals, not every package result")

	rootCmd.AddCommand(sbomCmd)
}

type sbomSummary struct {
	Documents           int      `json:"documents" yaml:"documents"`
	Components          int      `json:"components" yaml:"components"`
	TotalPackages       int      `json:"totalPackages" yaml:"totalPackages"`
	SuccessfullyDecoded int      `json:"successfullyDecoded" yaml:"successfullyDecoded"`
	Failed              []string `json:"failedDocuments,omitempty" yaml:"failedDocuments,omitempty"`
}

func runSBOM(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(stderr, "rosettabom v%s\n", toolVersion)

	s := sbom.New(newResolver(), metric, logger)
	s.UseVersion = flagWithVersion

	result, err := s.Scan(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("sbom decode failed: %w", err)
	}
	if len(result.Documents) == 0 {
		return fmt.Errorf("no readable SBOM among %d file(s)", len(args))
	}

	fmt.Fprintf(stderr, "Decoded %d/%d package(s) into %d component(s)\n",
		result.SuccessfullyDecoded, result.TotalPackages, len(result.Components))

	if flagCycloneDX != "" {
		if err := output.WriteCycloneDX(result, flagCycloneDX, toolVersion); err != nil {
			return fmt.Errorf("failed to write CycloneDX output: %w", err)
		}
		if flagCycloneDX != "-" {
			fmt.Fprintf(stderr, "SBOM written to: %s\n", flagCycloneDX)
		}
		// stdout already carries the SBOM
		if flagCycloneDX == "-" {
			return nil
		}
	}

	if flagSummary {
		return printResult(sbomSummary{
			Documents:           len(result.Documents),
			Components:          len(result.Components),
			TotalPackages:       result.TotalPackages,
			SuccessfullyDecoded: result.SuccessfullyDecoded,
			Failed:              result.Failed,
		})
	}
	return printResult(result)
}
