// Package extract classifies raw component identifiers and turns them into
// canonical (component, version, format) records.
//
// Supported shapes:
//   - basic — "log4j-core-2.14.1"
//   - maven — "org.apache.logging.log4j:log4j-core:2.14.1"
//   - PURL  — "pkg:maven/org.apache.logging.log4j/log4j-core@2.14.1"
package extract

import (
	"strings"

	"github.com/StinkyLord/rosettabom/internal/model"
)

// Detect classifies input by its surface syntax. First match wins:
// a "pkg" prefix together with an '@' is a PURL, any ':' is a Maven
// coordinate, everything else is basic. A PURL missing its '@' therefore
// falls through to Maven.
func Detect(input string) model.Format {
	if strings.HasPrefix(input, "pkg") && strings.Contains(input, "@") {
		return model.FormatPURL
	}
	if strings.Contains(input, ":") {
		return model.FormatMaven
	}
	return model.FormatBasic
}

// Extractor turns an input already classified as one format into an
// identifier. Extractors do not re-check the format and never fail; fields
// they cannot recover are left empty for Identifier.Validate to report.
type Extractor func(input string) model.Identifier

// Registry maps every format to its extractor.
type Registry map[model.Format]Extractor

// DefaultRegistry returns a registry holding the three built-in extractors.
func DefaultRegistry() Registry {
	return Registry{
		model.FormatBasic: Basic,
		model.FormatMaven: Maven,
		model.FormatPURL:  PURL,
	}
}
