// Package model defines the data structures shared by the extraction and
// SBOM layers.
package model

import "strings"

// Format identifies the surface syntax an identifier was written in.
type Format string

const (
	FormatBasic Format = "basic" // name-version, e.g. "log4j-core-2.14.1"
	FormatMaven Format = "maven" // group:artifact:version
	FormatPURL  Format = "PURL"  // pkg:type/namespace/name@version
)

// Formats lists every supported format in detection order.
var Formats = []Format{FormatPURL, FormatMaven, FormatBasic}

// Extras keys.
const (
	ExtraGroupID   = "groupId"
	ExtraEcosystem = "ecosystem"
	ExtraNamespace = "namespace"
)

// Identifier is the canonical (component, version, format) record extracted
// from one input string.
type Identifier struct {
	Component     string            `json:"component" yaml:"component"`
	Version       string            `json:"version" yaml:"version"`
	Format        Format            `json:"format" yaml:"format"`
	OriginalInput string            `json:"originalInput" yaml:"originalInput"`
	Extras        map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Diagnostic describes a single field that could not be recovered from the
// original input.
type Diagnostic struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return d.Field + ": " + d.Message
}

// Validate reports the fields that an extractor left empty. A nil result
// means the identifier is usable for matching.
func (id Identifier) Validate() []Diagnostic {
	var diags []Diagnostic
	if id.Component == "" {
		diags = append(diags, Diagnostic{Field: "component", Message: "empty component name"})
	}
	if id.Version == "" {
		diags = append(diags, Diagnostic{Field: "version", Message: "empty version"})
	}
	return diags
}

// Same reports whether both identifiers name the same component and version.
// The format is ignored.
func (id Identifier) Same(other Identifier) bool {
	return id.Component == other.Component && id.Version == other.Version
}

// Extra returns the named extra, or "" when it is absent.
func (id Identifier) Extra(key string) string {
	if id.Extras == nil {
		return ""
	}
	return id.Extras[key]
}

// Key returns a normalized grouping key for the identifier.
// It uses the normalized name (lowercase, _ and . replaced with -)
// combined with the version, so that:
//   - "Jackson_Core@2.13.0" and "jackson-core@2.13.0" collapse to the same key
//   - "log4j-core@2.14.1" and "log4j-core@2.15.0" remain distinct keys
//
// Key is only used to group SBOM output; Same stays exact.
func (id Identifier) Key() string {
	return normalizeKey(id.Component) + "@" + id.Version
}

// PURL renders the identifier as a package URL. Identifiers that did not come
// from a PURL get the maven type when a groupId is known and generic otherwise.
func (id Identifier) PURL() string {
	if id.Format == FormatPURL && id.OriginalInput != "" {
		return id.OriginalInput
	}
	var b strings.Builder
	b.WriteString("pkg:")
	if g := id.Extra(ExtraGroupID); g != "" && id.Format == FormatMaven {
		b.WriteString("maven/")
		b.WriteString(g)
		b.WriteByte('/')
	} else {
		b.WriteString("generic/")
	}
	b.WriteString(id.Component)
	if id.Version != "" {
		b.WriteByte('@')
		b.WriteString(id.Version)
	}
	return b.String()
}

// normalizeKey returns a normalized map key for a name string:
// lowercase, with underscores and dots replaced by hyphens.
func normalizeKey(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		b := name[i]
		if b >= 'A' && b <= 'Z' {
			b += 32
		}
		if b == '_' || b == '.' {
			b = '-'
		}
		result = append(result, b)
	}
	return string(result)
}
