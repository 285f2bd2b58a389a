// Package sbom reads package lists out of SPDX and CycloneDX JSON documents
// and runs every package identifier through the resolver.
package sbom

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// DocumentFormat is the SBOM standard a document follows.
type DocumentFormat string

const (
	FormatSPDX      DocumentFormat = "spdx"
	FormatCycloneDX DocumentFormat = "cyclonedx"
)

// Package is one entry of an SBOM package list.
type Package struct {
	Ref     string // SPDXID or bom-ref
	Name    string
	Version string // versionInfo / version, may be empty
	PURL    string // CycloneDX purl, may be empty
}

// Identifier returns the string handed to the resolver. By default that is
// the package name as written. With useVersion set, a CycloneDX purl is
// preferred, and a separate version field is appended to names that do not
// already end with it.
func (p Package) Identifier(useVersion bool) string {
	if !useVersion {
		return p.Name
	}
	if p.PURL != "" {
		return p.PURL
	}
	if p.Version == "" || strings.HasSuffix(p.Name, p.Version) {
		return p.Name
	}
	if strings.Contains(p.Name, ":") {
		return p.Name + ":" + p.Version
	}
	return p.Name + "-" + p.Version
}

// Document is the package list read from one SBOM file.
type Document struct {
	Source   string // file path, or "-" for stdin
	Format   DocumentFormat
	Version  string // spdxVersion or specVersion
	Packages []Package
}

// ---- minimal SPDX 2.x / CycloneDX 1.x JSON shapes ----

type spdxDocument struct {
	SPDXVersion string        `json:"spdxVersion"`
	Packages    []spdxPackage `json:"packages"`
}

type spdxPackage struct {
	SPDXID      string `json:"SPDXID"`
	Name        string `json:"name"`
	VersionInfo string `json:"versionInfo"`
}

type cdxDocument struct {
	BOMFormat   string         `json:"bomFormat"`
	SpecVersion string         `json:"specVersion"`
	Components  []cdxComponent `json:"components"`
}

type cdxComponent struct {
	BOMRef     string         `json:"bom-ref"`
	Name       string         `json:"name"`
	Group      string         `json:"group"`
	Version    string         `json:"version"`
	PURL       string         `json:"purl"`
	Components []cdxComponent `json:"components"`
}

// Parse decodes an SPDX or CycloneDX JSON document.
func Parse(source string, data []byte) (*Document, error) {
	var probe struct {
		SPDXVersion string `json:"spdxVersion"`
		BOMFormat   string `json:"bomFormat"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%s: not a JSON document: %w", source, err)
	}

	switch {
	case probe.SPDXVersion != "":
		var d spdxDocument
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%s: invalid SPDX document: %w", source, err)
		}
		doc := &Document{Source: source, Format: FormatSPDX, Version: d.SPDXVersion}
		for _, p := range d.Packages {
			doc.Packages = append(doc.Packages, Package{Ref: p.SPDXID, Name: p.Name, Version: p.VersionInfo})
		}
		return doc, nil

	case strings.EqualFold(probe.BOMFormat, "CycloneDX"):
		var d cdxDocument
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("%s: invalid CycloneDX document: %w", source, err)
		}
		doc := &Document{Source: source, Format: FormatCycloneDX, Version: d.SpecVersion}
		doc.Packages = flattenCDX(d.Components, doc.Packages)
		return doc, nil

	default:
		return nil, fmt.Errorf("%s: unrecognised SBOM (expected spdxVersion or bomFormat=CycloneDX)", source)
	}
}

// flattenCDX walks nested components depth-first.
func flattenCDX(comps []cdxComponent, out []Package) []Package {
	for _, c := range comps {
		name := c.Name
		if c.Group != "" {
			name = c.Group + ":" + c.Name
		}
		out = append(out, Package{Ref: c.BOMRef, Name: name, Version: c.Version, PURL: c.PURL})
		out = flattenCDX(c.Components, out)
	}
	return out
}

// ReadFile parses the document at path. A path of "-" reads stdin.
func ReadFile(path string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read SBOM %q: %w", path, err)
	}
	return Parse(path, data)
}

// Identifiers returns the resolver input for every package, in order.
// CycloneDX names never carry the version, so their version fields are
// always used; SPDX package names are used as written unless useVersion is set.
func (d *Document) Identifiers(useVersion bool) []string {
	useVersion = useVersion || d.Format == FormatCycloneDX
	out := make([]string, len(d.Packages))
	for i, p := range d.Packages {
		out[i] = p.Identifier(useVersion)
	}
	return out
}
