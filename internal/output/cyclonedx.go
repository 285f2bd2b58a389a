// Package output provides result serializers.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/StinkyLord/rosettabom/internal/model"
	"github.com/StinkyLord/rosettabom/internal/sbom"
)

// ---- CycloneDX 1.4 JSON schema types ----

type cdxBOM struct {
	BOMFormat    string         `json:"bomFormat"`
	SpecVersion  string         `json:"specVersion"`
	Version      int            `json:"version"`
	SerialNumber string         `json:"serialNumber"`
	Metadata     cdxMetadata    `json:"metadata"`
	Components   []cdxComponent `json:"components"`
}

type cdxMetadata struct {
	Timestamp  string        `json:"timestamp"`
	Tools      []cdxTool     `json:"tools"`
	Properties []cdxProperty `json:"properties,omitempty"`
}

type cdxTool struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type cdxComponent struct {
	Type       string        `json:"type"`
	BOMRef     string        `json:"bom-ref"`
	Group      string        `json:"group,omitempty"`
	Name       string        `json:"name"`
	Version    string        `json:"version"`
	PURL       string        `json:"purl,omitempty"`
	Properties []cdxProperty `json:"properties,omitempty"`
}

type cdxProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WriteCycloneDX serialises the decoded components of a scan as a CycloneDX
// 1.4 JSON SBOM and writes it to the given output path. If outputPath is "-",
// it writes to stdout.
func WriteCycloneDX(result *sbom.Result, outputPath string, toolVersion string) error {
	bom := buildCycloneDX(result, toolVersion)

	data, err := json.MarshalIndent(bom, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal CycloneDX JSON: %w", err)
	}

	if outputPath == "-" {
		_, err = os.Stdout.Write(data)
		if err == nil {
			_, err = os.Stdout.WriteString("\n")
		}
		return err
	}

	return os.WriteFile(outputPath, append(data, '\n'), 0644)
}

func buildCycloneDX(result *sbom.Result, toolVersion string) cdxBOM {
	// Sort components by name, then version, for deterministic output
	ids := make([]*model.Identifier, len(result.Components))
	copy(ids, result.Components)
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Component != ids[j].Component {
			return ids[i].Component < ids[j].Component
		}
		return ids[i].Version < ids[j].Version
	})

	comps := make([]cdxComponent, 0, len(ids))
	for _, id := range ids {
		comp := cdxComponent{
			Type:    "library",
			BOMRef:  id.Key(),
			Group:   id.Extra(model.ExtraGroupID),
			Name:    id.Component,
			Version: id.Version,
			PURL:    id.PURL(),
		}
		if comp.Group == "" {
			comp.Group = id.Extra(model.ExtraNamespace)
		}

		// Where the identifier came from
		comp.Properties = append(comp.Properties,
			cdxProperty{Name: "rosettabom:sourceFormat", Value: string(id.Format)},
			cdxProperty{Name: "rosettabom:originalInput", Value: id.OriginalInput},
		)
		if eco := id.Extra(model.ExtraEcosystem); eco != "" {
			comp.Properties = append(comp.Properties, cdxProperty{
				Name:  "rosettabom:ecosystem",
				Value: eco,
			})
		}

		comps = append(comps, comp)
	}

	// Record every source document and its decode ratio
	var props []cdxProperty
	for _, d := range result.Documents {
		props = append(props, cdxProperty{
			Name:  "rosettabom:source",
			Value: fmt.Sprintf("%s (%s): %d/%d decoded", d.Source, d.Format, d.SuccessfullyDecoded, d.TotalPackages),
		})
	}

	return cdxBOM{
		BOMFormat:    "CycloneDX",
		SpecVersion:  "1.4",
		Version:      1,
		SerialNumber: "urn:uuid:" + uuid.NewString(),
		Metadata: cdxMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Tools: []cdxTool{
				{
					Vendor:  "StinkyLord",
					Name:    "rosettabom",
					Version: toolVersion,
				},
			},
			Properties: props,
		},
		Components: comps,
	}
}
