package sbom

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/rosettabom/internal/metrics"
	"github.com/StinkyLord/rosettabom/internal/model"
	"github.com/StinkyLord/rosettabom/internal/resolver"
)

// testdataDir returns the absolute path to testdata/sbom.
func testdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	// file = .../internal/sbom/sbom_test.go
	root := filepath.Join(filepath.Dir(file), "..", "..")
	return filepath.Join(root, "testdata", "sbom")
}

func newScanner() (*Scanner, *metrics.Metrics) {
	m := metrics.New()
	return New(resolver.New(m, nil), m, nil), m
}

func TestParse_SPDX(t *testing.T) {
	doc, err := ReadFile(filepath.Join(testdataDir(), "spdx.json"))
	require.NoError(t, err)

	assert.Equal(t, FormatSPDX, doc.Format)
	assert.Equal(t, "SPDX-2.3", doc.Version)
	require.Len(t, doc.Packages, 4)
	assert.Equal(t, "SPDXRef-Package-2", doc.Packages[1].Ref)
	assert.Equal(t, "31.1-jre", doc.Packages[3].Version)
}

func TestParse_CycloneDX(t *testing.T) {
	doc, err := ReadFile(filepath.Join(testdataDir(), "cyclonedx.json"))
	require.NoError(t, err)

	assert.Equal(t, FormatCycloneDX, doc.Format)
	require.Len(t, doc.Packages, 3)
	assert.Equal(t, "com.fasterxml.jackson.core:jackson-databind", doc.Packages[0].Name)
	assert.Equal(t, "netty", doc.Packages[2].Ref, "nested components are flattened")

	assert.Equal(t, []string{
		"com.fasterxml.jackson.core:jackson-databind:2.12.3",
		"pkg:npm/lodash@4.17.21",
		"netty-all-4.1.65.Final",
	}, doc.Identifiers(false))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("x", []byte("not json"))
	assert.Error(t, err)

	_, err = Parse("x", []byte(`{"hello":"world"}`))
	assert.ErrorContains(t, err, "unrecognised SBOM")

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPackage_Identifier(t *testing.T) {
	tests := []struct {
		pkg        Package
		useVersion bool
		want       string
	}{
		{Package{Name: "guava", Version: "31.1-jre"}, false, "guava"},
		{Package{Name: "guava", Version: "31.1-jre"}, true, "guava-31.1-jre"},
		{Package{Name: "log4j-core-2.14.1", Version: "2.14.1"}, true, "log4j-core-2.14.1"},
		{Package{Name: "junit:junit", Version: "4.13.2"}, true, "junit:junit:4.13.2"},
		{Package{Name: "lodash", Version: "4.17.21", PURL: "pkg:npm/lodash@4.17.21"}, true, "pkg:npm/lodash@4.17.21"},
		{Package{Name: "bare"}, true, "bare"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.pkg.Identifier(tt.useVersion))
	}
}

func TestProcessDocument(t *testing.T) {
	s, m := newScanner()
	doc := &Document{
		Source: "inline",
		Format: FormatSPDX,
		Packages: []Package{
			{Name: "log4j-core-2.14.1"},
			{Name: "org.springframework:spring-core:5.3.21"},
		},
	}

	dr, err := s.ProcessDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 2, dr.TotalPackages)
	assert.Equal(t, 2, dr.SuccessfullyDecoded)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Packages.WithLabelValues("decoded")))
}

func TestProcessDocument_PartialFailure(t *testing.T) {
	s, m := newScanner()
	doc := &Document{Source: "inline", Format: FormatSPDX, Packages: []Package{
		{Name: "guava"},
		{Name: "spring-boot-2.5.0"},
		{Name: ""},
	}}

	dr, err := s.ProcessDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 3, dr.TotalPackages)
	assert.Equal(t, 1, dr.SuccessfullyDecoded)
	assert.False(t, dr.Results[0].OK())
	assert.True(t, dr.Results[1].OK())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Packages.WithLabelValues("failed")))
}

func TestScan(t *testing.T) {
	s, _ := newScanner()
	paths := []string{
		filepath.Join(testdataDir(), "spdx.json"),
		filepath.Join(testdataDir(), "cyclonedx.json"),
	}

	res, err := s.Scan(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, res.Documents, 2)
	assert.Empty(t, res.Failed)

	assert.Equal(t, paths[0], res.Documents[0].Source)
	assert.Equal(t, paths[1], res.Documents[1].Source)
	assert.Equal(t, 7, res.TotalPackages)
	// "guava" alone has no version and fails.
	assert.Equal(t, 6, res.SuccessfullyDecoded)

	// log4j-core appears as basic and PURL: one merged entry, the PURL wins.
	var log4j []*model.Identifier
	for _, c := range res.Components {
		if c.Component == "log4j-core" {
			log4j = append(log4j, c)
		}
	}
	require.Len(t, log4j, 1)
	assert.Equal(t, model.FormatPURL, log4j[0].Format)
	assert.Len(t, res.Components, 5)
}

func TestScan_UseVersion(t *testing.T) {
	s, _ := newScanner()
	s.UseVersion = true

	res, err := s.Scan(context.Background(), []string{filepath.Join(testdataDir(), "spdx.json")})
	require.NoError(t, err)
	assert.Equal(t, 4, res.SuccessfullyDecoded)
}

func TestScan_UnreadableDocument(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0644))

	s, _ := newScanner()
	res, err := s.Scan(context.Background(), []string{bad, filepath.Join(testdataDir(), "spdx.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{bad}, res.Failed)
	require.Len(t, res.Documents, 1)
}
