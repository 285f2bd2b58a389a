package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader().Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rosettabom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tokenizer: /opt/rosetta/tokenizer.json
workers: 3
log:
  level: debug
output:
  format: yaml
`), 0644))

	t.Setenv("ROSETTABOM_LOG_FORMAT", "json")
	t.Setenv("ROSETTABOM_WORKERS", "8")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("tokenizer", "", "")
	require.NoError(t, fs.Parse([]string{"--tokenizer", "flag.json"}))

	l := NewLoader()
	require.NoError(t, l.BindFlag(KeyTokenizer, fs.Lookup("tokenizer")))

	cfg, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "flag.json", cfg.Tokenizer)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, path, l.ConfigFileUsed())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadOutputFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROSETTABOM_OUTPUT_FORMAT", "xml")

	_, err := NewLoader().Load("")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestBindFlag_Undefined(t *testing.T) {
	assert.Error(t, NewLoader().BindFlag(KeyCorpus, nil))
}
