// Package config resolves CLI settings from flags, ROSETTABOM_* environment
// variables and an optional rosettabom.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "ROSETTABOM"

// Keys.
const (
	KeyTokenizer    = "tokenizer"
	KeyCorpus       = "corpus"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyOutputFormat = "output.format"
	KeyWorkers      = "workers"
)

// Config is the resolved configuration for one CLI invocation.
type Config struct {
	Tokenizer    string // path of the persisted tokenizer bundle
	Corpus       string // training corpus, used by "train"
	LogLevel     string
	LogFormat    string
	OutputFormat string // json or yaml
	Workers      int
}

// Defaults mirrors the values used when nothing is configured.
func Defaults() Config {
	return Config{
		Tokenizer:    "data/tokenizer.json",
		Corpus:       "data/training-corpus.txt",
		LogLevel:     "warn",
		LogFormat:    "text",
		OutputFormat: "json",
	}
}

// Loader wraps a private viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader returns a loader with defaults set and ROSETTABOM_ environment
// overrides enabled.
func NewLoader() *Loader {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyTokenizer, d.Tokenizer)
	v.SetDefault(KeyCorpus, d.Corpus)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyOutputFormat, d.OutputFormat)
	v.SetDefault(KeyWorkers, d.Workers)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlag makes a flag override key when the user set it explicitly.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("cannot bind %q: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads the config file (path, or rosettabom.yaml in . and $HOME when
// path is empty) and returns the merged settings. A missing default file is
// not an error; a missing explicit file is.
func (l *Loader) Load(path string) (Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("rosettabom")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("$HOME")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cannot read config: %w", err)
		}
	}

	cfg := Config{
		Tokenizer:    l.v.GetString(KeyTokenizer),
		Corpus:       l.v.GetString(KeyCorpus),
		LogLevel:     l.v.GetString(KeyLogLevel),
		LogFormat:    l.v.GetString(KeyLogFormat),
		OutputFormat: strings.ToLower(l.v.GetString(KeyOutputFormat)),
		Workers:      l.v.GetInt(KeyWorkers),
	}
	switch cfg.OutputFormat {
	case "json", "yaml":
	default:
		return Config{}, fmt.Errorf("unsupported output format %q (supported: json, yaml)", cfg.OutputFormat)
	}
	return cfg, nil
}

// ConfigFileUsed returns the file Load read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
