// Package config loads the journal configuration file: YAML on disk,
// validated against an embedded CUE schema after defaults are applied.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Config holds the process configuration.
type Config struct {
	// Database is the path to the SQLite catalog database.
	Database string `json:"database" yaml:"database"`

	// WordsPerMinute is the reading-speed estimate for articles without a
	// catalog-supplied reading time.
	WordsPerMinute int `json:"words_per_minute" yaml:"words_per_minute"`

	// Format is the default CLI output format ("text" or "json").
	Format string `json:"format" yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Database:       "journal.db",
		WordsPerMinute: 200,
		Format:         "text",
	}
}

// Load reads the config file at path, fills in defaults for absent fields,
// and validates the result against the embedded CUE schema.
//
// An empty path or a missing file yields Default() without error; any other
// read, decode, or validation problem is an error. Unknown YAML keys are
// rejected (they are usually typos).
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the config against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup config schema: %w", err)
	}

	unified := def.Unify(ctx.Encode(c))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return errors.New(cueerrors.Details(err, nil))
	}
	return nil
}
