// Package config loads cmd/qless-server's process-wide configuration:
// search tuning knobs, where the dictionary comes from, and CORS
// origins. cmd/qless-function does not use it; it reads its BigQuery
// table from environment variables. Shaped directly on the teacher-pack's
// vancomm-minesweeper-server config.go (Config/ReadConfig/Fields, a
// JSON file read wholesale into a struct), generalized from that
// server's Postgres/Jwt sections to this solver's search/dictionary
// sections.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game/pkg/search"
)

// DictionarySource describes where to load the word list from.
// cmd/qless-server loads it from File; the BigQuery fields are parsed
// and logged, but no command in this module loads a dictionary from them.
type DictionarySource struct {
	File string `json:"file"`

	BigQueryProject string `json:"bigquery_project"`
	BigQueryDataset string `json:"bigquery_dataset"`
	BigQueryTable   string `json:"bigquery_table"`
}

// Config is the whole of cmd/qless-server's configuration surface.
type Config struct {
	Addr       string            `json:"addr"`
	Search     search.Config     `json:"search"`
	Dictionary DictionarySource  `json:"dictionary"`
	Cors       CorsConfig        `json:"cors"`
}

// CorsConfig configures cmd/qless-server's rs/cors middleware.
type CorsConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

// Default returns a Config usable as-is for local development: the
// search engine's documented defaults, a file-backed dictionary at
// the conventional testdata path, and CORS wide open.
func Default() Config {
	return Config{
		Addr:       ":8080",
		Search:     search.DefaultConfig(),
		Dictionary: DictionarySource{File: "testdata/words.txt"},
		Cors:       CorsConfig{AllowedOrigins: []string{"*"}},
	}
}

// Fields renders c for structured logging at startup, mirroring the
// teacher's Config.Fields.
func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":              c.Addr,
		"search_w0":         c.Search.W0,
		"search_p0":         c.Search.P0,
		"search_wd":         c.Search.Wd,
		"search_pd":         c.Search.Pd,
		"search_phase_a":    c.Search.PhaseAFraction,
		"dictionary_file":   c.Dictionary.File,
		"dictionary_bq":     c.Dictionary.BigQueryTable,
		"cors_origins":      c.Cors.AllowedOrigins,
	}
}

// Read loads a Config from a JSON file at path, falling back to
// Default for any field the file omits by unmarshaling onto a
// Default-initialized value.
func Read(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
