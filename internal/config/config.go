//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-filmstats.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/reports"
)

// Input sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration for pgedge-filmstats.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Input describes where movie records are loaded from.
	Input InputConfig `mapstructure:"input"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// InputConfig holds configuration for loading the movie table.
type InputConfig struct {
	// Source is "csv" or "postgres".
	Source string `mapstructure:"source"`

	// Path is the CSV file to read ("-" for stdin).
	Path string `mapstructure:"path"`

	// Connection is the PostgreSQL connection string (postgres source).
	Connection string `mapstructure:"connection"`

	// Table is the PostgreSQL table to read (postgres source).
	Table string `mapstructure:"table"`
}

// ReportConfig holds configuration for running reports.
type ReportConfig struct {
	// Relation is the name reports run against: the base table or the view.
	Relation string `mapstructure:"relation"`

	// Format is the output format: table or json.
	Format string `mapstructure:"format"`

	// Limit is the top-N cut for leaderboard reports.
	Limit int `mapstructure:"limit"`

	// TopK is the subset size for composed reports.
	TopK int `mapstructure:"top_k"`

	// Parallelism caps concurrently running reports (0 = unbounded).
	Parallelism int `mapstructure:"parallelism"`

	// Certificate is matched by the certificate filter report.
	Certificate string `mapstructure:"certificate"`

	// MetaScoreBelow is the exclusive bound of the low meta score report.
	MetaScoreBelow int `mapstructure:"meta_score_below"`

	// RatingThreshold is the exclusive bound of the rating share report.
	RatingThreshold float64 `mapstructure:"rating_threshold"`

	// MinMovies is the exclusive film count bound for acclaimed directors.
	MinMovies int `mapstructure:"min_movies"`

	// MinRating is the exclusive average rating bound for acclaimed directors.
	MinRating float64 `mapstructure:"min_rating"`
}

// GenerateConfig holds configuration for synthetic data generation.
type GenerateConfig struct {
	// Rows is the number of movies to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes output reproducible (0 = random).
	Seed uint64 `mapstructure:"seed"`

	// NullProbability is the chance each nullable field is left empty.
	NullProbability float64 `mapstructure:"null_probability"`

	// Output is the CSV file to write ("-" for stdout).
	Output string `mapstructure:"output"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	p := reports.DefaultParams()
	return &Config{
		LogLevel: "info",
		Input: InputConfig{
			Source: SourceCSV,
			Table:  movie.BaseTable,
		},
		Report: ReportConfig{
			Relation:        movie.BaseTable,
			Format:          "table",
			Limit:           p.Limit,
			TopK:            p.TopK,
			Parallelism:     4,
			Certificate:     p.Certificate,
			MetaScoreBelow:  p.MetaScoreBelow,
			RatingThreshold: p.RatingThreshold,
			MinMovies:       p.MinMovies,
			MinRating:       p.MinRating,
		},
		Generate: GenerateConfig{
			Rows:            1000,
			NullProbability: 0.05,
			Output:          "-",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-filmstats.yaml
// 3. ~/.config/pgedge-filmstats/pgedge-filmstats.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-filmstats")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-filmstats"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the input configuration is usable.
func (c *Config) Validate() error {
	switch c.Input.Source {
	case SourceCSV:
		if c.Input.Path == "" {
			return fmt.Errorf("input path is required for the csv source")
		}
	case SourcePostgres:
		if c.Input.Connection == "" {
			return fmt.Errorf("connection string is required for the postgres source")
		}
		if c.Input.Table == "" {
			return fmt.Errorf("table is required for the postgres source")
		}
	default:
		return fmt.Errorf("input source must be '%s' or '%s', got '%s'", SourceCSV, SourcePostgres, c.Input.Source)
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Report.Relation != movie.BaseTable && c.Report.Relation != movie.ViewName {
		return fmt.Errorf("relation must be '%s' or '%s'", movie.BaseTable, movie.ViewName)
	}
	if c.Report.Format != "table" && c.Report.Format != "json" {
		return fmt.Errorf("format must be 'table' or 'json'")
	}
	if c.Report.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Rows < 1 {
		return fmt.Errorf("rows must be at least 1")
	}
	if c.Generate.NullProbability < 0 || c.Generate.NullProbability > 1 {
		return fmt.Errorf("null_probability must be between 0 and 1")
	}
	if c.Generate.Output == "" {
		return fmt.Errorf("output is required")
	}
	return nil
}

// Params converts the report settings into report parameters.
func (r ReportConfig) Params() reports.Params {
	return reports.Params{
		Limit:           r.Limit,
		TopK:            r.TopK,
		Certificate:     r.Certificate,
		MetaScoreBelow:  r.MetaScoreBelow,
		RatingThreshold: r.RatingThreshold,
		MinMovies:       r.MinMovies,
		MinRating:       r.MinRating,
	}
}
