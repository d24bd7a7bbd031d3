//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

// Options controls movie generation.
type Options struct {
	// Rows is the number of movies to generate.
	Rows int

	// Seed makes generation reproducible; 0 picks a random seed.
	Seed uint64

	// NullProbability is the chance that each nullable field is absent.
	NullProbability float64

	// ProgressInterval is how many rows pass between progress log lines.
	ProgressInterval int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Rows:             1000,
		NullProbability:  0.05,
		ProgressInterval: 100000,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Rows < 0 {
		return fmt.Errorf("rows must be non-negative, got %d", o.Rows)
	}
	if o.NullProbability < 0 || o.NullProbability > 1 {
		return fmt.Errorf("null probability must be within 0-1, got %g", o.NullProbability)
	}
	return nil
}

var (
	certificates      = []string{"U", "UA", "A", "R", "PG-13", "PG", "G", "Passed", "Approved"}
	certificateWeight = []int{23, 18, 20, 15, 4, 4, 2, 3, 1}
)

// Generator produces synthetic movie records. Directors and actors are
// drawn from fixed pools so that grouping reports see repeats.
type Generator struct {
	faker     *Faker
	opts      Options
	directors []string
	actors    []string
}

// NewGenerator creates a generator for opts.
func NewGenerator(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := NewFaker()
	if opts.Seed != 0 {
		f = NewFakerWithSeed(opts.Seed)
	}

	g := &Generator{faker: f, opts: opts}
	g.directors = g.namePool(opts.Rows/4 + 1)
	g.actors = g.namePool(opts.Rows/2 + 4)
	return g, nil
}

func (g *Generator) namePool(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = g.faker.Name()
	}
	return pool
}

// Generate returns opts.Rows movies.
func (g *Generator) Generate() []movie.Record {
	interval := g.opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultOptions().ProgressInterval
	}
	progress := NewProgressReporter(movie.BaseTable, int64(g.opts.Rows), int64(interval))

	records := make([]movie.Record, g.opts.Rows)
	for i := range records {
		records[i] = g.Movie()
		progress.Update(1)
	}
	progress.Done()
	return records
}

// Movie generates a single record.
func (g *Generator) Movie() movie.Record {
	f := g.faker
	p := g.opts.NullProbability

	r := movie.Record{
		Title:        f.MovieTitle(),
		ReleasedYear: strconv.Itoa(f.Int(1920, 2020)),
		Certificate:  f.NullableString(ChooseWeighted(f, certificates, certificateWeight), p),
		Runtime:      f.NullableFloat(float64(f.Int(45, 240)), p),
		Genre:        g.genre(),
		IMDBRating:   f.NullableFloat(f.Decimal(7.6, 9.3, 1), p),
		MetaScore:    f.NullableInt(int64(f.Int(28, 100)), p),
		Director:     f.NullableString(Choose(f, g.directors), p),
		Votes:        f.NullableInt(int64(f.Int(25000, 2400000)), p),
		Gross:        f.NullableFloat(f.Decimal(1000, 900000000, 0), p),
	}
	for i := range r.Stars {
		r.Stars[i] = f.NullableString(Choose(f, g.actors), p)
	}
	return r
}

// genre builds a label of one to three distinct genres.
func (g *Generator) genre() string {
	n := g.faker.Int(1, 3)
	seen := make(map[string]bool, n)
	parts := make([]string, 0, n)
	for len(parts) < n {
		genre := g.faker.MovieGenre()
		if seen[genre] {
			// Small genre lists can repeat; settle for fewer labels.
			if g.faker.Bool() {
				break
			}
			continue
		}
		seen[genre] = true
		parts = append(parts, genre)
	}
	return strings.Join(parts, ", ")
}

// ProgressReporter tracks and reports data generation progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rows int64) {
	oldRow := p.currentRow
	p.currentRow += rows

	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Generating movies")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Generation complete")
}
