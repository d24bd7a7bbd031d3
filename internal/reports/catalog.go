//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package reports defines the catalog of named analytic reports over the
// movie table.
//
// Each report is a pure function of an immutable *movie.Table and Params.
// The typed functions (RatingDenseRank, StarLeaderboard, ...) return Go
// values; the catalog wraps them into a tabular Result that the renderers
// understand.
package reports

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

var (
	// ErrUnknownReport is returned for a name that is not in the catalog.
	ErrUnknownReport = errors.New("unknown report")

	// ErrInvalidParam is returned when Params fail validation for a report.
	ErrInvalidParam = errors.New("invalid parameter")
)

// Kind is the shape of a report's result.
type Kind string

const (
	KindScalar   Kind = "scalar"
	KindRecord   Kind = "record"
	KindSequence Kind = "sequence"
)

// Category groups reports by the computation they perform.
type Category string

const (
	CategoryScalar      Category = "scalar"
	CategoryNulls       Category = "nulls"
	CategoryGrouping    Category = "grouping"
	CategoryFilter      Category = "filter"
	CategoryHaving      Category = "having"
	CategoryUnion       Category = "union"
	CategoryRanking     Category = "ranking"
	CategoryRunning     Category = "running"
	CategoryDuplicates  Category = "duplicates"
	CategoryComposition Category = "composition"
)

// Categories lists the categories in catalog order.
var Categories = []Category{
	CategoryScalar,
	CategoryNulls,
	CategoryGrouping,
	CategoryFilter,
	CategoryHaving,
	CategoryUnion,
	CategoryRanking,
	CategoryRunning,
	CategoryDuplicates,
	CategoryComposition,
}

// Parameter names a report may read from Params.
const (
	ParamLimit           = "limit"
	ParamTopK            = "top_k"
	ParamCertificate     = "certificate"
	ParamMetaScoreBelow  = "meta_score_below"
	ParamRatingThreshold = "rating_threshold"
	ParamMinMovies       = "min_movies"
	ParamMinRating       = "min_rating"
)

// Definition describes one report in the catalog.
type Definition struct {
	// Name is the report identifier used on the command line.
	Name string

	// Description describes what the report computes.
	Description string

	// Category is the kind of computation.
	Category Category

	// Kind is the result shape.
	Kind Kind

	// Params lists the Params fields the report reads.
	Params []string

	run func(t *movie.Table, p Params) *Result
}

// Uses reports whether the definition reads the named parameter.
func (d Definition) Uses(param string) bool {
	for _, p := range d.Params {
		if p == param {
			return true
		}
	}
	return false
}

var (
	registry = make(map[string]Definition)
	order    []string
	mu       sync.RWMutex
)

// Register adds a report to the catalog. Registering a name twice panics.
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[def.Name]; exists {
		panic(fmt.Sprintf("report %s registered twice", def.Name))
	}
	registry[def.Name] = def
	order = append(order, def.Name)

	// Keep the catalog grouped by category, registration order within one.
	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(
			slices.Index(Categories, registry[a].Category),
			slices.Index(Categories, registry[b].Category),
		)
	})
}

// Get retrieves a report definition by name.
func Get(name string) (Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	def, ok := registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return def, nil
}

// List returns all report names in catalog order: by category, then
// registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, len(order))
	copy(names, order)
	return names
}

// All returns all report definitions in catalog order.
func All() []Definition {
	mu.RLock()
	defer mu.RUnlock()

	defs := make([]Definition, 0, len(order))
	for _, name := range order {
		defs = append(defs, registry[name])
	}
	return defs
}
