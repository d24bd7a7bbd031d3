//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"database/sql"

	"github.com/pgEdge/pgedge-filmstats/internal/stats"
)

// Result is the tabular form of a report. A nil cell is an absent value.
type Result struct {
	Report   string   `json:"report"`
	Relation string   `json:"relation"`
	Kind     Kind     `json:"kind"`
	Columns  []string `json:"columns"`
	Rows     [][]any  `json:"rows"`

	// NoData is set on scalar and record reports that had no qualifying
	// input; their cells are all nil.
	NoData bool `json:"no_data,omitempty"`
}

func newResult(columns ...string) *Result {
	return &Result{Columns: columns, Rows: make([][]any, 0)}
}

func (r *Result) add(cells ...any) {
	r.Rows = append(r.Rows, cells)
}

// noData marks a scalar result as empty with a single all-nil row.
func (r *Result) noData() *Result {
	r.NoData = true
	r.Rows = [][]any{make([]any, len(r.Columns))}
	return r
}

func num(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return stats.Round(v.Float64, 2)
}

func integer(v sql.NullInt64) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}

func text(v sql.NullString) any {
	if !v.Valid {
		return nil
	}
	return v.String
}

func optional[T any](v sql.Null[T]) any {
	if !v.Valid {
		return nil
	}
	return v.V
}
