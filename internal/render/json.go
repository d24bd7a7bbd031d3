//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package render

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/pgEdge/pgedge-filmstats/internal/reports"
)

// JSON writes the results as one indented JSON array. Absent values are
// null.
func JSON(w io.Writer, results []*reports.Result) error {
	out := make([]*reports.Result, 0, len(results))
	for _, res := range results {
		if res != nil {
			out = append(out, res)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}
