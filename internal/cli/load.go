//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pgEdge/pgedge-filmstats/internal/config"
	"github.com/pgEdge/pgedge-filmstats/internal/db"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/source"
)

// loadTable builds the immutable movie table from the configured input.
// Rejected rows from either source are returned alongside the table.
func loadTable(ctx context.Context, stdin io.Reader, in config.InputConfig) (*movie.Table, []*source.RowError, error) {
	var (
		records []movie.Record
		rejects []*source.RowError
		err     error
	)

	switch in.Source {
	case config.SourcePostgres:
		pool, cerr := db.Connect(ctx, in.Connection)
		if cerr != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", cerr)
		}
		defer pool.Close()

		records, rejects, err = source.LoadPostgres(ctx, pool, in.Table)
	default:
		r := stdin
		if in.Path != "-" {
			f, ferr := os.Open(in.Path)
			if ferr != nil {
				return nil, nil, fmt.Errorf("failed to open input: %w", ferr)
			}
			defer f.Close()
			r = f
		}
		records, rejects, err = source.LoadCSV(r)
	}
	if err != nil {
		return nil, nil, err
	}

	return movie.NewTable(movie.BaseTable, records), rejects, nil
}
