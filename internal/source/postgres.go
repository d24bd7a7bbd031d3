//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// selectMoviesSQL reads every canonical column as text so that each value
// goes through the same parsing and range checks as a CSV cell.
const selectMoviesSQL = `
SELECT title::text,
       released_year::text,
       certificate::text,
       runtime::text,
       genre::text,
       imdb_rating::text,
       meta_score::text,
       director::text,
       star1::text,
       star2::text,
       star3::text,
       star4::text,
       votes::text,
       gross::text
FROM %s`

// canonicalIndex maps each column to its position in selectMoviesSQL.
var canonicalIndex = func() map[Column]int {
	m := make(map[Column]int, len(Columns))
	for i, c := range Columns {
		m[c] = i
	}
	return m
}()

// QualifiedName sanitizes a possibly schema-qualified table name.
func QualifiedName(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

// recordFromText parses one row of selectMoviesSQL output. NULL becomes an
// empty cell, which is an absent value.
func recordFromText(values []sql.NullString) (movie.Record, Column, error) {
	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = v.String
	}
	return parseRecord(fields, canonicalIndex)
}

// LoadPostgres reads every row of an existing movie table in physical
// order. The table must carry the canonical column names. Rows with values
// that do not parse or fall outside their column's domain are skipped and
// returned as RowErrors numbered by their position in the result.
func LoadPostgres(ctx context.Context, q Querier, table string) ([]movie.Record, []*RowError, error) {
	rows, err := q.Query(ctx, fmt.Sprintf(selectMoviesSQL, QualifiedName(table)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var (
		records []movie.Record
		rejects []*RowError
	)
	values := make([]sql.NullString, len(Columns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	for row := 1; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan %s row %d: %w", table, row, err)
		}
		rec, col, err := recordFromText(values)
		if err != nil {
			rejects = append(rejects, &RowError{Row: row, Column: col, Err: err})
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	logRejects(rejects)
	logging.Info().
		Str("table", table).
		Int("accepted", len(records)).
		Int("rejected", len(rejects)).
		Msg("Loaded PostgreSQL input")

	return records, rejects, nil
}
