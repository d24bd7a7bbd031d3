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
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

// WriteCSV writes records with the canonical header. Absent values are
// written as empty cells, so the output loads back with LoadCSV.
func WriteCSV(w io.Writer, records []movie.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(Columns))
	for i, c := range Columns {
		header[i] = string(c)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range records {
		row := []string{
			r.Title,
			r.ReleasedYear,
			formatText(r.Certificate),
			formatRuntime(r.Runtime),
			r.Genre,
			formatFloat(r.IMDBRating),
			formatInt(r.MetaScore),
			formatText(r.Director),
			formatText(r.Stars[0]),
			formatText(r.Stars[1]),
			formatText(r.Stars[2]),
			formatText(r.Stars[3]),
			formatInt(r.Votes),
			formatFloat(r.Gross),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatText(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func formatFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', -1, 64)
}

func formatRuntime(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v) + " min"
}

func formatInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}
