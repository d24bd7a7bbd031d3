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
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

var (
	// ErrMissingTitle is returned when the header has no title column.
	ErrMissingTitle = errors.New("header has no title column")

	// ErrFieldCount is a row with a different number of fields than the
	// header.
	ErrFieldCount = errors.New("wrong number of fields")

	// ErrOutOfRange is a numeric value outside its column's domain.
	ErrOutOfRange = errors.New("value out of range")
)

// RowError describes a rejected input row. Row is the 1-based data row
// (the header is not counted) and Line the line in the file it started on,
// or 0 when the row did not come from a file.
type RowError struct {
	Row    int
	Line   int
	Column Column
	Err    error
}

func (e *RowError) Error() string {
	pos := fmt.Sprintf("row %d", e.Row)
	if e.Line > 0 {
		pos = fmt.Sprintf("row %d (line %d)", e.Row, e.Line)
	}
	if e.Column != "" {
		return fmt.Sprintf("%s, column %s: %v", pos, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", pos, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// LoadCSV reads movie records from r. The first row is the header; columns
// are matched by name, unknown ones are ignored and an empty cell is an
// absent value. Rows that cannot be parsed are skipped and returned as
// RowErrors; err is only set when the input or its header is unreadable.
func LoadCSV(r io.Reader) ([]movie.Record, []*RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("failed to read header: empty input")
		}
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[Column]int)
	for i, h := range header {
		c, ok := resolveColumn(h)
		if !ok {
			logging.Debug().Str("column", h).Msg("Ignoring unknown column")
			continue
		}
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	if _, ok := index[ColTitle]; !ok {
		return nil, nil, ErrMissingTitle
	}

	var (
		records []movie.Record
		rejects []*RowError
	)
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return records, rejects, fmt.Errorf("failed to read row %d: %w", row, err)
			}
			rejects = append(rejects, &RowError{Row: row, Line: perr.StartLine, Err: perr.Err})
			continue
		}

		line, _ := reader.FieldPos(0)
		if len(fields) != len(header) {
			rejects = append(rejects, &RowError{
				Row:  row,
				Line: line,
				Err:  fmt.Errorf("%w: expected %d, got %d", ErrFieldCount, len(header), len(fields)),
			})
			continue
		}

		rec, col, err := parseRecord(fields, index)
		if err != nil {
			rejects = append(rejects, &RowError{Row: row, Line: line, Column: col, Err: err})
			continue
		}
		records = append(records, rec)
	}

	logRejects(rejects)
	logging.Info().
		Int("accepted", len(records)).
		Int("rejected", len(rejects)).
		Msg("Loaded CSV input")

	return records, rejects, nil
}

func logRejects(rejects []*RowError) {
	for _, re := range rejects {
		logging.Warn().
			Int("row", re.Row).
			Int("line", re.Line).
			Str("column", string(re.Column)).
			Err(re.Err).
			Msg("Rejected input row")
	}
}

// parseRecord converts one row of cells. On failure it reports the offending
// column.
func parseRecord(fields []string, index map[Column]int) (movie.Record, Column, error) {
	cell := func(c Column) string {
		if i, ok := index[c]; ok {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}

	var (
		rec movie.Record
		err error
	)
	rec.Title = cell(ColTitle)
	rec.ReleasedYear = cell(ColReleasedYear)
	rec.Genre = cell(ColGenre)
	rec.Certificate = parseText(cell(ColCertificate))
	rec.Director = parseText(cell(ColDirector))
	for i, c := range starColumns {
		rec.Stars[i] = parseText(cell(c))
	}

	if rec.Runtime, err = parseRuntime(cell(ColRuntime)); err != nil {
		return rec, ColRuntime, err
	}
	if rec.IMDBRating, err = parseBoundedFloat(cell(ColIMDBRating), 0, 10); err != nil {
		return rec, ColIMDBRating, err
	}
	if rec.MetaScore, err = parseBoundedInt(cell(ColMetaScore), 0, 100); err != nil {
		return rec, ColMetaScore, err
	}
	if rec.Votes, err = parseBoundedInt(stripThousands(cell(ColVotes)), 0, math.MaxInt64); err != nil {
		return rec, ColVotes, err
	}
	gross := strings.TrimPrefix(stripThousands(cell(ColGross)), "$")
	if rec.Gross, err = parseBoundedFloat(gross, 0, math.Inf(1)); err != nil {
		return rec, ColGross, err
	}
	return rec, "", nil
}

func parseText(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return movie.String(s)
}

func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// parseRuntime reads minutes, with or without a trailing "min".
func parseRuntime(s string) (sql.NullFloat64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "min"))
	return parseBoundedFloat(s, 0, math.Inf(1))
}

func parseBoundedFloat(s string, lo, hi float64) (sql.NullFloat64, error) {
	if s == "" {
		return sql.NullFloat64{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}, fmt.Errorf("invalid number %q", s)
	}
	if v < lo || v > hi {
		return sql.NullFloat64{}, fmt.Errorf("%w: %g", ErrOutOfRange, v)
	}
	return movie.Float(v), nil
}

// parseBoundedInt accepts integral values, including forms such as "80.0".
func parseBoundedInt(s string, lo, hi int64) (sql.NullInt64, error) {
	if s == "" {
		return sql.NullInt64{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return sql.NullInt64{}, fmt.Errorf("invalid integer %q", s)
		}
		v = int64(f)
	}
	if v < lo || v > hi {
		return sql.NullInt64{}, fmt.Errorf("%w: %d", ErrOutOfRange, v)
	}
	return movie.Int(v), nil
}
