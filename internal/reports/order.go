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
	"cmp"
	"database/sql"
	"strconv"
	"strings"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

// compareNullDesc orders present values high to low, absent values last.
func compareNullDesc(a, b sql.NullFloat64) int {
	switch {
	case a.Valid && b.Valid:
		return cmp.Compare(b.Float64, a.Float64)
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	}
	return 0
}

// compareYears orders release years numerically. Values that are not
// whole numbers sort after all years and compare equal to each other, so a
// stable sort keeps them in load order.
func compareYears(a, b string) int {
	ya, errA := strconv.Atoi(strings.TrimSpace(a))
	yb, errB := strconv.Atoi(strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(ya, yb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return 0
}

// byRatingDesc compares table rows by IMDB rating, highest first.
func byRatingDesc(t *movie.Table) func(a, b int) int {
	return func(a, b int) int {
		return compareNullDesc(t.Row(a).IMDBRating, t.Row(b).IMDBRating)
	}
}

// byYearAsc compares table rows by release year, earliest first.
func byYearAsc(t *movie.Table) func(a, b int) int {
	return func(a, b int) int {
		return compareYears(t.Row(a).ReleasedYear, t.Row(b).ReleasedYear)
	}
}

// byVotesDesc compares table rows by vote count, highest first.
func byVotesDesc(t *movie.Table) func(a, b int) int {
	return func(a, b int) int {
		return compareNullDesc(t.Row(a).VotesFloat(), t.Row(b).VotesFloat())
	}
}
