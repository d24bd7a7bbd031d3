//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package source loads movie records from CSV files and PostgreSQL tables
// and writes them back out as CSV.
package source

import (
	"strings"
	"unicode"
)

// Column is a canonical input column.
type Column string

const (
	ColTitle        Column = "title"
	ColReleasedYear Column = "released_year"
	ColCertificate  Column = "certificate"
	ColRuntime      Column = "runtime"
	ColGenre        Column = "genre"
	ColIMDBRating   Column = "imdb_rating"
	ColMetaScore    Column = "meta_score"
	ColDirector     Column = "director"
	ColStar1        Column = "star1"
	ColStar2        Column = "star2"
	ColStar3        Column = "star3"
	ColStar4        Column = "star4"
	ColVotes        Column = "votes"
	ColGross        Column = "gross"
)

// Columns is the canonical column order.
var Columns = []Column{
	ColTitle, ColReleasedYear, ColCertificate, ColRuntime, ColGenre,
	ColIMDBRating, ColMetaScore, ColDirector,
	ColStar1, ColStar2, ColStar3, ColStar4,
	ColVotes, ColGross,
}

var starColumns = [4]Column{ColStar1, ColStar2, ColStar3, ColStar4}

// aliases maps normalised header names used by published copies of the
// dataset onto canonical columns.
var aliases = map[string]Column{
	"series_title": ColTitle,
	"name":         ColTitle,
	"year":         ColReleasedYear,
	"metascore":    ColMetaScore,
	"rating":       ColIMDBRating,
	"no_of_votes":  ColVotes,
	"num_votes":    ColVotes,
}

// normaliseHeader turns a header cell into snake_case: "Meta score",
// "Meta_score" and "MetaScore" all become "meta_score".
func normaliseHeader(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "\ufeff")

	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// resolveColumn maps a raw header cell to a canonical column. Unknown
// columns report false.
func resolveColumn(header string) (Column, bool) {
	name := normaliseHeader(header)
	if c, ok := aliases[name]; ok {
		return c, true
	}
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}
