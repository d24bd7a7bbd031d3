//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package movie defines the movie record, its nullable field catalog and
// the immutable table snapshot that every report reads from.
package movie

import (
	"database/sql"
	"fmt"
)

// StarSlots is the number of fixed lead-actor columns on a record.
const StarSlots = 4

// Record is one film from the movie table.
type Record struct {
	Title        string
	ReleasedYear string // text in the source; not always a year
	Certificate  sql.NullString
	Runtime      sql.NullFloat64 // minutes
	Genre        string          // comma-joined label, one categorical value
	IMDBRating   sql.NullFloat64
	MetaScore    sql.NullInt64
	Director     sql.NullString
	Stars        [StarSlots]sql.NullString
	Votes        sql.NullInt64
	Gross        sql.NullFloat64
}

// Field names a nullable column of the movie table.
type Field string

// Nullable fields, in table column order.
const (
	FieldCertificate Field = "certificate"
	FieldRuntime     Field = "runtime"
	FieldIMDBRating  Field = "imdb_rating"
	FieldMetaScore   Field = "meta_score"
	FieldDirector    Field = "director"
	FieldStar1       Field = "star1"
	FieldStar2       Field = "star2"
	FieldStar3       Field = "star3"
	FieldStar4       Field = "star4"
	FieldVotes       Field = "votes"
	FieldGross       Field = "gross"
)

// NullableFields returns every nullable field in column order.
func NullableFields() []Field {
	return []Field{
		FieldCertificate,
		FieldRuntime,
		FieldIMDBRating,
		FieldMetaScore,
		FieldDirector,
		FieldStar1,
		FieldStar2,
		FieldStar3,
		FieldStar4,
		FieldVotes,
		FieldGross,
	}
}

// StarField returns the field for a zero-based star slot.
func StarField(slot int) Field {
	return Field(fmt.Sprintf("star%d", slot+1))
}

// IsNull reports whether the given field is absent on the record.
// Unknown fields are never null.
func (r Record) IsNull(f Field) bool {
	switch f {
	case FieldCertificate:
		return !r.Certificate.Valid
	case FieldRuntime:
		return !r.Runtime.Valid
	case FieldIMDBRating:
		return !r.IMDBRating.Valid
	case FieldMetaScore:
		return !r.MetaScore.Valid
	case FieldDirector:
		return !r.Director.Valid
	case FieldStar1:
		return !r.Stars[0].Valid
	case FieldStar2:
		return !r.Stars[1].Valid
	case FieldStar3:
		return !r.Stars[2].Valid
	case FieldStar4:
		return !r.Stars[3].Valid
	case FieldVotes:
		return !r.Votes.Valid
	case FieldGross:
		return !r.Gross.Valid
	}
	return false
}

// MetaScoreFloat returns the meta score widened to a float.
func (r Record) MetaScoreFloat() sql.NullFloat64 {
	return sql.NullFloat64{Float64: float64(r.MetaScore.Int64), Valid: r.MetaScore.Valid}
}

// VotesFloat returns the vote count widened to a float.
func (r Record) VotesFloat() sql.NullFloat64 {
	return sql.NullFloat64{Float64: float64(r.Votes.Int64), Valid: r.Votes.Valid}
}

// String returns a present nullable string.
func String(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// Float returns a present nullable float.
func Float(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}

// Int returns a present nullable integer.
func Int(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}
