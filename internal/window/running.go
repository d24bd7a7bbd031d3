//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package window

import "database/sql"

// RunningSum returns, for each position, the sum of all non-null values
// from the first row through the current row. Positions before the first
// non-null value have no sum.
func RunningSum(values []sql.NullFloat64) []sql.NullFloat64 {
	out := make([]sql.NullFloat64, len(values))
	var acc sql.NullFloat64
	for i, v := range values {
		if v.Valid {
			acc.Float64 += v.Float64
			acc.Valid = true
		}
		out[i] = acc
	}
	return out
}

// RunningAvg returns, for each position, the average of all non-null
// values from the first row through the current row.
func RunningAvg(values []sql.NullFloat64) []sql.NullFloat64 {
	out := make([]sql.NullFloat64, len(values))
	var sum float64
	var n int
	for i, v := range values {
		if v.Valid {
			sum += v.Float64
			n++
		}
		if n > 0 {
			out[i] = sql.NullFloat64{Float64: sum / float64(n), Valid: true}
		}
	}
	return out
}

// Lag returns the value offset rows before each position. Positions within
// offset of the start have no value.
func Lag[T any](values []T, offset int) []sql.Null[T] {
	out := make([]sql.Null[T], len(values))
	for i := range values {
		if j := i - offset; j >= 0 && j < len(values) {
			out[i] = sql.Null[T]{V: values[j], Valid: true}
		}
	}
	return out
}

// Lead returns the value offset rows after each position. Positions within
// offset of the end have no value.
func Lead[T any](values []T, offset int) []sql.Null[T] {
	return Lag(values, -offset)
}
