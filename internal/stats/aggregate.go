//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package stats provides null-aware aggregates and grouping over row
// positions of a movie table.
//
// Aggregates follow SQL semantics: null inputs are skipped, never read as
// zero, and an aggregate over no non-null inputs has no value.
package stats

import (
	"database/sql"
	"math"
)

// Summary holds the standard aggregates of a nullable numeric column.
type Summary struct {
	// Count is the number of non-null inputs.
	Count int
	Sum   sql.NullFloat64
	Min   sql.NullFloat64
	Max   sql.NullFloat64
	Mean  sql.NullFloat64
}

// Summarize computes count, sum, min, max and mean, skipping nulls.
func Summarize(values []sql.NullFloat64) Summary {
	var s Summary
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if s.Count == 0 {
			s.Min = v
			s.Max = v
			s.Sum = sql.NullFloat64{Valid: true}
		}
		s.Count++
		s.Sum.Float64 += v.Float64
		if v.Float64 < s.Min.Float64 {
			s.Min.Float64 = v.Float64
		}
		if v.Float64 > s.Max.Float64 {
			s.Max.Float64 = v.Float64
		}
	}
	if s.Count > 0 {
		s.Mean = sql.NullFloat64{Float64: s.Sum.Float64 / float64(s.Count), Valid: true}
	}
	return s
}

// Mean returns the average of the non-null values.
func Mean(values []sql.NullFloat64) sql.NullFloat64 {
	return Summarize(values).Mean
}

// Percent returns part/total*100, or no value when total is zero.
func Percent(part, total int) sql.NullFloat64 {
	if total == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(part) / float64(total) * 100, Valid: true}
}

// Pearson returns the correlation coefficient of the pairs where both
// values are present, together with the number of such pairs. The result
// has no value with fewer than two pairs or when either side is constant.
func Pearson(xs, ys []sql.NullFloat64) (sql.NullFloat64, int) {
	n := min(len(xs), len(ys))

	var pairs int
	var sumX, sumY float64
	for i := 0; i < n; i++ {
		if !xs[i].Valid || !ys[i].Valid {
			continue
		}
		pairs++
		sumX += xs[i].Float64
		sumY += ys[i].Float64
	}
	if pairs < 2 {
		return sql.NullFloat64{}, pairs
	}

	meanX := sumX / float64(pairs)
	meanY := sumY / float64(pairs)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		if !xs[i].Valid || !ys[i].Valid {
			continue
		}
		dx := xs[i].Float64 - meanX
		dy := ys[i].Float64 - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return sql.NullFloat64{}, pairs
	}
	return sql.NullFloat64{Float64: cov / math.Sqrt(varX*varY), Valid: true}, pairs
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
