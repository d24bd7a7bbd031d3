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
	"database/sql"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/window"
)

// RunningRow is a movie in an ordered scan with the running aggregates of
// some field over every row from the first through this one.
type RunningRow struct {
	Record     movie.Record
	Value      sql.NullFloat64
	RunningSum sql.NullFloat64
	RunningAvg sql.NullFloat64
}

func runningOver(t *movie.Table, order []int, value func(r movie.Record) sql.NullFloat64) []RunningRow {
	vals := window.Gather(order, func(i int) sql.NullFloat64 { return value(t.Row(i)) })
	sums := window.RunningSum(vals)
	avgs := window.RunningAvg(vals)

	out := make([]RunningRow, len(order))
	for i, pos := range order {
		out[i] = RunningRow{Record: t.Row(pos), Value: vals[i], RunningSum: sums[i], RunningAvg: avgs[i]}
	}
	return out
}

// RunningGrossByRating walks all movies from best to worst rated (unrated
// last) and accumulates gross revenue.
func RunningGrossByRating(t *movie.Table) []RunningRow {
	return runningOver(t, window.Order(t.Len(), byRatingDesc(t)), valueGross)
}

// RunningAvgRatingByYear walks all movies from the earliest release year
// and averages the rating seen so far.
func RunningAvgRatingByYear(t *movie.Table) []RunningRow {
	return runningOver(t, window.Order(t.Len(), byYearAsc(t)), valueRating)
}

// TopRatedRunningGross keeps the k best rated movies that report a gross,
// then accumulates gross over that subset in rating order.
func TopRatedRunningGross(t *movie.Table, k int) []RunningRow {
	candidates := window.Select(t.Len(), func(i int) bool {
		r := t.Row(i)
		return r.Gross.Valid && r.IMDBRating.Valid
	})
	order := window.Limit(window.OrderSubset(candidates, byRatingDesc(t)), k)
	return runningOver(t, order, valueGross)
}

// Neighbors is a movie with the ratings and titles of the movies before
// and after it in rating order.
type Neighbors struct {
	Record     movie.Record
	PrevTitle  sql.Null[string]
	PrevRating sql.Null[float64]
	NextTitle  sql.Null[string]
	NextRating sql.Null[float64]
}

// RatingLagLead orders rated movies best first and pairs each with its
// previous and next neighbour. The first row has no previous neighbour
// and the last has no next.
func RatingLagLead(t *movie.Table) []Neighbors {
	order := window.OrderSubset(rated(t), byRatingDesc(t))
	titles := window.Gather(order, func(i int) string { return t.Row(i).Title })
	ratings := window.Gather(order, func(i int) float64 { return t.Row(i).IMDBRating.Float64 })

	prevT, nextT := window.Lag(titles, 1), window.Lead(titles, 1)
	prevR, nextR := window.Lag(ratings, 1), window.Lead(ratings, 1)

	out := make([]Neighbors, len(order))
	for i, pos := range order {
		out[i] = Neighbors{
			Record:     t.Row(pos),
			PrevTitle:  prevT[i],
			PrevRating: prevR[i],
			NextTitle:  nextT[i],
			NextRating: nextR[i],
		}
	}
	return out
}

func runningReport(valueCol string, compute func(t *movie.Table, p Params) []RunningRow) func(t *movie.Table, p Params) *Result {
	return func(t *movie.Table, p Params) *Result {
		res := newResult("title", "released_year", "imdb_rating", valueCol, "running_sum", "running_avg")
		for _, r := range compute(t, p) {
			res.add(r.Record.Title, r.Record.ReleasedYear, num(r.Record.IMDBRating),
				num(r.Value), num(r.RunningSum), num(r.RunningAvg))
		}
		return res
	}
}

func init() {
	Register(Definition{
		Name:        "running_gross_by_rating",
		Description: "Running total of gross from the best rated movie down",
		Category:    CategoryRunning,
		Kind:        KindSequence,
		run: runningReport("gross", func(t *movie.Table, _ Params) []RunningRow {
			return RunningGrossByRating(t)
		}),
	})

	Register(Definition{
		Name:        "running_avg_rating_by_year",
		Description: "Running average IMDB rating in release order",
		Category:    CategoryRunning,
		Kind:        KindSequence,
		run: runningReport("rating", func(t *movie.Table, _ Params) []RunningRow {
			return RunningAvgRatingByYear(t)
		}),
	})

	Register(Definition{
		Name:        "rating_lag_lead",
		Description: "Previous and next movie in IMDB rating order",
		Category:    CategoryRunning,
		Kind:        KindSequence,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("title", "imdb_rating", "prev_title", "prev_rating", "next_title", "next_rating")
			for _, n := range RatingLagLead(t) {
				res.add(n.Record.Title, num(n.Record.IMDBRating),
					optional(n.PrevTitle), optional(n.PrevRating),
					optional(n.NextTitle), optional(n.NextRating))
			}
			return res
		},
	})

	Register(Definition{
		Name:        "top_rated_running_gross",
		Description: "Running gross over the top_k best rated movies with a reported gross",
		Category:    CategoryComposition,
		Kind:        KindSequence,
		Params:      []string{ParamTopK},
		run: runningReport("gross", func(t *movie.Table, p Params) []RunningRow {
			return TopRatedRunningGross(t, p.TopK)
		}),
	})
}
