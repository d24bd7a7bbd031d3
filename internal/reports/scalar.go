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
	"github.com/pgEdge/pgedge-filmstats/internal/stats"
)

// numericColumns maps the numeric fields to their accessors.
var numericColumns = map[movie.Field]func(r movie.Record) sql.NullFloat64{
	movie.FieldRuntime:    func(r movie.Record) sql.NullFloat64 { return r.Runtime },
	movie.FieldIMDBRating: func(r movie.Record) sql.NullFloat64 { return r.IMDBRating },
	movie.FieldMetaScore:  movie.Record.MetaScoreFloat,
	movie.FieldVotes:      movie.Record.VotesFloat,
	movie.FieldGross:      func(r movie.Record) sql.NullFloat64 { return r.Gross },
}

// TotalMovies counts the records.
func TotalMovies(t *movie.Table) int {
	return t.Len()
}

// Summarize aggregates a numeric field, skipping nulls.
func Summarize(t *movie.Table, f movie.Field) stats.Summary {
	get, ok := numericColumns[f]
	if !ok {
		return stats.Summary{}
	}
	return stats.Summarize(t.Floats(get))
}

// NullCount is the absence tally of one nullable field.
type NullCount struct {
	Field    movie.Field
	Nulls    int
	NonNulls int
}

// NullCounts counts, independently per nullable field, the rows where the
// field is absent.
func NullCounts(t *movie.Table) []NullCount {
	fields := movie.NullableFields()
	counts := make([]NullCount, len(fields))
	for i, f := range fields {
		counts[i].Field = f
	}
	t.Each(func(_ int, r movie.Record) {
		for i, f := range fields {
			if r.IsNull(f) {
				counts[i].Nulls++
			} else {
				counts[i].NonNulls++
			}
		}
	})
	return counts
}

// RatingMetaCorrelation is the Pearson correlation between IMDB rating and
// meta score over rows where both are present, with the pair count.
func RatingMetaCorrelation(t *movie.Table) (sql.NullFloat64, int) {
	return stats.Pearson(
		t.Floats(func(r movie.Record) sql.NullFloat64 { return r.IMDBRating }),
		t.Floats(movie.Record.MetaScoreFloat),
	)
}

// PctRatingAbove returns the share of all movies rated strictly above
// threshold, and the number of such movies.
func PctRatingAbove(t *movie.Table, threshold float64) (sql.NullFloat64, int) {
	var above int
	t.Each(func(_ int, r movie.Record) {
		if r.IMDBRating.Valid && r.IMDBRating.Float64 > threshold {
			above++
		}
	})
	return stats.Percent(above, t.Len()), above
}

// MaxBy returns the record with the largest present value of get. Ties
// keep the first record in load order.
func MaxBy(t *movie.Table, get func(r movie.Record) sql.NullFloat64) (movie.Record, bool) {
	best := -1
	var bestVal float64
	t.Each(func(i int, r movie.Record) {
		v := get(r)
		if v.Valid && (best < 0 || v.Float64 > bestVal) {
			best = i
			bestVal = v.Float64
		}
	})
	if best < 0 {
		return movie.Record{}, false
	}
	return t.Row(best), true
}

func summaryReport(f movie.Field, withSum bool) func(t *movie.Table, p Params) *Result {
	return func(t *movie.Table, _ Params) *Result {
		cols := []string{"count", "min", "max", "avg"}
		if withSum {
			cols = append(cols, "sum")
		}
		res := newResult(cols...)

		s := Summarize(t, f)
		if s.Count == 0 {
			return res.noData()
		}
		row := []any{s.Count, num(s.Min), num(s.Max), num(s.Mean)}
		if withSum {
			row = append(row, num(s.Sum))
		}
		res.add(row...)
		return res
	}
}

func recordReport(get func(r movie.Record) sql.NullFloat64, valueCol string) func(t *movie.Table, p Params) *Result {
	return func(t *movie.Table, _ Params) *Result {
		res := newResult("title", "released_year", valueCol)
		r, ok := MaxBy(t, get)
		if !ok {
			return res.noData()
		}
		res.add(r.Title, r.ReleasedYear, num(get(r)))
		return res
	}
}

func init() {
	Register(Definition{
		Name:        "total_movies",
		Description: "Number of movies in the table",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("count")
			if t.Len() == 0 {
				return res.noData()
			}
			res.add(TotalMovies(t))
			return res
		},
	})

	Register(Definition{
		Name:        "runtime_summary",
		Description: "Count, min, max and average runtime in minutes",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run:         summaryReport(movie.FieldRuntime, false),
	})

	Register(Definition{
		Name:        "rating_summary",
		Description: "Count, min, max and average IMDB rating",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run:         summaryReport(movie.FieldIMDBRating, false),
	})

	Register(Definition{
		Name:        "meta_score_summary",
		Description: "Count, min, max and average meta score",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run:         summaryReport(movie.FieldMetaScore, false),
	})

	Register(Definition{
		Name:        "gross_summary",
		Description: "Count, min, max, average and total gross revenue",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run:         summaryReport(movie.FieldGross, true),
	})

	Register(Definition{
		Name:        "rating_meta_correlation",
		Description: "Pearson correlation between IMDB rating and meta score",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("pairs", "correlation")
			r, pairs := RatingMetaCorrelation(t)
			if !r.Valid {
				res.NoData = true
				res.add(pairs, nil)
				return res
			}
			res.add(pairs, stats.Round(r.Float64, 4))
			return res
		},
	})

	Register(Definition{
		Name:        "null_counts",
		Description: "Rows missing each nullable field",
		Category:    CategoryNulls,
		Kind:        KindSequence,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("field", "nulls", "non_nulls")
			for _, c := range NullCounts(t) {
				res.add(string(c.Field), c.Nulls, c.NonNulls)
			}
			return res
		},
	})

	Register(Definition{
		Name:        "pct_rating_above",
		Description: "Share of movies rated above the rating threshold",
		Category:    CategoryScalar,
		Kind:        KindScalar,
		Params:      []string{ParamRatingThreshold},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("threshold", "movies", "percent")
			pct, above := PctRatingAbove(t, p.RatingThreshold)
			if !pct.Valid {
				return res.noData()
			}
			res.add(p.RatingThreshold, above, num(pct))
			return res
		},
	})

	Register(Definition{
		Name:        "highest_grossing",
		Description: "Movie with the highest gross revenue",
		Category:    CategoryScalar,
		Kind:        KindRecord,
		run:         recordReport(func(r movie.Record) sql.NullFloat64 { return r.Gross }, "gross"),
	})

	Register(Definition{
		Name:        "longest_movie",
		Description: "Movie with the longest runtime",
		Category:    CategoryScalar,
		Kind:        KindRecord,
		run:         recordReport(func(r movie.Record) sql.NullFloat64 { return r.Runtime }, "runtime"),
	})
}
