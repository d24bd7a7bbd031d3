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
	"slices"
	"strconv"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/stats"
)

// GroupStat is one group of a grouping report.
type GroupStat struct {
	Key   string
	Count int
	Value sql.NullFloat64
}

type aggregation int

const (
	aggCount aggregation = iota
	aggSum
	aggAvg
)

// keyFunc extracts a group key; false means the row has no key and is
// left out of the grouping.
type keyFunc func(r movie.Record) (string, bool)

func present(get func(r movie.Record) sql.NullString) keyFunc {
	return func(r movie.Record) (string, bool) {
		v := get(r)
		return v.String, v.Valid
	}
}

func always(get func(r movie.Record) string) keyFunc {
	return func(r movie.Record) (string, bool) { return get(r), true }
}

var (
	keyCertificate = present(func(r movie.Record) sql.NullString { return r.Certificate })
	keyDirector    = present(func(r movie.Record) sql.NullString { return r.Director })
	keyLeadStar    = present(func(r movie.Record) sql.NullString { return r.Stars[0] })
	keyYear        = always(func(r movie.Record) string { return r.ReleasedYear })
	keyGenre       = always(func(r movie.Record) string { return r.Genre })
	keyTitle       = always(func(r movie.Record) string { return r.Title })
	keyRuntime     = func(r movie.Record) (string, bool) {
		if !r.Runtime.Valid {
			return "", false
		}
		return strconv.FormatFloat(r.Runtime.Float64, 'f', -1, 64), true
	}

	valueRating = func(r movie.Record) sql.NullFloat64 { return r.IMDBRating }
	valueGross  = func(r movie.Record) sql.NullFloat64 { return r.Gross }
)

// aggregateGroups groups t by key and aggregates value per group. Groups
// come back in first-seen order.
func aggregateGroups(t *movie.Table, key keyFunc, value func(r movie.Record) sql.NullFloat64, agg aggregation) []GroupStat {
	groups := stats.GroupByPresent(t.Len(), func(i int) (string, bool) {
		return key(t.Row(i))
	})

	out := make([]GroupStat, len(groups))
	for gi, g := range groups {
		out[gi] = GroupStat{Key: g.Key, Count: g.Size()}
		switch agg {
		case aggCount:
			out[gi].Value = sql.NullFloat64{Float64: float64(g.Size()), Valid: true}
		case aggSum, aggAvg:
			vals := make([]sql.NullFloat64, len(g.Members))
			for mi, pos := range g.Members {
				vals[mi] = value(t.Row(pos))
			}
			s := stats.Summarize(vals)
			if agg == aggSum {
				out[gi].Value = s.Sum
			} else {
				out[gi].Value = s.Mean
			}
		}
	}
	return out
}

// sortByValueDesc orders groups by aggregate, highest first, absent
// aggregates last. Ties keep first-seen order.
func sortByValueDesc(groups []GroupStat) []GroupStat {
	slices.SortStableFunc(groups, func(a, b GroupStat) int {
		return compareNullDesc(a.Value, b.Value)
	})
	return groups
}

// sortByYear orders groups chronologically by key.
func sortByYear(groups []GroupStat) []GroupStat {
	slices.SortStableFunc(groups, func(a, b GroupStat) int {
		return compareYears(a.Key, b.Key)
	})
	return groups
}

// limitGroups keeps the first n groups; n of zero or less keeps none, the
// same as window.Limit.
func limitGroups(groups []GroupStat, n int) []GroupStat {
	n = max(n, 0)
	if len(groups) > n {
		return groups[:n]
	}
	return groups
}

// MoviesByCertificate counts movies per certificate, most common first.
func MoviesByCertificate(t *movie.Table) []GroupStat {
	return sortByValueDesc(aggregateGroups(t, keyCertificate, nil, aggCount))
}

// MoviesByYear counts movies per release year in chronological order.
func MoviesByYear(t *movie.Table) []GroupStat {
	return sortByYear(aggregateGroups(t, keyYear, nil, aggCount))
}

// GrossByYear totals gross revenue per release year in chronological order.
func GrossByYear(t *movie.Table) []GroupStat {
	return sortByYear(aggregateGroups(t, keyYear, valueGross, aggSum))
}

// AvgRatingByGenre averages the rating per genre label, best first.
func AvgRatingByGenre(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyGenre, valueRating, aggAvg)), limit)
}

// GrossByGenre totals gross revenue per genre label, highest first.
func GrossByGenre(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyGenre, valueGross, aggSum)), limit)
}

// TopDirectors counts movies per director, most prolific first.
func TopDirectors(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyDirector, nil, aggCount)), limit)
}

// AvgRatingByDirector averages the rating per director, best first.
func AvgRatingByDirector(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyDirector, valueRating, aggAvg)), limit)
}

// TopLeadStars counts movies per first-billed star.
func TopLeadStars(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyLeadStar, nil, aggCount)), limit)
}

// MoviesByRuntime counts movies per runtime value, most common first.
func MoviesByRuntime(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyRuntime, nil, aggCount)), limit)
}

// TitlesByCount counts records per title, most repeated first.
func TitlesByCount(t *movie.Table, limit int) []GroupStat {
	return limitGroups(sortByValueDesc(aggregateGroups(t, keyTitle, nil, aggCount)), limit)
}

func groupReport(keyCol, valueCol string, compute func(t *movie.Table, p Params) []GroupStat) func(t *movie.Table, p Params) *Result {
	return func(t *movie.Table, p Params) *Result {
		if valueCol == "" {
			res := newResult(keyCol, "movies")
			for _, g := range compute(t, p) {
				res.add(g.Key, g.Count)
			}
			return res
		}
		res := newResult(keyCol, "movies", valueCol)
		for _, g := range compute(t, p) {
			res.add(g.Key, g.Count, num(g.Value))
		}
		return res
	}
}

func unlimited(fn func(t *movie.Table) []GroupStat) func(t *movie.Table, p Params) []GroupStat {
	return func(t *movie.Table, _ Params) []GroupStat { return fn(t) }
}

func limited(fn func(t *movie.Table, limit int) []GroupStat) func(t *movie.Table, p Params) []GroupStat {
	return func(t *movie.Table, p Params) []GroupStat { return fn(t, p.Limit) }
}

func init() {
	Register(Definition{
		Name:        "movies_by_certificate",
		Description: "Movie count per certificate",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		run:         groupReport("certificate", "", unlimited(MoviesByCertificate)),
	})

	Register(Definition{
		Name:        "movies_by_year",
		Description: "Movie count per release year, chronological",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		run:         groupReport("released_year", "", unlimited(MoviesByYear)),
	})

	Register(Definition{
		Name:        "gross_by_year",
		Description: "Total gross per release year, chronological",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		run:         groupReport("released_year", "total_gross", unlimited(GrossByYear)),
	})

	Register(Definition{
		Name:        "avg_rating_by_genre",
		Description: "Top genres by average IMDB rating",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("genre", "avg_rating", limited(AvgRatingByGenre)),
	})

	Register(Definition{
		Name:        "gross_by_genre",
		Description: "Top genres by total gross",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("genre", "total_gross", limited(GrossByGenre)),
	})

	Register(Definition{
		Name:        "top_directors",
		Description: "Directors with the most movies",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("director", "", limited(TopDirectors)),
	})

	Register(Definition{
		Name:        "avg_rating_by_director",
		Description: "Directors by average IMDB rating",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("director", "avg_rating", limited(AvgRatingByDirector)),
	})

	Register(Definition{
		Name:        "top_lead_stars",
		Description: "First-billed stars with the most movies",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("star1", "", limited(TopLeadStars)),
	})

	Register(Definition{
		Name:        "movies_by_runtime",
		Description: "Most common runtimes in minutes",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("runtime", "", limited(MoviesByRuntime)),
	})

	Register(Definition{
		Name:        "titles_by_count",
		Description: "Most repeated titles",
		Category:    CategoryGrouping,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run:         groupReport("title", "", limited(TitlesByCount)),
	})
}
