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
	"strings"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/stats"
	"github.com/pgEdge/pgedge-filmstats/internal/window"
)

// selectRows returns the records matching keep, in load order.
func selectRows(t *movie.Table, keep func(r movie.Record) bool) []movie.Record {
	var out []movie.Record
	t.Each(func(_ int, r movie.Record) {
		if keep(r) {
			out = append(out, r)
		}
	})
	return out
}

// LowMetaScore returns movies whose meta score is present and below the
// bound.
func LowMetaScore(t *movie.Table, below int) []movie.Record {
	return selectRows(t, func(r movie.Record) bool {
		return r.MetaScore.Valid && r.MetaScore.Int64 < int64(below)
	})
}

// AboveAverageRating computes the overall average rating, then returns
// the movies rated strictly above it, best first.
func AboveAverageRating(t *movie.Table) (sql.NullFloat64, []movie.Record) {
	avg := stats.Mean(t.Floats(valueRating))
	if !avg.Valid {
		return avg, nil
	}

	above := window.Select(t.Len(), func(i int) bool {
		r := t.Row(i).IMDBRating
		return r.Valid && r.Float64 > avg.Float64
	})
	order := window.OrderSubset(above, byRatingDesc(t))
	return avg, window.Gather(order, t.Row)
}

// MoviesWithCertificate returns movies carrying the certificate, compared
// case-insensitively.
func MoviesWithCertificate(t *movie.Table, certificate string) []movie.Record {
	return selectRows(t, func(r movie.Record) bool {
		return r.Certificate.Valid && strings.EqualFold(r.Certificate.String, certificate)
	})
}

// DirectorStat is a director's film count and average rating.
type DirectorStat struct {
	Director  string
	Movies    int
	AvgRating sql.NullFloat64
}

// AcclaimedDirectors groups by director and keeps only directors with more
// than minMovies films AND an average rating above minRating. Results are
// ordered by average rating, best first.
func AcclaimedDirectors(t *movie.Table, minMovies int, minRating float64) []DirectorStat {
	groups := sortByValueDesc(aggregateGroups(t, keyDirector, valueRating, aggAvg))

	kept := stats.Filter(groups, func(g GroupStat) bool {
		return g.Count > minMovies && g.Value.Valid && g.Value.Float64 > minRating
	})

	out := make([]DirectorStat, len(kept))
	for i, g := range kept {
		out[i] = DirectorStat{Director: g.Key, Movies: g.Count, AvgRating: g.Value}
	}
	return out
}

// StarLeaderboard unpivots the four star slots into one actor column and
// counts credits per actor, most credited first.
func StarLeaderboard(t *movie.Table, limit int) []GroupStat {
	credits := movie.Unpivot(t)
	groups := stats.GroupBy(len(credits), func(i int) string { return credits[i].Actor })

	out := make([]GroupStat, len(groups))
	for i, g := range groups {
		out[i] = GroupStat{
			Key:   g.Key,
			Count: g.Size(),
			Value: sql.NullFloat64{Float64: float64(g.Size()), Valid: true},
		}
	}
	return limitGroups(sortByValueDesc(out), limit)
}

// DuplicateGroup is a title shared by more than one record.
type DuplicateGroup struct {
	Title   string
	Records []movie.Record
}

// DuplicateTitles returns the titles that occur more than once, in
// first-seen order.
func DuplicateTitles(t *movie.Table) []DuplicateGroup {
	groups := stats.GroupBy(t.Len(), func(i int) string { return t.Row(i).Title })
	dups := stats.Filter(groups, func(g stats.Group[string]) bool { return g.Size() > 1 })

	out := make([]DuplicateGroup, len(dups))
	for i, g := range dups {
		out[i] = DuplicateGroup{Title: g.Key, Records: window.Gather(g.Members, t.Row)}
	}
	return out
}

func init() {
	Register(Definition{
		Name:        "low_meta_score",
		Description: "Movies with a meta score below the bound",
		Category:    CategoryFilter,
		Kind:        KindSequence,
		Params:      []string{ParamMetaScoreBelow},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("title", "released_year", "meta_score")
			for _, r := range LowMetaScore(t, p.MetaScoreBelow) {
				res.add(r.Title, r.ReleasedYear, integer(r.MetaScore))
			}
			return res
		},
	})

	Register(Definition{
		Name:        "above_average_rating",
		Description: "Movies rated above the overall average rating",
		Category:    CategoryFilter,
		Kind:        KindSequence,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("title", "imdb_rating", "average_rating")
			avg, rows := AboveAverageRating(t)
			for _, r := range rows {
				res.add(r.Title, num(r.IMDBRating), num(avg))
			}
			return res
		},
	})

	Register(Definition{
		Name:        "movies_by_certificate_value",
		Description: "Movies carrying the configured certificate",
		Category:    CategoryFilter,
		Kind:        KindSequence,
		Params:      []string{ParamCertificate},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("title", "released_year", "certificate", "imdb_rating")
			for _, r := range MoviesWithCertificate(t, p.Certificate) {
				res.add(r.Title, r.ReleasedYear, text(r.Certificate), num(r.IMDBRating))
			}
			return res
		},
	})

	Register(Definition{
		Name:        "acclaimed_directors",
		Description: "Directors with more than min_movies films and an average rating above min_rating",
		Category:    CategoryHaving,
		Kind:        KindSequence,
		Params:      []string{ParamMinMovies, ParamMinRating},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("director", "movies", "avg_rating")
			for _, d := range AcclaimedDirectors(t, p.MinMovies, p.MinRating) {
				res.add(d.Director, d.Movies, num(d.AvgRating))
			}
			return res
		},
	})

	Register(Definition{
		Name:        "star_leaderboard",
		Description: "Actors with the most credits across all four star slots",
		Category:    CategoryUnion,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("actor", "credits")
			for _, g := range StarLeaderboard(t, p.Limit) {
				res.add(g.Key, g.Count)
			}
			return res
		},
	})

	Register(Definition{
		Name:        "duplicate_titles",
		Description: "Titles appearing on more than one record",
		Category:    CategoryDuplicates,
		Kind:        KindSequence,
		run: func(t *movie.Table, _ Params) *Result {
			res := newResult("title", "occurrences", "released_years")
			for _, d := range DuplicateTitles(t) {
				years := make([]string, len(d.Records))
				for i, r := range d.Records {
					years[i] = r.ReleasedYear
				}
				res.add(d.Title, len(d.Records), strings.Join(years, ", "))
			}
			return res
		},
	})
}
