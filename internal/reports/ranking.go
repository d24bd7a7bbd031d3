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
	"slices"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/window"
)

// RankedMovie is a movie with its rank in some ordering. Partition is
// empty for unpartitioned rankings.
type RankedMovie struct {
	Rank      int
	Partition string
	Record    movie.Record
}

func rated(t *movie.Table) []int {
	return window.Select(t.Len(), func(i int) bool { return t.Row(i).IMDBRating.Valid })
}

func rankAlong(t *movie.Table, order []int, ranks []int, partition string) []RankedMovie {
	out := make([]RankedMovie, len(order))
	for i, pos := range order {
		out[i] = RankedMovie{Rank: ranks[i], Partition: partition, Record: t.Row(pos)}
	}
	return out
}

// RatingDenseRank dense-ranks rated movies by IMDB rating, best first.
func RatingDenseRank(t *movie.Table) []RankedMovie {
	c := byRatingDesc(t)
	order := window.OrderSubset(rated(t), c)
	return rankAlong(t, order, window.DenseRank(order, c), "")
}

// RatingCompetitionRank ranks rated movies by IMDB rating with gaps after
// ties.
func RatingCompetitionRank(t *movie.Table) []RankedMovie {
	c := byRatingDesc(t)
	order := window.OrderSubset(rated(t), c)
	return rankAlong(t, order, window.Rank(order, c), "")
}

// GenreRatingRank dense-ranks rated movies by IMDB rating within each
// genre. Output is ordered by genre, then rank.
func GenreRatingRank(t *movie.Table) []RankedMovie {
	c := byRatingDesc(t)
	order := window.OrderSubset(rated(t), c)
	parts := window.PartitionBy(order, func(i int) string { return t.Row(i).Genre })

	slices.SortStableFunc(parts, func(a, b []int) int {
		return cmp.Compare(t.Row(a[0]).Genre, t.Row(b[0]).Genre)
	})

	var out []RankedMovie
	for _, part := range parts {
		out = append(out, rankAlong(t, part, window.DenseRank(part, c), t.Row(part[0]).Genre)...)
	}
	return out
}

// VotesRowNumber numbers movies with a vote count by votes, highest first,
// keeping the first limit rows.
func VotesRowNumber(t *movie.Table, limit int) []RankedMovie {
	voted := window.Select(t.Len(), func(i int) bool { return t.Row(i).Votes.Valid })
	order := window.Limit(window.OrderSubset(voted, byVotesDesc(t)), limit)
	return rankAlong(t, order, window.RowNumber(len(order)), "")
}

func rankReport(partitioned bool, compute func(t *movie.Table, p Params) []RankedMovie) func(t *movie.Table, p Params) *Result {
	return func(t *movie.Table, p Params) *Result {
		cols := []string{"rank", "title", "imdb_rating"}
		if partitioned {
			cols = append([]string{"genre"}, cols...)
		}
		res := newResult(cols...)
		for _, m := range compute(t, p) {
			row := []any{m.Rank, m.Record.Title, num(m.Record.IMDBRating)}
			if partitioned {
				row = append([]any{m.Partition}, row...)
			}
			res.add(row...)
		}
		return res
	}
}

func init() {
	Register(Definition{
		Name:        "rating_dense_rank",
		Description: "Dense rank of movies by IMDB rating",
		Category:    CategoryRanking,
		Kind:        KindSequence,
		run: rankReport(false, func(t *movie.Table, _ Params) []RankedMovie {
			return RatingDenseRank(t)
		}),
	})

	Register(Definition{
		Name:        "rating_competition_rank",
		Description: "Competition rank of movies by IMDB rating",
		Category:    CategoryRanking,
		Kind:        KindSequence,
		run: rankReport(false, func(t *movie.Table, _ Params) []RankedMovie {
			return RatingCompetitionRank(t)
		}),
	})

	Register(Definition{
		Name:        "genre_rating_rank",
		Description: "Dense rank of movies by IMDB rating within each genre",
		Category:    CategoryRanking,
		Kind:        KindSequence,
		run: rankReport(true, func(t *movie.Table, _ Params) []RankedMovie {
			return GenreRatingRank(t)
		}),
	})

	Register(Definition{
		Name:        "votes_row_number",
		Description: "Most voted movies, numbered",
		Category:    CategoryRanking,
		Kind:        KindSequence,
		Params:      []string{ParamLimit},
		run: func(t *movie.Table, p Params) *Result {
			res := newResult("row_number", "title", "votes")
			for _, m := range VotesRowNumber(t, p.Limit) {
				res.add(m.Rank, m.Record.Title, integer(m.Record.Votes))
			}
			return res
		},
	})
}
