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
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

type fixture struct {
	title    string
	year     string
	genre    string
	cert     string
	director string
	rating   float64
	gross    float64
	runtime  float64
	noRating bool
	noGross  bool
	stars    []string
}

func (f fixture) record() movie.Record {
	r := movie.Record{
		Title:        f.title,
		ReleasedYear: f.year,
		Genre:        f.genre,
	}
	if f.cert != "" {
		r.Certificate = movie.String(f.cert)
	}
	if f.director != "" {
		r.Director = movie.String(f.director)
	}
	if f.runtime > 0 {
		r.Runtime = movie.Float(f.runtime)
	}
	if !f.noRating {
		r.IMDBRating = movie.Float(f.rating)
	}
	if !f.noGross {
		r.Gross = movie.Float(f.gross)
	}
	for i, s := range f.stars {
		r.Stars[i] = movie.String(s)
	}
	return r
}

func newTable(fixtures ...fixture) *movie.Table {
	rows := make([]movie.Record, len(fixtures))
	for i, f := range fixtures {
		rows[i] = f.record()
	}
	return movie.NewTable(movie.BaseTable, rows)
}

func titles(rows []movie.Record) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func TestGrossSummarySkipsNulls(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", gross: 10},
		fixture{title: "B", noGross: true},
		fixture{title: "C", gross: 40},
	)

	s := Summarize(tbl, movie.FieldGross)
	assert.Equal(t, 2, s.Count)
	require.True(t, s.Mean.Valid)
	assert.InDelta(t, 25.0, s.Mean.Float64, 1e-9)
	assert.InDelta(t, 50.0, s.Sum.Float64, 1e-9)
	assert.InDelta(t, 10.0, s.Min.Float64, 1e-9)
	assert.InDelta(t, 40.0, s.Max.Float64, 1e-9)
}

func TestAcclaimedDirectors(t *testing.T) {
	tbl := newTable(
		fixture{title: "A1", director: "A", rating: 8.0},
		fixture{title: "A2", director: "A", rating: 9.0},
		fixture{title: "B1", director: "B", rating: 7.0},
	)

	got := AcclaimedDirectors(tbl, 1, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Director)
	assert.Equal(t, 2, got[0].Movies)
	assert.InDelta(t, 8.5, got[0].AvgRating.Float64, 1e-9)

	// Both bounds are exclusive.
	assert.Empty(t, AcclaimedDirectors(tbl, 2, 0))
	assert.Empty(t, AcclaimedDirectors(tbl, 1, 8.5))
}

func TestGroupingOrderAndCuts(t *testing.T) {
	tbl := newTable(
		fixture{title: "Alpha", year: "2001", genre: "Drama", cert: "U", director: "A", rating: 8.0, gross: 10, runtime: 120, stars: []string{"Sam"}},
		fixture{title: "Beta", year: "PG", genre: "Crime", cert: "A", director: "A", rating: 9.0, gross: 30, runtime: 90, stars: []string{"Kim"}},
		fixture{title: "Gamma", year: "1999", genre: "Drama", cert: "UA", director: "B", rating: 7.0, gross: 5, runtime: 120, stars: []string{"Kim"}},
		fixture{title: "Delta", year: "Approved", genre: "Comedy", noRating: true, noGross: true},
		fixture{title: "Beta", year: "2001", genre: "Comedy", cert: "A", rating: 6.0, gross: 40, runtime: 100, stars: []string{"Lee"}},
	)

	tests := []struct {
		name       string
		groups     []GroupStat
		wantKeys   []string
		wantCounts []int
		wantValues []float64
	}{
		{
			name:       "avg rating by director",
			groups:     AvgRatingByDirector(tbl, 10),
			wantKeys:   []string{"A", "B"},
			wantCounts: []int{2, 1},
			wantValues: []float64{8.5, 7.0},
		},
		{
			name:       "top directors",
			groups:     TopDirectors(tbl, 10),
			wantKeys:   []string{"A", "B"},
			wantCounts: []int{2, 1},
		},
		{
			name:       "certificates tie in first-seen order",
			groups:     MoviesByCertificate(tbl),
			wantKeys:   []string{"A", "U", "UA"},
			wantCounts: []int{2, 1, 1},
		},
		{
			name:       "lead stars",
			groups:     TopLeadStars(tbl, 10),
			wantKeys:   []string{"Kim", "Sam", "Lee"},
			wantCounts: []int{2, 1, 1},
		},
		{
			name:       "lead stars cut",
			groups:     TopLeadStars(tbl, 2),
			wantKeys:   []string{"Kim", "Sam"},
			wantCounts: []int{2, 1},
		},
		{
			name:       "runtimes",
			groups:     MoviesByRuntime(tbl, 10),
			wantKeys:   []string{"120", "90", "100"},
			wantCounts: []int{2, 1, 1},
		},
		{
			name:       "titles cut",
			groups:     TitlesByCount(tbl, 2),
			wantKeys:   []string{"Beta", "Alpha"},
			wantCounts: []int{2, 1},
		},
		{
			name:       "gross by genre",
			groups:     GrossByGenre(tbl, 10),
			wantKeys:   []string{"Comedy", "Crime", "Drama"},
			wantCounts: []int{2, 1, 2},
			wantValues: []float64{40, 30, 15},
		},
		{
			name:       "avg rating by genre",
			groups:     AvgRatingByGenre(tbl, 10),
			wantKeys:   []string{"Crime", "Drama", "Comedy"},
			wantCounts: []int{1, 2, 2},
			wantValues: []float64{9.0, 7.5, 6.0},
		},
		{
			name:       "years with text values last in load order",
			groups:     MoviesByYear(tbl),
			wantKeys:   []string{"1999", "2001", "PG", "Approved"},
			wantCounts: []int{1, 2, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := make([]string, len(tt.groups))
			counts := make([]int, len(tt.groups))
			for i, g := range tt.groups {
				keys[i] = g.Key
				counts[i] = g.Count
			}
			assert.Equal(t, tt.wantKeys, keys)
			assert.Equal(t, tt.wantCounts, counts)

			if tt.wantValues != nil {
				require.Len(t, tt.groups, len(tt.wantValues))
				for i, want := range tt.wantValues {
					assert.True(t, tt.groups[i].Value.Valid, tt.groups[i].Key)
					assert.InDelta(t, want, tt.groups[i].Value.Float64, 1e-9, tt.groups[i].Key)
				}
			}
		})
	}
}

func TestNonPositiveLimitKeepsNothing(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", genre: "Drama", director: "X", rating: 8, gross: 10},
		fixture{title: "B", genre: "Crime", director: "Y", rating: 9, gross: 20, stars: []string{"Kim"}},
	)
	voted := movie.NewTable(movie.BaseTable, []movie.Record{
		{Title: "A", Votes: movie.Int(10)},
		{Title: "B", Votes: movie.Int(30)},
	})

	assert.Len(t, AvgRatingByGenre(tbl, 1), 1)
	assert.Len(t, TopDirectors(tbl, 1), 1)
	assert.Len(t, StarLeaderboard(tbl, 1), 1)
	assert.Len(t, VotesRowNumber(voted, 1), 1)
	assert.Len(t, TopRatedRunningGross(tbl, 1), 1)

	for _, limit := range []int{0, -1} {
		assert.Empty(t, AvgRatingByGenre(tbl, limit))
		assert.Empty(t, TopDirectors(tbl, limit))
		assert.Empty(t, StarLeaderboard(tbl, limit))
		assert.Empty(t, VotesRowNumber(voted, limit))
		assert.Empty(t, TopRatedRunningGross(tbl, limit))
	}
}

func TestRunRecoversPanic(t *testing.T) {
	res, err := Run("total_movies", nil, DefaultParams())
	assert.Nil(t, res)
	assert.ErrorContains(t, err, "report total_movies failed")
}

func TestRunAllCountsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunAll(ctx, newTable(), []string{"total_movies", "null_counts"}, DefaultParams(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []*Result{nil, nil}, results)
}

func TestNullCountsPartitionRows(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", director: "X", rating: 8, stars: []string{"S"}},
		fixture{title: "B", noRating: true, noGross: true},
		fixture{title: "C", director: "Y", rating: 7, gross: 3},
	)

	counts := NullCounts(tbl)
	require.Len(t, counts, len(movie.NullableFields()))
	for _, c := range counts {
		assert.Equal(t, tbl.Len(), c.Nulls+c.NonNulls, "field %s", c.Field)
	}

	byField := make(map[movie.Field]int)
	for _, c := range counts {
		byField[c.Field] = c.Nulls
	}
	assert.Equal(t, 1, byField[movie.FieldIMDBRating])
	assert.Equal(t, 1, byField[movie.FieldGross])
	assert.Equal(t, 1, byField[movie.FieldDirector])
	assert.Equal(t, 2, byField[movie.FieldStar1])
	assert.Equal(t, 3, byField[movie.FieldStar4])
}

func TestStarLeaderboardCountsEverySlot(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", stars: []string{"Jane Doe", "Joe Bloggs"}},
		fixture{title: "B", stars: []string{"Max Mustermann", "Jane Doe", "Joe Bloggs", "Jane Doe"}},
		fixture{title: "C"},
	)

	board := StarLeaderboard(tbl, 100)
	require.NotEmpty(t, board)
	assert.Equal(t, "Jane Doe", board[0].Key)
	assert.Equal(t, 3, board[0].Count)

	total := 0
	for _, g := range board {
		total += g.Count
	}
	assert.Equal(t, len(movie.Unpivot(tbl)), total)
	assert.Equal(t, 6, total)

	assert.Len(t, StarLeaderboard(tbl, 1), 1)
}

func TestRatingRanks(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", rating: 9.2},
		fixture{title: "B", rating: 9.1},
		fixture{title: "C", rating: 9.1},
		fixture{title: "D", noRating: true},
		fixture{title: "E", rating: 8.9},
		fixture{title: "F", rating: 8.9},
	)

	dense := RatingDenseRank(tbl)
	comp := RatingCompetitionRank(tbl)
	require.Len(t, dense, 5)
	require.Len(t, comp, 5)

	denseRanks := make([]int, len(dense))
	compRanks := make([]int, len(comp))
	order := make([]string, len(dense))
	for i := range dense {
		denseRanks[i] = dense[i].Rank
		compRanks[i] = comp[i].Rank
		order[i] = dense[i].Record.Title
	}
	assert.Equal(t, []int{1, 2, 2, 3, 3}, denseRanks)
	assert.Equal(t, []int{1, 2, 2, 4, 4}, compRanks)
	assert.Equal(t, []string{"A", "B", "C", "E", "F"}, order)
}

func TestGenreRatingRank(t *testing.T) {
	tbl := newTable(
		fixture{title: "D1", genre: "Drama", rating: 8.0},
		fixture{title: "C1", genre: "Comedy", rating: 7.0},
		fixture{title: "D2", genre: "Drama", rating: 9.0},
		fixture{title: "C2", genre: "Comedy", rating: 7.0},
	)

	got := GenreRatingRank(tbl)
	require.Len(t, got, 4)

	type row struct {
		genre string
		rank  int
		title string
	}
	want := []row{
		{"Comedy", 1, "C1"},
		{"Comedy", 1, "C2"},
		{"Drama", 1, "D2"},
		{"Drama", 2, "D1"},
	}
	for i, w := range want {
		assert.Equal(t, w, row{got[i].Partition, got[i].Rank, got[i].Record.Title}, "row %d", i)
	}
}

func TestVotesRowNumber(t *testing.T) {
	rows := []movie.Record{
		{Title: "A", Votes: movie.Int(10)},
		{Title: "B", Votes: movie.Int(30)},
		{Title: "C"},
		{Title: "D", Votes: movie.Int(20)},
	}
	tbl := movie.NewTable(movie.BaseTable, rows)

	got := VotesRowNumber(tbl, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Record.Title)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "D", got[1].Record.Title)
	assert.Equal(t, 2, got[1].Rank)
}

func TestRunningGrossByRating(t *testing.T) {
	tbl := newTable(
		fixture{title: "Low", rating: 7, gross: 5},
		fixture{title: "Unrated", noRating: true, gross: 100},
		fixture{title: "High", rating: 9, gross: 10},
		fixture{title: "Mid", rating: 8, noGross: true},
	)

	got := RunningGrossByRating(tbl)
	require.Len(t, got, 4)
	assert.Equal(t, "High", got[0].Record.Title)
	assert.Equal(t, "Unrated", got[3].Record.Title)

	sums := make([]float64, len(got))
	for i, r := range got {
		require.True(t, r.RunningSum.Valid)
		sums[i] = r.RunningSum.Float64
	}
	assert.Equal(t, []float64{10, 10, 15, 115}, sums)
	assert.InDelta(t, 7.5, got[2].RunningAvg.Float64, 1e-9)
}

func TestRunningAvgRatingByYear(t *testing.T) {
	tbl := newTable(
		fixture{title: "New", year: "2001", rating: 8},
		fixture{title: "Odd", year: "PG", rating: 6},
		fixture{title: "Old", year: "1999", rating: 9},
	)

	got := RunningAvgRatingByYear(tbl)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Old", "New", "Odd"},
		[]string{got[0].Record.Title, got[1].Record.Title, got[2].Record.Title})
	assert.InDelta(t, 8.5, got[1].RunningAvg.Float64, 1e-9)
	assert.InDelta(t, 23.0/3, got[2].RunningAvg.Float64, 1e-9)
}

func TestRatingLagLead(t *testing.T) {
	tbl := newTable(
		fixture{title: "B", rating: 8},
		fixture{title: "A", rating: 9},
		fixture{title: "C", rating: 7},
	)

	got := RatingLagLead(tbl)
	require.Len(t, got, 3)

	assert.False(t, got[0].PrevTitle.Valid)
	assert.Equal(t, sql.Null[string]{V: "B", Valid: true}, got[0].NextTitle)
	assert.Equal(t, sql.Null[float64]{V: 9, Valid: true}, got[1].PrevRating)
	assert.Equal(t, sql.Null[float64]{V: 7, Valid: true}, got[1].NextRating)
	assert.False(t, got[2].NextRating.Valid)
}

func TestTopRatedRunningGross(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", rating: 9, noGross: true},
		fixture{title: "B", rating: 8.5, gross: 10},
		fixture{title: "C", rating: 8, gross: 20},
		fixture{title: "D", rating: 7, gross: 40},
	)

	got := TopRatedRunningGross(tbl, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Record.Title)
	assert.Equal(t, "C", got[1].Record.Title)
	assert.InDelta(t, 30.0, got[1].RunningSum.Float64, 1e-9)
	assert.InDelta(t, 15.0, got[1].RunningAvg.Float64, 1e-9)
}

func TestAboveAverageRating(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", rating: 6},
		fixture{title: "B", rating: 9},
		fixture{title: "C", noRating: true},
		fixture{title: "D", rating: 8},
		fixture{title: "E", rating: 7},
	)

	avg, rows := AboveAverageRating(tbl)
	require.True(t, avg.Valid)
	assert.InDelta(t, 7.5, avg.Float64, 1e-9)
	assert.Equal(t, []string{"B", "D"}, titles(rows))
}

func TestFilters(t *testing.T) {
	rows := []movie.Record{
		{Title: "A", MetaScore: movie.Int(40), Certificate: movie.String("A")},
		{Title: "B", MetaScore: movie.Int(50), Certificate: movie.String("UA")},
		{Title: "C", Certificate: movie.String("a")},
		{Title: "D", MetaScore: movie.Int(10)},
	}
	tbl := movie.NewTable(movie.BaseTable, rows)

	assert.Equal(t, []string{"A", "D"}, titles(LowMetaScore(tbl, 50)))
	assert.Equal(t, []string{"A", "C"}, titles(MoviesWithCertificate(tbl, "A")))
}

func TestGroupingReports(t *testing.T) {
	tbl := newTable(
		fixture{title: "X", year: "2000", genre: "Drama", rating: 8, gross: 10},
		fixture{title: "Y", year: "1990", genre: "Comedy", rating: 9, gross: 5},
		fixture{title: "X", year: "2000", genre: "Drama", rating: 7, noGross: true},
	)

	byYear := MoviesByYear(tbl)
	require.Len(t, byYear, 2)
	assert.Equal(t, "1990", byYear[0].Key)
	assert.Equal(t, 2, byYear[1].Count)

	gross := GrossByYear(tbl)
	assert.InDelta(t, 10.0, gross[1].Value.Float64, 1e-9)

	genres := AvgRatingByGenre(tbl, 10)
	require.Len(t, genres, 2)
	assert.Equal(t, "Comedy", genres[0].Key)
	assert.InDelta(t, 7.5, genres[1].Value.Float64, 1e-9)

	dups := DuplicateTitles(tbl)
	require.Len(t, dups, 1)
	assert.Equal(t, "X", dups[0].Title)
	assert.Len(t, dups[0].Records, 2)

	// Rows without a director are not grouped.
	assert.Empty(t, TopDirectors(tbl, 10))
}

func TestEmptyTable(t *testing.T) {
	tbl := movie.NewTable(movie.BaseTable, nil)
	p := DefaultParams()

	for _, def := range All() {
		t.Run(def.Name, func(t *testing.T) {
			res, err := Run(def.Name, tbl, p)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, def.Name, res.Report)
			assert.Equal(t, movie.BaseTable, res.Relation)

			switch {
			case def.Name == "null_counts":
				for _, row := range res.Rows {
					assert.Equal(t, 0, row[1])
					assert.Equal(t, 0, row[2])
				}
			case def.Kind == KindSequence:
				assert.Empty(t, res.Rows)
			default:
				assert.True(t, res.NoData, "expected NoData")
				require.Len(t, res.Rows, 1)
				assert.Len(t, res.Rows[0], len(res.Columns))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	limited, err := Get("top_directors")
	require.NoError(t, err)
	plain, err := Get("total_movies")
	require.NoError(t, err)

	tests := []struct {
		name    string
		def     Definition
		mutate  func(p *Params)
		wantErr bool
	}{
		{"defaults", limited, func(p *Params) {}, false},
		{"zero limit", limited, func(p *Params) { p.Limit = 0 }, true},
		{"negative limit", limited, func(p *Params) { p.Limit = -3 }, true},
		{"unused limit", plain, func(p *Params) { p.Limit = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate(tt.def)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParam)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunUnknownReport(t *testing.T) {
	_, err := Run("no_such_report", newTable(), DefaultParams())
	assert.ErrorIs(t, err, ErrUnknownReport)

	_, err = RunAll(context.Background(), newTable(), []string{"total_movies", "nope"}, DefaultParams(), 2)
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestRunAll(t *testing.T) {
	tbl := newTable(
		fixture{title: "A", director: "X", rating: 8, gross: 10},
		fixture{title: "B", director: "X", rating: 9, gross: 20},
	)

	names := List()
	results, err := RunAll(context.Background(), tbl, names, DefaultParams(), 4)
	require.NoError(t, err)
	require.Len(t, results, len(names))
	for i, res := range results {
		require.NotNil(t, res, names[i])
		assert.Equal(t, names[i], res.Report)
	}
}

func TestRunAllJoinsErrors(t *testing.T) {
	p := DefaultParams()
	p.Limit = 0

	results, err := RunAll(context.Background(), newTable(), []string{"top_directors", "total_movies"}, p, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParam))
	assert.Nil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, "total_movies", results[1].Report)
}

func TestReportsDoNotModifyTable(t *testing.T) {
	tbl := newTable(
		fixture{title: "B", rating: 8, gross: 1},
		fixture{title: "A", rating: 9, gross: 2},
	)

	_, err := RunAll(context.Background(), tbl, List(), DefaultParams(), 0)
	require.NoError(t, err)
	assert.Equal(t, "B", tbl.Row(0).Title)
	assert.Equal(t, "A", tbl.Row(1).Title)
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range List() {
		assert.False(t, seen[name], "duplicate report %s", name)
		seen[name] = true
	}
	assert.GreaterOrEqual(t, len(seen), 30)
}
