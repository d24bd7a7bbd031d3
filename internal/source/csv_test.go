//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package source

import (
	"bytes"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

const imdbSample = `Poster_Link,Series_Title,Released_Year,Certificate,Runtime,Genre,IMDB_Rating,Overview,Meta_score,Director,Star1,Star2,Star3,Star4,No_of_Votes,Gross
https://example.invalid/a.jpg,The Shawshank Redemption,1994,A,142 min,Drama,9.3,Two imprisoned men bond.,80,Frank Darabont,Tim Robbins,Morgan Freeman,Bob Gunton,William Sadler,2343110,"28,341,469"
https://example.invalid/b.jpg,Apollo 13,PG,U,140 min,"Adventure, Drama, History",7.6,Houston.,77,Ron Howard,Tom Hanks,Bill Paxton,Kevin Bacon,Gary Sinise,269197,"173,837,933"
https://example.invalid/c.jpg,Drishyam,2013,U,160 min,"Crime, Drama, Thriller",8.3,A man goes to extreme lengths.,,Jeethu Joseph,Mohanlal,Meena,Asha Sharath,Ansiba,30722,
`

func TestNormaliseHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Series_Title", "series_title"},
		{"IMDB_Rating", "imdb_rating"},
		{"Meta_score", "meta_score"},
		{"MetaScore", "meta_score"},
		{"meta score", "meta_score"},
		{"No_of_Votes", "no_of_votes"},
		{"Star1", "star1"},
		{" released-year ", "released_year"},
		{"\ufefftitle", "title"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normaliseHeader(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadCSVDatasetLayout(t *testing.T) {
	records, rejects, err := LoadCSV(strings.NewReader(imdbSample))
	require.NoError(t, err)
	assert.Empty(t, rejects)
	require.Len(t, records, 3)

	r := records[0]
	assert.Equal(t, "The Shawshank Redemption", r.Title)
	assert.Equal(t, "1994", r.ReleasedYear)
	assert.Equal(t, movie.String("A"), r.Certificate)
	assert.Equal(t, movie.Float(142), r.Runtime)
	assert.Equal(t, "Drama", r.Genre)
	assert.Equal(t, movie.Float(9.3), r.IMDBRating)
	assert.Equal(t, movie.Int(80), r.MetaScore)
	assert.Equal(t, movie.String("Frank Darabont"), r.Director)
	assert.Equal(t, movie.String("William Sadler"), r.Stars[3])
	assert.Equal(t, movie.Int(2343110), r.Votes)
	assert.Equal(t, movie.Float(28341469), r.Gross)

	// Non-numeric years are kept as text; multi-genre labels stay whole.
	assert.Equal(t, "PG", records[1].ReleasedYear)
	assert.Equal(t, "Adventure, Drama, History", records[1].Genre)

	assert.False(t, records[2].MetaScore.Valid)
	assert.False(t, records[2].Gross.Valid)
}

func TestLoadCSVRejectsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"title,imdb_rating,meta_score,runtime,votes",
		"Good,8.1,70,120,100",
		"Bad Rating,eleven,70,120,100",
		"Short Row,8.0",
		"Out Of Range,10.5,70,120,100",
		"Bad Meta,8.0,70.5,120,100",
		"Also Good,,,,",
	}, "\n") + "\n"

	records, rejects, err := LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Good", records[0].Title)
	assert.Equal(t, "Also Good", records[1].Title)
	assert.False(t, records[1].IMDBRating.Valid)

	require.Len(t, rejects, 4)

	assert.Equal(t, 2, rejects[0].Row)
	assert.Equal(t, 3, rejects[0].Line)
	assert.Equal(t, ColIMDBRating, rejects[0].Column)

	assert.Equal(t, 3, rejects[1].Row)
	assert.True(t, errors.Is(rejects[1], ErrFieldCount))

	assert.Equal(t, ColIMDBRating, rejects[2].Column)
	assert.True(t, errors.Is(rejects[2], ErrOutOfRange))

	assert.Equal(t, ColMetaScore, rejects[3].Column)
	assert.Contains(t, rejects[3].Error(), "row 5")
}

func TestLoadCSVHeaderErrors(t *testing.T) {
	_, _, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, _, err = LoadCSV(strings.NewReader("genre,imdb_rating\nDrama,8\n"))
	assert.ErrorIs(t, err, ErrMissingTitle)
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	records, rejects, err := LoadCSV(strings.NewReader("title,gross\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Empty(t, rejects)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	want := []movie.Record{
		{
			Title:        "Seven Samurai",
			ReleasedYear: "1954",
			Certificate:  movie.String("U"),
			Runtime:      movie.Float(207),
			Genre:        "Action, Drama",
			IMDBRating:   movie.Float(8.6),
			MetaScore:    movie.Int(98),
			Director:     movie.String("Akira Kurosawa"),
			Stars: [movie.StarSlots]sql.NullString{
				movie.String("Toshirô Mifune"),
				movie.String("Takashi Shimura"),
			},
			Votes: movie.Int(315744),
			Gross: movie.Float(269061),
		},
		{Title: "Untitled, \"quoted\"", ReleasedYear: "2020", Genre: "Drama"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, want))

	got, rejects, err := LoadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, rejects)
	assert.Equal(t, want, got)
}
