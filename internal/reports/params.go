//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import "fmt"

// Params are the caller-supplied inputs of parameterised reports.
type Params struct {
	// Limit is the top-N cut for leaderboard style reports.
	Limit int

	// TopK is the size of the pre-selected subset in composed reports.
	TopK int

	// Certificate is the certificate matched by the certificate filter.
	Certificate string

	// MetaScoreBelow is the exclusive upper bound for low meta scores.
	MetaScoreBelow int

	// RatingThreshold is the exclusive lower bound for the rating share.
	RatingThreshold float64

	// MinMovies is the exclusive lower bound on a director's film count.
	MinMovies int

	// MinRating is the exclusive lower bound on a director's average rating.
	MinRating float64
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		Limit:           10,
		TopK:            5,
		Certificate:     "A",
		MetaScoreBelow:  50,
		RatingThreshold: 8.5,
		MinMovies:       5,
		MinRating:       8.0,
	}
}

// Validate checks the parameters a definition reads.
func (p Params) Validate(def Definition) error {
	if def.Uses(ParamLimit) && p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be at least 1, got %d", ErrInvalidParam, p.Limit)
	}
	if def.Uses(ParamTopK) && p.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidParam, p.TopK)
	}
	if def.Uses(ParamCertificate) && p.Certificate == "" {
		return fmt.Errorf("%w: certificate is required", ErrInvalidParam)
	}
	if def.Uses(ParamMetaScoreBelow) && (p.MetaScoreBelow < 0 || p.MetaScoreBelow > 100) {
		return fmt.Errorf("%w: meta_score_below must be within 0-100, got %d", ErrInvalidParam, p.MetaScoreBelow)
	}
	if def.Uses(ParamRatingThreshold) && (p.RatingThreshold < 0 || p.RatingThreshold > 10) {
		return fmt.Errorf("%w: rating_threshold must be within 0-10, got %g", ErrInvalidParam, p.RatingThreshold)
	}
	if def.Uses(ParamMinMovies) && p.MinMovies < 0 {
		return fmt.Errorf("%w: min_movies must be non-negative, got %d", ErrInvalidParam, p.MinMovies)
	}
	if def.Uses(ParamMinRating) && (p.MinRating < 0 || p.MinRating > 10) {
		return fmt.Errorf("%w: min_rating must be within 0-10, got %g", ErrInvalidParam, p.MinRating)
	}
	return nil
}
