//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates synthetic movie records.
package datagen

import (
	"database/sql"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// MovieTitle generates a random movie title.
func (f *Faker) MovieTitle() string {
	return f.faker.MovieName()
}

// MovieGenre generates a random single genre.
func (f *Faker) MovieGenre() string {
	return f.faker.MovieGenre()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Decimal generates a random value between min and max rounded to places
// decimal places.
func (f *Faker) Decimal(min, max float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f.Float64(min, max)*p) / p
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// Chance reports true with probability p.
func (f *Faker) Chance(p float64) bool {
	return p > 0 && f.Float64(0, 1) < p
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// NullableString returns s, or an absent value with the given probability.
func (f *Faker) NullableString(s string, nullProbability float64) sql.NullString {
	if f.Chance(nullProbability) {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// NullableFloat returns v, or an absent value with the given probability.
func (f *Faker) NullableFloat(v float64, nullProbability float64) sql.NullFloat64 {
	if f.Chance(nullProbability) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// NullableInt returns v, or an absent value with the given probability.
func (f *Faker) NullableInt(v int64, nullProbability float64) sql.NullInt64 {
	if f.Chance(nullProbability) {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: v, Valid: true}
}
