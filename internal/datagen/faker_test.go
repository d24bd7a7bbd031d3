//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"math"
	"testing"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerMovieFields(t *testing.T) {
	f := NewFakerWithSeed(7)
	if f.MovieTitle() == "" {
		t.Error("MovieTitle returned empty string")
	}
	if f.MovieGenre() == "" {
		t.Error("MovieGenre returned empty string")
	}
	if f.Name() == "" {
		t.Error("Name returned empty string")
	}
}

func TestFakerDecimal(t *testing.T) {
	f := NewFakerWithSeed(1)
	for i := 0; i < 100; i++ {
		v := f.Decimal(7.6, 9.3, 1)
		if v < 7.6 || v > 9.3 {
			t.Errorf("Decimal out of range: %v", v)
		}
		if math.Abs(v*10-math.Round(v*10)) > 1e-9 {
			t.Errorf("Decimal not rounded to one place: %v", v)
		}
	}
}

func TestFakerChance(t *testing.T) {
	f := NewFakerWithSeed(3)
	for i := 0; i < 100; i++ {
		if f.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !f.Chance(1.01) {
			t.Fatal("Chance above 1 returned false")
		}
	}
}

func TestNullable(t *testing.T) {
	f := NewFakerWithSeed(9)

	if s := f.NullableString("x", 0); !s.Valid || s.String != "x" {
		t.Errorf("Expected valid 'x', got %+v", s)
	}
	if s := f.NullableString("x", 1); s.Valid {
		t.Errorf("Expected null, got %+v", s)
	}
	if v := f.NullableFloat(2.5, 0); !v.Valid || v.Float64 != 2.5 {
		t.Errorf("Expected valid 2.5, got %+v", v)
	}
	if v := f.NullableInt(4, 1); v.Valid {
		t.Errorf("Expected null, got %+v", v)
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}

	for i := 0; i < 100; i++ {
		result := Choose(f, items)
		found := false
		for _, item := range items {
			if result == item {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Choose returned unexpected value: %s", result)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFaker()
	var items []string
	result := Choose(f, items)
	if result != "" {
		t.Errorf("Choose on empty slice should return zero value, got %s", result)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(42)
	items := []string{"common", "rare"}
	weights := []int{99, 1}

	counts := make(map[string]int)
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	if counts["common"] < 900 {
		t.Errorf("Expected 'common' to dominate, got counts %v", counts)
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	f := NewFaker()
	if got := ChooseWeighted(f, []int{}, []int{}); got != 0 {
		t.Errorf("Expected zero value, got %d", got)
	}
}
