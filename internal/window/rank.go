//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package window

// DenseRank assigns ranks along order. Rows whose sort keys compare equal
// share a rank and the next distinct key gets the previous rank plus one.
// The result is aligned with order.
func DenseRank(order []int, cmp func(a, b int) int) []int {
	ranks := make([]int, len(order))
	rank := 0
	for i, pos := range order {
		if i == 0 || cmp(order[i-1], pos) != 0 {
			rank++
		}
		ranks[i] = rank
	}
	return ranks
}

// Rank assigns competition ranks along order. Tied rows share a rank and
// the next distinct key skips ahead by the number of tied rows.
func Rank(order []int, cmp func(a, b int) int) []int {
	ranks := make([]int, len(order))
	rank := 0
	for i, pos := range order {
		if i == 0 || cmp(order[i-1], pos) != 0 {
			rank = i + 1
		}
		ranks[i] = rank
	}
	return ranks
}

// RowNumber numbers n ordered rows from 1.
func RowNumber(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
