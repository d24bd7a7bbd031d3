//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package window implements ordered, windowed computations: ranking,
// running aggregates and row offsets.
//
// Every function works on an explicit total order, a slice of row
// positions produced by Order, and makes a single forward scan over it.
package window

import "slices"

// Order returns the positions 0..n-1 sorted by cmp. The sort is stable,
// so rows that compare equal keep their load order.
func Order(n int, cmp func(a, b int) int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, cmp)
	return order
}

// Select returns the positions 0..n-1 for which keep is true.
func Select(n int, keep func(i int) bool) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// OrderSubset sorts a copy of positions by cmp, stably.
func OrderSubset(positions []int, cmp func(a, b int) int) []int {
	order := slices.Clone(positions)
	slices.SortStableFunc(order, cmp)
	return order
}

// Limit truncates an order to at most k positions. A k of zero or less
// keeps nothing.
func Limit(order []int, k int) []int {
	k = max(k, 0)
	if len(order) > k {
		return order[:k]
	}
	return order
}

// Gather reads a value for every position in order.
func Gather[T any](order []int, get func(i int) T) []T {
	out := make([]T, len(order))
	for i, pos := range order {
		out[i] = get(pos)
	}
	return out
}

// PartitionBy splits an order into partitions by key. Partitions appear in
// the order their key is first met and keep the positions' relative order.
func PartitionBy[K comparable](order []int, key func(i int) K) [][]int {
	index := make(map[K]int)
	var parts [][]int
	for _, pos := range order {
		k := key(pos)
		p, ok := index[k]
		if !ok {
			p = len(parts)
			index[k] = p
			parts = append(parts, nil)
		}
		parts[p] = append(parts[p], pos)
	}
	return parts
}
