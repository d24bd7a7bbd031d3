//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package stats

// Group is a set of member positions sharing one key.
type Group[K comparable] struct {
	Key     K
	Members []int
}

// Size returns the number of members.
func (g Group[K]) Size() int {
	return len(g.Members)
}

// GroupBy groups positions 0..n-1 by key. Groups are returned in the
// order their key is first seen and members keep their input order, so
// callers that sort groups stably get first-seen order for ties.
func GroupBy[K comparable](n int, key func(i int) K) []Group[K] {
	index := make(map[K]int)
	groups := make([]Group[K], 0)

	for i := 0; i < n; i++ {
		k := key(i)
		pos, ok := index[k]
		if !ok {
			pos = len(groups)
			index[k] = pos
			groups = append(groups, Group[K]{Key: k})
		}
		groups[pos].Members = append(groups[pos].Members, i)
	}
	return groups
}

// GroupByPresent is GroupBy for keys that may be absent. Positions whose
// key is absent are left out of every group.
func GroupByPresent[K comparable](n int, key func(i int) (K, bool)) []Group[K] {
	keep := make([]int, 0, n)
	keys := make([]K, 0, n)
	for i := 0; i < n; i++ {
		if k, ok := key(i); ok {
			keep = append(keep, i)
			keys = append(keys, k)
		}
	}

	groups := GroupBy(len(keep), func(j int) K { return keys[j] })
	for gi := range groups {
		for mi, j := range groups[gi].Members {
			groups[gi].Members[mi] = keep[j]
		}
	}
	return groups
}

// Filter returns the items for which keep is true, preserving order.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
