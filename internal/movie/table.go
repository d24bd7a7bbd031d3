//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package movie

import "database/sql"

const (
	// BaseTable is the name of the loaded movie table.
	BaseTable = "imdb_top_1000"

	// ViewName is the name of the unfiltered projection over BaseTable.
	ViewName = "movies"
)

// Table is an immutable snapshot of movie records. It is safe for
// concurrent readers; nothing in this package mutates the rows after
// NewTable returns.
type Table struct {
	name string
	rows []Record
}

// NewTable creates a table holding a private copy of rows.
func NewTable(name string, rows []Record) *Table {
	cp := make([]Record, len(rows))
	copy(cp, rows)
	return &Table{name: name, rows: cp}
}

// Name returns the table or view name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the record at position i in load order.
func (t *Table) Row(i int) Record {
	return t.rows[i]
}

// Each calls fn for every record in load order.
func (t *Table) Each(fn func(i int, r Record)) {
	for i := range t.rows {
		fn(i, t.rows[i])
	}
}

// View returns a named handle over the same rows. The view is an
// identical projection with no filtering, so it always reflects the
// base table.
func (t *Table) View(name string) *Table {
	return &Table{name: name, rows: t.rows}
}

// Floats extracts a nullable numeric column in load order.
func (t *Table) Floats(get func(r Record) sql.NullFloat64) []sql.NullFloat64 {
	out := make([]sql.NullFloat64, len(t.rows))
	for i := range t.rows {
		out[i] = get(t.rows[i])
	}
	return out
}

// StarCredit is one non-null star slot of one record.
type StarCredit struct {
	Row   int // position of the record in the table
	Slot  int // zero-based star slot
	Actor string
}

// Unpivot turns the four star columns into a single sequence of credits,
// row by row and slot by slot. Null slots contribute nothing; an actor
// listed in two slots of the same record appears twice.
func Unpivot(t *Table) []StarCredit {
	credits := make([]StarCredit, 0, len(t.rows)*StarSlots)
	for i := range t.rows {
		for slot, star := range t.rows[i].Stars {
			if !star.Valid {
				continue
			}
			credits = append(credits, StarCredit{Row: i, Slot: slot, Actor: star.String})
		}
	}
	return credits
}
