//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package render writes report results as text tables or JSON.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/pgEdge/pgedge-filmstats/internal/reports"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// NullText is how an absent value is shown in tables.
const NullText = "NULL"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (valid: table, json)", s)
}

// Write renders results to w in the given format. Nil entries, left by
// reports that failed, are skipped.
func Write(w io.Writer, format Format, results []*reports.Result) error {
	switch format {
	case FormatTable:
		return Table(w, results)
	case FormatJSON:
		return JSON(w, results)
	}
	return fmt.Errorf("unknown output format %q", format)
}

var heading = color.New(color.FgCyan, color.Bold)

// Table writes each result as a titled text table.
func Table(w io.Writer, results []*reports.Result) error {
	for _, res := range results {
		if res == nil {
			continue
		}

		if _, err := heading.Fprintf(w, "\n%s (%s)\n", res.Report, res.Relation); err != nil {
			return err
		}

		table := tablewriter.NewWriter(w)
		table.SetHeader(res.Columns)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		for _, row := range res.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = Cell(v)
			}
			table.Append(cells)
		}
		table.Render()

		if res.NoData {
			if _, err := fmt.Fprintln(w, "(no qualifying rows)"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cell formats a single result value for text output.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return NullText
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}
