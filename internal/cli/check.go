//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the input without running reports",
	Long: `Load the configured input and print how many rows were accepted
and why each rejected row was skipped.

Example:
  pgedge-filmstats check --input imdb_top_1000.csv
  pgedge-filmstats check --input imdb_top_1000.csv --strict`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false,
		"exit with an error if any row was rejected")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tbl, rejects, err := loadTable(context.Background(), cmd.InOrStdin(), cfg.Input)
	if err != nil {
		return err
	}

	cmd.Printf("Accepted rows: %d\n", tbl.Len())
	cmd.Printf("Rejected rows: %d\n", len(rejects))
	for _, re := range rejects {
		cmd.Printf("  %v\n", re)
	}

	if checkStrict && len(rejects) > 0 {
		return fmt.Errorf("%d rows rejected", len(rejects))
	}
	return nil
}
