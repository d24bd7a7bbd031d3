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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
	"github.com/pgEdge/pgedge-filmstats/internal/render"
	"github.com/pgEdge/pgedge-filmstats/internal/reports"
)

var (
	reportAll             bool
	reportRelation        string
	reportFormat          string
	reportLimit           int
	reportTopK            int
	reportParallelism     int
	reportCertificate     string
	reportMetaScoreBelow  int
	reportRatingThreshold float64
	reportMinMovies       int
	reportMinRating       float64
)

var reportCmd = &cobra.Command{
	Use:   "report [name...]",
	Short: "Run one or more reports",
	Long: `Load the movie table and run the named reports against it, or every
report with --all. Reports run concurrently; output keeps the order given.
A failing report is reported as an error without hiding the others.

Example:
  pgedge-filmstats report --input imdb_top_1000.csv total_movies rating_dense_rank
  pgedge-filmstats report --input imdb_top_1000.csv --all --format json
  pgedge-filmstats report --source postgres --connection postgres://localhost/films \
      --relation movies star_leaderboard --limit 20`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportAll, "all", false,
		"run every report in the catalog")
	reportCmd.Flags().StringVar(&reportRelation, "relation", "",
		"relation to query: imdb_top_1000 or movies")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "",
		"output format: table or json")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0,
		"top-N cut for leaderboard reports")
	reportCmd.Flags().IntVar(&reportTopK, "top-k", 0,
		"subset size for composed reports")
	reportCmd.Flags().IntVar(&reportParallelism, "parallelism", 0,
		"maximum reports running at once (0 = unbounded)")
	reportCmd.Flags().StringVar(&reportCertificate, "certificate", "",
		"certificate matched by movies_by_certificate_value")
	reportCmd.Flags().IntVar(&reportMetaScoreBelow, "meta-score-below", 0,
		"exclusive bound for low_meta_score")
	reportCmd.Flags().Float64Var(&reportRatingThreshold, "rating-threshold", 0,
		"exclusive bound for pct_rating_above")
	reportCmd.Flags().IntVar(&reportMinMovies, "min-movies", 0,
		"exclusive film count bound for acclaimed_directors")
	reportCmd.Flags().Float64Var(&reportMinRating, "min-rating", 0,
		"exclusive average rating bound for acclaimed_directors")
}

// applyReportFlags overrides config values with flags the user set. Zero
// values are honoured when set explicitly so that validation sees them.
func applyReportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("relation") {
		cfg.Report.Relation = reportRelation
	}
	if flags.Changed("format") {
		cfg.Report.Format = reportFormat
	}
	if flags.Changed("limit") {
		cfg.Report.Limit = reportLimit
	}
	if flags.Changed("top-k") {
		cfg.Report.TopK = reportTopK
	}
	if flags.Changed("parallelism") {
		cfg.Report.Parallelism = reportParallelism
	}
	if flags.Changed("certificate") {
		cfg.Report.Certificate = reportCertificate
	}
	if flags.Changed("meta-score-below") {
		cfg.Report.MetaScoreBelow = reportMetaScoreBelow
	}
	if flags.Changed("rating-threshold") {
		cfg.Report.RatingThreshold = reportRatingThreshold
	}
	if flags.Changed("min-movies") {
		cfg.Report.MinMovies = reportMinMovies
	}
	if flags.Changed("min-rating") {
		cfg.Report.MinRating = reportMinRating
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	applyReportFlags(cmd)

	if err := cfg.ValidateReport(); err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	names := args
	if reportAll {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with report names")
		}
		names = reports.List()
	}
	if len(names) == 0 {
		return fmt.Errorf("no reports named; use --all or see 'pgedge-filmstats reports'")
	}
	for _, name := range names {
		if _, err := reports.Get(name); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tbl, _, err := loadTable(ctx, cmd.InOrStdin(), cfg.Input)
	if err != nil {
		return err
	}
	if cfg.Report.Relation == movie.ViewName {
		tbl = tbl.View(movie.ViewName)
	}

	start := time.Now()
	results, runErr := reports.RunAll(ctx, tbl, names, cfg.Report.Params(), cfg.Report.Parallelism)

	logging.Info().
		Int("reports", len(names)).
		Str("relation", tbl.Name()).
		Int("rows", tbl.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Reports complete")

	if err := render.Write(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}
	return runErr
}
