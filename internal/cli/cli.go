//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-filmstats.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-filmstats/internal/config"
	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/reports"
	"github.com/pgEdge/pgedge-filmstats/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	input      string
	sourceName string
	connection string
	table      string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-filmstats",
		Short: "Analytic reports over the IMDB top 1000 movie table",
		Long: `pgedge-filmstats loads a movie table once, from a CSV file or an
existing PostgreSQL table, and answers a fixed catalog of named analytic
reports: summaries, null counts, groupings, filters, leaderboards, rankings,
running totals and duplicate detection.

Reports are read-only and may run concurrently against the same snapshot.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-filmstats.yaml)")
	rootCmd.PersistentFlags().StringVarP(&input, "input", "i", "",
		"CSV file to load (\"-\" for stdin)")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "",
		"input source: csv or postgres")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string (postgres source)")
	rootCmd.PersistentFlags().StringVar(&table, "table", "",
		"PostgreSQL table to read (postgres source)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if input != "" {
		cfg.Input.Path = input
	}
	if sourceName != "" {
		cfg.Input.Source = sourceName
	}
	if connection != "" {
		cfg.Input.Connection = connection
	}
	if table != "" {
		cfg.Input.Table = table
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List available reports",
	Long: `List every report in the catalog with its category and the
parameters it reads.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available reports:")
		var category reports.Category
		for _, def := range reports.All() {
			if def.Category != category {
				category = def.Category
				cmd.Println()
				cmd.Printf("%s:\n", category)
			}
			cmd.Printf("  %-28s %s\n", def.Name, def.Description)
			if len(def.Params) > 0 {
				cmd.Printf("  %-28s params: %v\n", "", def.Params)
			}
		}
		cmd.Println()
		cmd.Println("Use 'pgedge-filmstats report <name>...' or 'pgedge-filmstats report --all'.")
	},
}
