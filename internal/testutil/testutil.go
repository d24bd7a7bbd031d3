//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

const (
	// DefaultTestConnString is the default connection string for tests.
	// Override with PGEDGE_TEST_CONN environment variable.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix is the prefix for test databases.
	TestDBPrefix = "filmstats_test_"
)

// createMovieTableSQL mirrors the column layout of the published dataset.
const createMovieTableSQL = `
CREATE TABLE %s (
    title         TEXT NOT NULL,
    released_year TEXT NOT NULL,
    certificate   TEXT,
    runtime       NUMERIC(5,1),
    genre         TEXT NOT NULL,
    imdb_rating   NUMERIC(3,1),
    meta_score    INTEGER,
    director      TEXT,
    star1         TEXT,
    star2         TEXT,
    star3         TEXT,
    star4         TEXT,
    votes         BIGINT,
    gross         NUMERIC(14,2)
)`

// createTextMovieTableSQL holds every column as text, the way a raw import
// of the published CSV lands in PostgreSQL.
const createTextMovieTableSQL = `
CREATE TABLE %s (
    title TEXT, released_year TEXT, certificate TEXT, runtime TEXT,
    genre TEXT, imdb_rating TEXT, meta_score TEXT, director TEXT,
    star1 TEXT, star2 TEXT, star3 TEXT, star4 TEXT,
    votes TEXT, gross TEXT
)`

// movieColumns is the canonical column order of both test tables.
var movieColumns = []string{
	"title", "released_year", "certificate", "runtime", "genre",
	"imdb_rating", "meta_score", "director",
	"star1", "star2", "star3", "star4", "votes", "gross",
}

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv("PGEDGE_TEST_CONN")
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// CreateTestDB creates a uniquely named test database and returns its
// connection string.
func CreateTestDB(t *testing.T, baseConnStr string) string {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random database name: %v", err)
	}
	dbName := TestDBPrefix + hex.EncodeToString(randomBytes)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	config, err := pgxpool.ParseConfig(baseConnStr)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	// ConnString() does not reflect changes made to ConnConfig.Database
	cc := config.ConnConfig
	if cc.Password != "" {
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cc.User, cc.Password, cc.Host, cc.Port, dbName)
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", cc.User, cc.Host, cc.Port, dbName)
}

// DropTestDB drops the test database.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer pool.Close()

	_, _ = pool.Exec(ctx, `
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = $1 AND pid <> pg_backend_pid()
    `, dbName)

	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}

// GetDBNameFromConnStr extracts the database name from a connection string.
func GetDBNameFromConnStr(connStr string) string {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return ""
	}
	return config.ConnConfig.Database
}

// ConnectTestDB connects to a test database.
func ConnectTestDB(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return pool
}

// CreateMovieTable creates table in the test database and copies records
// into it in order.
func CreateMovieTable(t *testing.T, pool *pgxpool.Pool, table string, records []movie.Record) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, fmt.Sprintf(createMovieTableSQL, pgx.Identifier{table}.Sanitize())); err != nil {
		t.Fatalf("Failed to create movie table: %v", err)
	}

	_, err := pool.CopyFrom(ctx, pgx.Identifier{table}, movieColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				r.Title, r.ReleasedYear, r.Certificate, r.Runtime, r.Genre,
				r.IMDBRating, r.MetaScore, r.Director,
				r.Stars[0], r.Stars[1], r.Stars[2], r.Stars[3],
				r.Votes, r.Gross,
			}, nil
		}))
	if err != nil {
		t.Fatalf("Failed to copy movies: %v", err)
	}
}

// CreateTextMovieTable creates an all-text movie table and inserts rows in
// order. Each row holds one value per canonical column; nil is NULL.
func CreateTextMovieTable(t *testing.T, pool *pgxpool.Pool, table string, rows [][]any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, fmt.Sprintf(createTextMovieTableSQL, pgx.Identifier{table}.Sanitize())); err != nil {
		t.Fatalf("Failed to create text movie table: %v", err)
	}

	if _, err := pool.CopyFrom(ctx, pgx.Identifier{table}, movieColumns, pgx.CopyFromRows(rows)); err != nil {
		t.Fatalf("Failed to copy text movies: %v", err)
	}
}

// TestCleanup is a helper that cleans up test resources.
type TestCleanup struct {
	t           *testing.T
	baseConnStr string
	dbName      string
	pool        *pgxpool.Pool
}

// NewTestCleanup creates a new test cleanup helper.
func NewTestCleanup(t *testing.T, baseConnStr, dbName string) *TestCleanup {
	return &TestCleanup{
		t:           t,
		baseConnStr: baseConnStr,
		dbName:      dbName,
	}
}

// SetPool sets the pool to close on cleanup.
func (tc *TestCleanup) SetPool(pool *pgxpool.Pool) {
	tc.pool = pool
}

// Cleanup performs the cleanup.
// The database is only dropped if the test passed; on failure it remains
// for diagnostic purposes.
func (tc *TestCleanup) Cleanup() {
	if tc.pool != nil {
		tc.pool.Close()
	}
	if tc.dbName != "" {
		if tc.t.Failed() {
			tc.t.Logf("Test failed - keeping database %s for diagnostics", tc.dbName)
		} else {
			DropTestDB(tc.t, tc.baseConnStr, tc.dbName)
		}
	}
}
