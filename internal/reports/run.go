//-------------------------------------------------------------------------
//
// pgEdge Film Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pgEdge/pgedge-filmstats/internal/logging"
	"github.com/pgEdge/pgedge-filmstats/internal/movie"
)

// Run validates params and executes a single report against t.
// A report that panics is turned into an error; t is never modified.
func Run(name string, t *movie.Table, p Params) (res *Result, err error) {
	def, err := Get(name)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(def); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Error().Str("report", name).Interface("panic", r).Msg("Report panicked")
			res = nil
			err = fmt.Errorf("report %s failed: %v", name, r)
		}
	}()

	start := time.Now()
	res = def.run(t, p)
	res.Report = def.Name
	res.Relation = t.Name()
	res.Kind = def.Kind

	logging.Debug().
		Str("report", def.Name).
		Str("relation", t.Name()).
		Int("rows", len(res.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("Report complete")

	return res, nil
}

// RunAll executes the named reports concurrently, at most parallelism at a
// time (0 means unbounded). Results are returned in the order of names; a
// failed report leaves a nil entry and its error is joined into the
// returned error without stopping the others. Unknown names are rejected
// before anything runs.
func RunAll(ctx context.Context, t *movie.Table, names []string, p Params, parallelism int) ([]*Result, error) {
	for _, name := range names {
		if _, err := Get(name); err != nil {
			return nil, err
		}
	}

	results := make([]*Result, len(names))
	errs := make([]error, len(names))

	var (
		succeeded, failed atomic.Int64
		totalNs           atomic.Int64
	)
	start := time.Now()

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failed.Add(1)
				errs[i] = fmt.Errorf("%s: %w", name, err)
				return nil
			}
			began := time.Now()
			res, err := Run(name, t, p)
			if err != nil {
				failed.Add(1)
				logging.Warn().Err(err).Str("report", name).Msg("Report failed")
				errs[i] = err
				return nil
			}
			succeeded.Add(1)
			totalNs.Add(int64(time.Since(began)))
			results[i] = res
			return nil
		})
	}
	// Workers keep their errors in errs so that one failure cannot cancel
	// the rest.
	g.Wait()

	var avgMs float64
	if n := succeeded.Load(); n > 0 {
		avgMs = float64(totalNs.Load()) / float64(n) / 1e6
	}
	logging.Debug().
		Dur("duration", time.Since(start)).
		Int("requested", len(names)).
		Int64("successful", succeeded.Load()).
		Int64("failed", failed.Load()).
		Float64("avg_latency_ms", avgMs).
		Msg("Report run summary")

	return results, errors.Join(errs...)
}
