// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package race runs alternative operations concurrently and keeps the first success.

A failed operation does not end the race; the remaining operations keep going.  As soon as one
succeeds, the others have their contexts cancelled and their eventual results are discarded.
Only when every operation fails is an error returned, an *xerrors.RaceError combining each
failure in the order the operations were given.
*/
package race

import (
	"context"

	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type result[T any] struct {
	index int
	value T
	err   error
}

func invoke[T any](ctx context.Context, op func(context.Context) (T, error)) (v T, err error) {
	defer xerrors.Recover(&err)
	v, err = op(ctx)
	return
}

// First races ops and returns the value of the first one to succeed.  A single op is simply
// called on the current goroutine.  No ops at all yields xerrors.ErrNoOperations.  If ctx ends
// before any op succeeds, the error is an *xerrors.InterruptedError.
func First[T any](ctx context.Context, ops []func(context.Context) (T, error), opts ...Option) (T, error) {
	var (
		c    = newConfig(opts)
		zero T
	)

	switch len(ops) {
	case 0:
		return zero, xerrors.ErrNoOperations

	case 1:
		v, err := invoke(ctx, ops[0])
		if err != nil {
			c.measures.RaceOutcomes.With(measures.OutcomeLabel, measures.AllFailedOutcome).Add(1.0)
			return zero, &xerrors.RaceError{Count: 1, Err: err}
		}

		c.measures.RaceOutcomes.With(measures.OutcomeLabel, measures.WonOutcome).Add(1.0)
		return v, nil
	}

	pool := c.pool
	if pool == nil {
		pool = workerpool.New(
			workerpool.WithWorkers(len(ops)),
			workerpool.WithLogger(c.logger),
			workerpool.WithMeasures(c.measures),
		)

		defer pool.ShutdownNow()
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered, so that losers never block
	results := make(chan result[T], len(ops))
	go func() {
		for i, op := range ops {
			i, op := i, op
			err := pool.Submit(raceCtx, func(taskCtx context.Context) {
				v, err := invoke(taskCtx, op)
				results <- result[T]{index: i, value: v, err: err}
			})

			if err != nil {
				results <- result[T]{index: i, err: err}
			}
		}
	}()

	errs := make([]error, len(ops))
	for received := 0; received < len(ops); received++ {
		select {
		case r := <-results:
			if r.err == nil {
				cancel()
				c.measures.RaceOutcomes.With(measures.OutcomeLabel, measures.WonOutcome).Add(1.0)
				c.logger.Debug("race won", zap.Int("index", r.index), zap.Int("operations", len(ops)))
				return r.value, nil
			}

			errs[r.index] = r.err

		case <-ctx.Done():
			return zero, xerrors.Interrupted("race", ctx.Err())
		}
	}

	c.measures.RaceOutcomes.With(measures.OutcomeLabel, measures.AllFailedOutcome).Add(1.0)
	err := &xerrors.RaceError{
		Count: len(ops),
		Err:   multierr.Combine(errs...),
	}

	c.logger.Warn("every raced operation failed", zap.Int("operations", len(ops)), zap.Error(err.Err))
	return zero, err
}

// Of is the variadic form of First, using default options.
func Of[T any](ctx context.Context, ops ...func(context.Context) (T, error)) (T, error) {
	return First(ctx, ops)
}
