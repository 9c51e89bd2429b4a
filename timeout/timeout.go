// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package timeout bounds how long the caller waits for an operation.

Running out of time is not an error.  It is reported as an absent result (or a default value)
and the operation's context is cancelled.  An operation that ignores its context keeps running
detached, and whatever it eventually returns is discarded.  Failures that happen before the
deadline are returned as *xerrors.TimeoutError values wrapping the operation's error.
*/
package timeout

import (
	"context"
	"time"

	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/zap"
)

// Value runs fn with a deadline of d.  The boolean reports whether fn completed in time.  A
// nonpositive d has already elapsed, so fn is not run at all.  If ctx ends before either fn
// or the deadline, the error is an *xerrors.InterruptedError.
func Value[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error), opts ...Option) (T, bool, error) {
	var (
		c    = newConfig(opts)
		zero T
	)

	if d <= 0 {
		c.measures.TimeoutOutcomes.With(measures.OutcomeLabel, measures.ExpiredOutcome).Add(1.0)
		return zero, false, nil
	}

	pool := c.pool
	if pool == nil {
		pool = workerpool.New(
			workerpool.WithWorkers(1),
			workerpool.WithLogger(c.logger),
			workerpool.WithMeasures(c.measures),
		)

		defer pool.ShutdownNow()
	}

	timer := c.clock.NewTimer(d)
	defer timer.Stop()

	// the deadline covers waiting for a worker as well as the operation itself
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan struct{})
	go func() {
		select {
		case <-timer.C():
			close(expired)
			cancel()

		case <-opCtx.Done():
		}
	}()

	f, err := workerpool.Call(opCtx, pool, fn)
	if err != nil {
		select {
		case <-expired:
			c.expire(d)
			return zero, false, nil

		default:
			return zero, false, err
		}
	}

	select {
	case <-f.Done():
		v, err, _ := f.Result()
		if err != nil {
			c.measures.TimeoutOutcomes.With(measures.OutcomeLabel, measures.FailureOutcome).Add(1.0)
			return zero, false, &xerrors.TimeoutError{Limit: d, Err: err}
		}

		c.measures.TimeoutOutcomes.With(measures.OutcomeLabel, measures.CompletedOutcome).Add(1.0)
		return v, true, nil

	case <-expired:
		c.expire(d)
		go discard(c.logger, f)
		return zero, false, nil

	case <-ctx.Done():
		go discard(c.logger, f)
		return zero, false, xerrors.Interrupted("timeout", ctx.Err())
	}
}

// discard waits for an abandoned operation and logs how it ended.
func discard[T any](logger *zap.Logger, f *workerpool.Future[T]) {
	<-f.Done()
	if _, err, _ := f.Result(); err != nil {
		logger.Debug("abandoned operation failed", zap.Error(err))
	}
}

func (c *config) expire(d time.Duration) {
	c.measures.TimeoutOutcomes.With(measures.OutcomeLabel, measures.ExpiredOutcome).Add(1.0)
	c.logger.Warn("operation timed out", zap.Duration("limit", d))
}

// ValueOr is Value with def standing in for an absent result.
func ValueOr[T any](ctx context.Context, d time.Duration, def T, fn func(context.Context) (T, error), opts ...Option) (T, error) {
	v, ok, err := Value(ctx, d, fn, opts...)
	if !ok {
		return def, err
	}

	return v, nil
}

// Run guards an operation without a result.  The boolean is true if fn completed in time.
func Run(ctx context.Context, d time.Duration, fn func(context.Context) error, opts ...Option) (bool, error) {
	_, ok, err := Value(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, opts...)

	return ok, err
}
