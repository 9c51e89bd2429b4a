// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fanout

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xmidt-org/parallel/concurrent"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Settled is the outcome of one unit of work.  Done is false if the unit was abandoned
// or never started, in which case Value and Err are zero.
type Settled[T any] struct {
	Value T
	Err   error
	Done  bool
}

// slots is the shared result array.  Unit i writes values[i] and errs[i] and then sets
// settled[i], which publishes those writes to the joining goroutine.
type slots[T any] struct {
	values  []T
	errs    []error
	settled []atomic.Bool
}

func newSlots[T any](n int) *slots[T] {
	return &slots[T]{
		values:  make([]T, n),
		errs:    make([]error, n),
		settled: make([]atomic.Bool, n),
	}
}

// outcome is what a fan-out produced after its join.
type outcome[T any] struct {
	settled   []Settled[T]
	pending   int
	abandoned bool
	submitErr error
}

// err combines every failure in index order, followed by abandonment and submission failures.
func (o *outcome[T]) err(limit time.Duration) (err error) {
	for i, s := range o.settled {
		if s.Err != nil {
			err = multierr.Append(err, &xerrors.TaskError{Index: i, Err: s.Err})
		}
	}

	if o.abandoned {
		err = multierr.Append(err, &xerrors.AbandonedError{
			Pending: o.pending,
			Total:   len(o.settled),
			Limit:   limit,
		})
	}

	return multierr.Append(err, o.submitErr)
}

func (o *outcome[T]) values() []T {
	values := make([]T, len(o.settled))
	for i, s := range o.settled {
		values[i] = s.Value
	}

	return values
}

// execute runs each op on a worker and joins them.  It never returns before every unit has
// either settled or been abandoned.
func execute[T any](ctx context.Context, ops []func(context.Context) (T, error), c *config) *outcome[T] {
	if len(ops) == 0 {
		return &outcome[T]{settled: []Settled[T]{}}
	}

	pool := c.pool
	if pool == nil {
		pool = workerpool.New(
			workerpool.WithWorkers(c.workers),
			workerpool.WithLogger(c.logger),
			workerpool.WithMeasures(c.measures),
		)
	}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)

	if c.maxDuration > 0 {
		runCtx, cancel = context.WithTimeout(ctx, c.maxDuration)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}

	defer cancel()

	c.logger.Debug("fanning out", zap.Int("units", len(ops)), zap.Int("workers", pool.Workers()), zap.Duration("maxDuration", c.maxDuration))

	var (
		start     = time.Now()
		s         = newSlots[T](len(ops))
		wg        sync.WaitGroup
		submitErr error
	)

	for i, op := range ops {
		i, op := i, op
		wg.Add(1)
		err := pool.Submit(runCtx, func(taskCtx context.Context) {
			defer wg.Done()
			timed := concurrent.Time(func() (T, error) {
				return op(taskCtx)
			})

			c.measures.TaskDuration.Observe(timed.Duration().Seconds())
			s.values[i], s.errs[i] = timed.Value, timed.Err
			s.settled[i].Store(true)
		})

		if err != nil {
			wg.Done()
			submitErr = err
			c.logger.Warn("fan-out stopped submitting", zap.Int("submitted", i), zap.Int("units", len(ops)), zap.Error(err))
			break
		}
	}

	joined := true
	if c.maxDuration > 0 {
		joined = concurrent.WaitTimeout(&wg, c.maxDuration-time.Since(start))
	} else {
		wg.Wait()
	}

	// cancel anything abandoned before looking at the slots
	cancel()
	if c.pool == nil {
		if joined {
			pool.Shutdown(context.Background())
		} else {
			pool.ShutdownNow()
		}
	}

	o := &outcome[T]{
		settled:   make([]Settled[T], len(ops)),
		abandoned: !joined,
		submitErr: submitErr,
	}

	for i := range o.settled {
		if s.settled[i].Load() {
			o.settled[i] = Settled[T]{Value: s.values[i], Err: s.errs[i], Done: true}
		} else {
			o.pending++
		}
	}

	if o.abandoned {
		c.logger.Error("fan-out abandoned units of work", zap.Int("pending", o.pending), zap.Int("units", len(ops)), zap.Duration("maxDuration", c.maxDuration))
	}

	return o
}
