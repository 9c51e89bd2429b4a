// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package schedule runs tasks later, periodically, or continuously in the background.

Every function here returns immediately with a Handle.  A task that returns an error or panics
ends its schedule, and the failure is available from the Handle.  Canceling a Handle, or the
context given when scheduling, stops further executions.

Once and Every only stop future firings: a firing already in progress keeps the context it was
started with.  Background is different, because its task is the loop itself.  Canceling it also
cancels the context the task is running with.
*/
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/xmidt-org/parallel/concurrent"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/zap"
)

// ErrInvalidPeriod ends a periodic schedule whose period is not positive.
var ErrInvalidPeriod = errors.New("the period must be positive")

// Task is a unit of scheduled work.
type Task func(context.Context) error

// start runs loop on its own goroutine, bound to a Handle.
func start(ctx context.Context, loop func(context.Context, *Handle) error) *Handle {
	loopCtx, cancel := context.WithCancel(ctx)
	h := newHandle(cancel)
	go func() {
		defer close(h.done)
		defer cancel()
		h.err = loop(loopCtx, h)
	}()

	return h
}

// cancelled tests whether err is just the task observing the end of ctx.
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}

// fire executes a single run of task.
func (c *config) fire(ctx context.Context, h *Handle, task Task) (err error) {
	h.runs.Add(1)
	c.measures.ScheduleFirings.Add(1.0)

	defer func() {
		if err != nil && !cancelled(ctx, err) {
			c.measures.ScheduleFailures.Add(1.0)
			c.logger.Error("scheduled task failed", zap.Int("run", h.Runs()), zap.Error(err))
		}
	}()

	defer xerrors.Recover(&err)
	err = task(ctx)
	return
}

// Once runs task a single time, after delay.  The task receives ctx, so canceling the Handle
// after the task has started does not affect it.
func Once(ctx context.Context, task Task, delay time.Duration, opts ...Option) *Handle {
	c := newConfig(opts)
	return start(ctx, func(loopCtx context.Context, h *Handle) error {
		if concurrent.Delay(loopCtx, c.clock, delay) != nil {
			return nil
		}

		return c.fire(ctx, h, task)
	})
}

// Every runs task at a fixed rate: first after initialDelay, and then once per period measured
// from that first firing.  Executions never overlap.  A firing that runs long delays the next one
// rather than causing a burst.
func Every(ctx context.Context, task Task, initialDelay, period time.Duration, opts ...Option) *Handle {
	c := newConfig(opts)
	return start(ctx, func(loopCtx context.Context, h *Handle) error {
		if period <= 0 {
			return ErrInvalidPeriod
		}

		if concurrent.Delay(loopCtx, c.clock, initialDelay) != nil {
			return nil
		}

		ticker := c.clock.NewTicker(period)
		defer ticker.Stop()

		for {
			if err := c.fire(ctx, h, task); err != nil {
				return err
			}

			select {
			case <-loopCtx.Done():
				return nil

			case <-ticker.C():
				if loopCtx.Err() != nil {
					return nil
				}
			}
		}
	})
}

// Background runs task repeatedly, sleeping for period after each run, until the Handle or ctx
// is cancelled or task fails.  A nonpositive period yields ErrInvalidPeriod.  The task
// receives a context that ends when the loop is cancelled.
func Background(ctx context.Context, task Task, period time.Duration, opts ...Option) *Handle {
	c := newConfig(opts)
	return start(ctx, func(loopCtx context.Context, h *Handle) error {
		if period <= 0 {
			return ErrInvalidPeriod
		}

		for {
			if err := c.fire(loopCtx, h, task); err != nil {
				if cancelled(loopCtx, err) {
					return nil
				}

				return err
			}

			if concurrent.Delay(loopCtx, c.clock, period) != nil {
				return nil
			}
		}
	})
}
