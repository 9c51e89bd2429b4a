// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package retry re-invokes fallible operations according to a Policy.

Attempts are strictly sequential.  The first success is returned immediately.  When every attempt
fails, the result is an *xerrors.ExhaustedError that wraps the last failure.  If the context ends
while waiting between attempts, the loop stops with an *xerrors.InterruptedError instead, so that
interruption can be told apart from the operation's own failures.
*/
package retry

import (
	"context"
	"time"

	"github.com/xmidt-org/parallel/concurrent"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/xerrors"
	"go.uber.org/zap"
)

func invoke[T any](ctx context.Context, fn func(context.Context) (T, error)) (v T, err error) {
	defer xerrors.Recover(&err)
	v, err = fn(ctx)
	return
}

// Execute runs fn until it succeeds or the policy is used up.
func Execute[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error), opts ...Option) (T, error) {
	var (
		c        = newConfig(opts)
		attempts = p.attempts()
		schedule = p.NewBackOff()
		zero     T

		attempt int
		last    error
	)

	for attempt = 1; attempt <= attempts; attempt++ {
		v, err := invoke(ctx, fn)
		if err == nil {
			c.measures.RetryAttempts.With(measures.OutcomeLabel, measures.SuccessOutcome).Add(1.0)
			if attempt > 1 {
				c.logger.Debug("operation succeeded after retrying", zap.Int("attempt", attempt))
			}

			return v, nil
		}

		c.measures.RetryAttempts.With(measures.OutcomeLabel, measures.FailureOutcome).Add(1.0)
		last = err
		if attempt == attempts {
			break
		}

		if !c.shouldRetry(err) {
			c.logger.Debug("failure is not retryable", zap.Int("attempt", attempt), zap.Error(err))
			break
		}

		delay := schedule.NextBackOff()
		c.logger.Warn("attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if err := concurrent.Delay(ctx, c.clock, delay); err != nil {
			c.logger.Debug("retry interrupted", zap.Int("attempt", attempt), zap.Error(err))
			return zero, err
		}
	}

	c.measures.RetryExhausted.Add(1.0)
	c.logger.Error("retries exhausted", zap.Int("attempts", attempt), zap.Error(last))
	return zero, &xerrors.ExhaustedError{
		Attempts: attempt,
		Last:     last,
	}
}

// Do retries fn up to attempts times with a fixed delay between attempts.
func Do[T any](ctx context.Context, fn func(context.Context) (T, error), attempts int, delay time.Duration, opts ...Option) (T, error) {
	return Execute(ctx, Policy{Attempts: attempts, Delay: delay, Multiplier: 1.0}, fn, opts...)
}

// DoWithBackoff retries fn up to attempts times, multiplying the delay after each failed retry.
func DoWithBackoff[T any](ctx context.Context, fn func(context.Context) (T, error), attempts int, initial time.Duration, multiplier float64, opts ...Option) (T, error) {
	return Execute(ctx, Policy{Attempts: attempts, Delay: initial, Multiplier: multiplier}, fn, opts...)
}

func discardValue(fn func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, fn func(context.Context) error, attempts int, delay time.Duration, opts ...Option) error {
	_, err := Do(ctx, discardValue(fn), attempts, delay, opts...)
	return err
}

// RunWithBackoff is DoWithBackoff for operations without a result.
func RunWithBackoff(ctx context.Context, fn func(context.Context) error, attempts int, initial time.Duration, multiplier float64, opts ...Option) error {
	_, err := DoWithBackoff(ctx, discardValue(fn), attempts, initial, multiplier, opts...)
	return err
}
