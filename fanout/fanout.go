// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fanout

import (
	"context"
	"time"
)

// Compute runs every op concurrently and returns their values in order.  The slice always has
// len(ops) elements; a failed or abandoned op leaves a zero value in its slot.  The error combines
// the failures of every op, see the package documentation.
func Compute[T any](ctx context.Context, ops []func(context.Context) (T, error), opts ...Option) ([]T, error) {
	c := newConfig(opts)
	o := execute(ctx, ops, c)
	return o.values(), o.err(c.maxDuration)
}

// Map applies fn to every input concurrently.  Result i is fn(inputs[i]).
//
//	doubled, err := fanout.Map(ctx, []int{1, 2, 3, 4, 5}, double, fanout.WithWorkers(3))
func Map[T, R any](ctx context.Context, inputs []T, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	ops := make([]func(context.Context) (R, error), len(inputs))
	for i := range inputs {
		input := inputs[i]
		ops[i] = func(ctx context.Context) (R, error) {
			return fn(ctx, input)
		}
	}

	return Compute(ctx, ops, opts...)
}

// Each applies fn to every input concurrently, for its side effects.
func Each[T any](ctx context.Context, inputs []T, fn func(context.Context, T) error, opts ...Option) error {
	_, err := Map(ctx, inputs, func(ctx context.Context, input T) (struct{}, error) {
		return struct{}{}, fn(ctx, input)
	}, opts...)

	return err
}

// AwaitAll runs every op at once, with one worker per op.
func AwaitAll[T any](ctx context.Context, ops ...func(context.Context) (T, error)) ([]T, error) {
	return Compute(ctx, ops, WithWorkers(len(ops)))
}

// AwaitAllTimeout is AwaitAll bounded by d.  Each element reports whether its op finished in time
// and, if so, how.  Ops still running when d elapses have their contexts cancelled.
func AwaitAllTimeout[T any](ctx context.Context, d time.Duration, ops ...func(context.Context) (T, error)) []Settled[T] {
	c := newConfig([]Option{WithWorkers(len(ops)), WithMaxDuration(d)})
	return execute(ctx, ops, c).settled
}
