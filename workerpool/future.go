// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"context"

	"github.com/xmidt-org/parallel/xerrors"
)

// Future is the eventual outcome of a function run via Call.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	value T
	err   error
}

// Call submits fn to the pool and returns a Future for its outcome.  The error is from
// submission only; see Pool.Submit.  A panic in fn becomes the Future's *xerrors.PanicError.
func Call[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (*Future[T], error) {
	callCtx, cancel := context.WithCancel(ctx)
	f := &Future[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	err := p.submit(callCtx, func(taskCtx context.Context) (recovered interface{}) {
		defer cancel()
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				recovered = r
				f.err = xerrors.FromPanic(r)
			}
		}()

		f.value, f.err = fn(taskCtx)
		return
	})

	if err != nil {
		cancel()
		return nil, err
	}

	return f, nil
}

// Done returns a channel that is closed once the function has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the function returns or ctx is done.  In the latter case the result is
// an *xerrors.InterruptedError and the function is left running.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err

	case <-ctx.Done():
		var zero T
		return zero, xerrors.Interrupted("await", ctx.Err())
	}
}

// Result is the nonblocking form of Await.  The boolean is false if the function has not
// returned yet.
func (f *Future[T]) Result() (T, error, bool) {
	select {
	case <-f.done:
		return f.value, f.err, true

	default:
		var zero T
		return zero, nil, false
	}
}

// Cancel cancels the function's context.  It has no effect once the function has returned.
func (f *Future[T]) Cancel() {
	f.cancel()
}
