// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"fmt"
	"time"

	"github.com/xmidt-org/parallel/xerrors"
)

func interrupted(err error) error {
	return xerrors.Interrupted("delay", err)
}

// Timed is the outcome of an operation along with how long it took.
type Timed[T any] struct {
	Value T
	Err   error
	Start time.Time
	End   time.Time
}

// Duration is the wall time spent in the operation.
func (t Timed[T]) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

func (t Timed[T]) String() string {
	return fmt.Sprintf("Timed{value=%v, duration=%s}", t.Value, t.Duration())
}

// Time invokes fn and records its start and end times.  A panic in fn is converted into Err.
func Time[T any](fn func() (T, error)) (t Timed[T]) {
	t.Start = time.Now()
	defer func() {
		t.End = time.Now()
	}()

	defer xerrors.Recover(&t.Err)
	t.Value, t.Err = fn()
	return
}

// TimeRun is Time for operations that produce no value.
func TimeRun(fn func() error) Timed[struct{}] {
	return Time(func() (struct{}, error) {
		return struct{}{}, fn()
	})
}

// MapTimed transforms the value of a Timed, keeping its timing.
func MapTimed[T, R any](t Timed[T], f func(T) R) Timed[R] {
	return Timed[R]{
		Value: f(t.Value),
		Err:   t.Err,
		Start: t.Start,
		End:   t.End,
	}
}
