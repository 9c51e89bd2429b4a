// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xerrors defines the failure categories shared by the concurrency primitives in this module.

An operation failure is whatever a unit of work returned, tagged with its position (TaskError) or
converted from a panic (PanicError).  An exhaustion failure (ExhaustedError) means a retry policy used
every attempt.  An interruption failure (InterruptedError) means a sleep or a wait was cut short by
context cancellation.  Timeouts are not errors at all; they surface as absent results.
*/
package xerrors

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// ErrInterrupted is matched by errors.Is for every InterruptedError.
	ErrInterrupted = errors.New("interrupted")

	// ErrNoOperations is returned when a primitive that needs at least one operation receives none.
	ErrNoOperations = errors.New("no operations supplied")
)

// InterruptedError indicates that a blocking sleep or wait was abandoned because its context was done.
// Err is the context's error.
type InterruptedError struct {
	Op  string
	Err error
}

// Interrupted produces an InterruptedError for the named operation.
func Interrupted(op string, err error) error {
	return &InterruptedError{Op: op, Err: err}
}

func (ie *InterruptedError) Error() string {
	return fmt.Sprintf("%s interrupted: %v", ie.Op, ie.Err)
}

func (ie *InterruptedError) Unwrap() error {
	return ie.Err
}

func (ie *InterruptedError) Is(target error) bool {
	return target == ErrInterrupted
}

// ExhaustedError is returned by a retry policy that used all of its attempts.  Last is the
// failure from the final attempt.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (ee *ExhaustedError) Error() string {
	return fmt.Sprintf("retries exhausted after %d attempt(s): %v", ee.Attempts, ee.Last)
}

func (ee *ExhaustedError) Unwrap() error {
	return ee.Last
}

// TaskError is an operation failure from a fanned-out unit of work.  Index is the position of
// the unit in the caller's input.
type TaskError struct {
	Index int
	Err   error
}

func (te *TaskError) Error() string {
	return fmt.Sprintf("task %d failed: %v", te.Index, te.Err)
}

func (te *TaskError) Unwrap() error {
	return te.Err
}

// PanicError is a recovered panic, converted into an ordinary operation failure.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", pe.Value)
}

// Unwrap exposes the panic value when the panic was raised with an error.
func (pe *PanicError) Unwrap() error {
	if err, ok := pe.Value.(error); ok {
		return err
	}

	return nil
}

// FromPanic converts the result of recover() into a PanicError.  A nil value yields a nil error.
func FromPanic(r interface{}) error {
	if r == nil {
		return nil
	}

	return &PanicError{
		Value: r,
		Stack: debug.Stack(),
	}
}

// Recover is intended to be deferred directly.  If the enclosing function panics, the
// panic is stored in *err as a PanicError.
//
//	func work() (err error) {
//		defer xerrors.Recover(&err)
//		...
//	}
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = FromPanic(r)
	}
}

// RaceError is returned when every raced operation failed.  Err combines the individual failures.
type RaceError struct {
	Count int
	Err   error
}

func (re *RaceError) Error() string {
	return fmt.Sprintf("all %d raced operation(s) failed: %v", re.Count, re.Err)
}

func (re *RaceError) Unwrap() error {
	return re.Err
}

// AbandonedError is returned by a fan-out whose maximum duration elapsed before every unit of
// work completed.  Pending units were abandoned and their contexts cancelled.
type AbandonedError struct {
	Pending int
	Total   int
	Limit   time.Duration
}

func (ae *AbandonedError) Error() string {
	return fmt.Sprintf("%d of %d task(s) abandoned after %s", ae.Pending, ae.Total, ae.Limit)
}

// TimeoutError wraps an operation failure raised before a timeout guard's deadline.
type TimeoutError struct {
	Limit time.Duration
	Err   error
}

func (te *TimeoutError) Error() string {
	return fmt.Sprintf("operation with a %s limit failed: %v", te.Limit, te.Err)
}

func (te *TimeoutError) Unwrap() error {
	return te.Err
}

// FirstCause follows the chain of single-error Unwrap methods and returns the innermost error.
// Combined errors (those unwrapping to more than one error) end the walk.
func FirstCause(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}

		err = next
	}

	return nil
}
