// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"context"
	"sync/atomic"

	"github.com/xmidt-org/parallel/xerrors"
)

// Handle controls a scheduled task.
type Handle struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}
	runs      atomic.Int64

	// err is written once, before done is closed
	err error
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Cancel stops any future executions.  It returns true if this call stopped a schedule that
// was still active, and false if the schedule had already ended or been cancelled.
func (h *Handle) Cancel() bool {
	select {
	case <-h.done:
		return false
	default:
	}

	first := h.cancelled.CompareAndSwap(false, true)
	h.cancel()
	return first
}

// Done returns a channel that is closed once the schedule has ended, for any reason.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the failure that ended the schedule.  It is nil while the schedule is active,
// and nil if the schedule ended by cancellation or by running to completion.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the schedule ends and returns Err().  If ctx ends first, the result is
// an *xerrors.InterruptedError and the schedule is unaffected.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return xerrors.Interrupted("wait", ctx.Err())
	}
}

// Runs is the number of times the task has been started.
func (h *Handle) Runs() int {
	return int(h.runs.Load())
}
