// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"sync"
	"time"

	"github.com/xmidt-org/parallel/xerrors"
)

// waitChannel returns a channel that is closed when waitGroup.Wait() returns.  If the caller
// stops listening, the goroutine lingers until the WaitGroup eventually completes.
func waitChannel(waitGroup *sync.WaitGroup) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		waitGroup.Wait()
	}()

	return done
}

// WaitTimeout performs a timed wait on a given sync.WaitGroup.  This function returns true if
// Wait() returned within the timeout, false if the timeout elapsed.
func WaitTimeout(waitGroup *sync.WaitGroup, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-waitChannel(waitGroup):
		return true
	case <-timer.C:
		return false
	}
}

// WaitContext waits on a given sync.WaitGroup until either the wait succeeds or the context is done.
// In the latter case, an *xerrors.InterruptedError wrapping ctx.Err() is returned.
func WaitContext(ctx context.Context, waitGroup *sync.WaitGroup) error {
	select {
	case <-waitChannel(waitGroup):
		return nil
	case <-ctx.Done():
		return xerrors.Interrupted("wait", ctx.Err())
	}
}
