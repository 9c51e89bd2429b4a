// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"context"
	"time"

	"github.com/xmidt-org/parallel/clock"
)

// Delay sleeps for d using the given clock, or until ctx is done.  An early wakeup due to the
// context returns an *xerrors.InterruptedError.  A nonpositive d only checks the context.
func Delay(ctx context.Context, c clock.Interface, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return interrupted(err)
	}

	if d <= 0 {
		return nil
	}

	timer := clock.OrSystem(c).NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C():
		return nil
	case <-ctx.Done():
		return interrupted(ctx.Err())
	}
}
