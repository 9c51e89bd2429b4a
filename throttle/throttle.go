// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package throttle limits how often a trigger function runs.

A call is accepted only if at least one interval has passed since the previously accepted call.
Accepted calls run the trigger synchronously on the caller's goroutine.  Calls that arrive too
soon are dropped, not queued.
*/
package throttle

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// never marks a Throttle that has not accepted any call yet.
const never int64 = math.MinInt64

// Throttle guards a trigger function.  It is safe for concurrent use.
type Throttle struct {
	trigger  func()
	interval time.Duration
	clock    clock.Interface
	logger   *zap.Logger
	measures *measures.Measures

	// offsets are measured from epoch, so that monotonic clock readings are used
	epoch time.Time
	last  atomic.Int64
}

// New creates a Throttle that runs trigger at most once per interval.  A nonpositive interval
// accepts every call.
func New(trigger func(), interval time.Duration, opts ...Option) *Throttle {
	th := &Throttle{
		trigger:  trigger,
		interval: interval,
		clock:    clock.System(),
		logger:   sallust.Default(),
		measures: measures.NewNop(),
	}

	for _, o := range opts {
		o(th)
	}

	th.epoch = th.clock.Now()
	th.last.Store(never)
	return th
}

// Func wraps trigger in a Throttle, discarding whether each call was accepted.
func Func(trigger func(), interval time.Duration, opts ...Option) func() {
	th := New(trigger, interval, opts...)
	return func() {
		th.Trigger()
	}
}

// Interval is the minimum spacing between accepted calls.
func (th *Throttle) Interval() time.Duration {
	return th.interval
}

// Trigger runs the trigger function if the interval has elapsed since the last accepted call.
// It returns true if the trigger ran.
func (th *Throttle) Trigger() bool {
	now := int64(th.clock.Now().Sub(th.epoch))
	for {
		last := th.last.Load()
		if last != never && now-last < int64(th.interval) {
			th.measures.ThrottleOutcomes.With(measures.OutcomeLabel, measures.DroppedOutcome).Add(1.0)
			th.logger.Debug("throttled call dropped", zap.Duration("sinceLast", time.Duration(now-last)))
			return false
		}

		if th.last.CompareAndSwap(last, now) {
			break
		}
	}

	th.measures.ThrottleOutcomes.With(measures.OutcomeLabel, measures.AcceptedOutcome).Add(1.0)
	if th.trigger != nil {
		th.trigger()
	}

	return true
}
