// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
)

// InstrumentOption represents a configurable option for instrumenting a semaphore
type InstrumentOption func(*instrumentedSemaphore)

// WithResources establishes a gauge that tracks the number of resources held.
// If a nil gauge is supplied, resource counts are discarded.
func WithResources(g metrics.Gauge) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if g != nil {
			i.resources = g
		} else {
			i.resources = discard.NewGauge()
		}
	}
}

// WithFailures establishes a counter that tracks failed resource acquisitions.  If a nil counter
// is supplied, failure counts are discarded.
func WithFailures(c metrics.Counter) InstrumentOption {
	return func(i *instrumentedSemaphore) {
		if c != nil {
			i.failures = c
		} else {
			i.failures = discard.NewCounter()
		}
	}
}

// Instrument decorates an existing semaphore with a set of options.  A nil semaphore results in a panic.
func Instrument(s Interface, o ...InstrumentOption) Interface {
	if s == nil {
		panic("A delegate semaphore is required")
	}

	is := &instrumentedSemaphore{
		Interface: s,
		resources: discard.NewGauge(),
		failures:  discard.NewCounter(),
	}

	for _, f := range o {
		f(is)
	}

	return is
}

type instrumentedSemaphore struct {
	Interface
	resources metrics.Gauge
	failures  metrics.Counter
}

func (is *instrumentedSemaphore) Acquire(ctx context.Context) (err error) {
	err = is.Interface.Acquire(ctx)
	if err != nil {
		is.failures.Add(1.0)
	} else {
		is.resources.Add(1.0)
	}

	return
}

func (is *instrumentedSemaphore) TryAcquire() bool {
	if is.Interface.TryAcquire() {
		is.resources.Add(1.0)
		return true
	}

	is.failures.Add(1.0)
	return false
}

func (is *instrumentedSemaphore) Release() (err error) {
	err = is.Interface.Release()
	if err == nil {
		is.resources.Add(-1.0)
	}

	return
}
