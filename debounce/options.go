// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package debounce

import (
	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option configures a Debouncer.
type Option func(*Debouncer)

// WithClock sets the clock that times quiet periods.
func WithClock(cl clock.Interface) Option {
	return func(d *Debouncer) {
		d.clock = clock.OrSystem(cl)
	}
}

// WithLogger sets the logger used to report panics from debounced functions.
func WithLogger(l *zap.Logger) Option {
	return func(d *Debouncer) {
		if l != nil {
			d.logger = l
		} else {
			d.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for submissions and executions.
func WithMeasures(m *measures.Measures) Option {
	return func(d *Debouncer) {
		d.measures = measures.OrNop(m)
	}
}
