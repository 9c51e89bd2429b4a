// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock sets the clock used to space executions.
func WithClock(cl clock.Interface) Option {
	return func(th *Throttle) {
		th.clock = clock.OrSystem(cl)
	}
}

// WithLogger sets the logger.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(th *Throttle) {
		if l != nil {
			th.logger = l
		} else {
			th.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for accepted and dropped calls.
func WithMeasures(m *measures.Measures) Option {
	return func(th *Throttle) {
		th.measures = measures.OrNop(m)
	}
}
