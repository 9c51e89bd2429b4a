// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option tailors a schedule.
type Option func(*config)

type config struct {
	clock    clock.Interface
	logger   *zap.Logger
	measures *measures.Measures
}

func newConfig(opts []Option) *config {
	c := &config{
		clock:    clock.System(),
		logger:   sallust.Default(),
		measures: measures.NewNop(),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// WithClock sets the clock that times delays and periods.
func WithClock(cl clock.Interface) Option {
	return func(c *config) {
		c.clock = clock.OrSystem(cl)
	}
}

// WithLogger sets the logger used to report task failures.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for firings and failures.
func WithMeasures(m *measures.Measures) Option {
	return func(c *config) {
		c.measures = measures.OrNop(m)
	}
}
