// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package race

import (
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option tailors a race.
type Option func(*config)

type config struct {
	pool     *workerpool.Pool
	logger   *zap.Logger
	measures *measures.Measures
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:   sallust.Default(),
		measures: measures.NewNop(),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// WithPool runs the raced operations on an existing pool rather than one sized to the race.
func WithPool(p *workerpool.Pool) Option {
	return func(c *config) {
		c.pool = p
	}
}

// WithLogger sets the logger.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for race outcomes.
func WithMeasures(m *measures.Measures) Option {
	return func(c *config) {
		c.measures = measures.OrNop(m)
	}
}
