// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package fanout

import (
	"time"

	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option tailors a single fan-out.
type Option func(*config)

type config struct {
	workers     int
	pool        *workerpool.Pool
	maxDuration time.Duration
	logger      *zap.Logger
	measures    *measures.Measures
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

// WithWorkers sets the size of the fan-out's own pool.  A nonpositive value uses the
// workerpool default.  Ignored when WithPool is used.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithPool runs units of work on an existing pool.  The pool is not shut down by the fan-out.
func WithPool(p *workerpool.Pool) Option {
	return func(c *config) {
		c.pool = p
	}
}

// WithMaxDuration bounds how long a fan-out waits for its units of work.  A nonpositive
// duration waits indefinitely, which is the default.
func WithMaxDuration(d time.Duration) Option {
	return func(c *config) {
		c.maxDuration = d
	}
}

// WithLogger sets the logger for the fan-out and its own pool.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics reported by the fan-out and its own pool.
func WithMeasures(m *measures.Measures) Option {
	return func(c *config) {
		c.measures = measures.OrNop(m)
	}
}
