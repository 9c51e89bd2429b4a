// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package retry

import (
	"github.com/xmidt-org/parallel/clock"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option tailors a retry loop.
type Option func(*config)

type config struct {
	clock       clock.Interface
	logger      *zap.Logger
	measures    *measures.Measures
	shouldRetry func(error) bool
}

func newConfig(opts []Option) *config {
	c := &config{
		clock:       clock.System(),
		logger:      sallust.Default(),
		measures:    measures.NewNop(),
		shouldRetry: func(error) bool { return true },
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// WithClock sets the clock used to wait between attempts.
func WithClock(cl clock.Interface) Option {
	return func(c *config) {
		c.clock = clock.OrSystem(cl)
	}
}

// WithLogger sets the logger for failed attempts and exhaustion.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		} else {
			c.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics for attempts and exhaustion.
func WithMeasures(m *measures.Measures) Option {
	return func(c *config) {
		c.measures = measures.OrNop(m)
	}
}

// WithShouldRetry installs a predicate that decides whether a failure is worth another attempt.
// A failure the predicate rejects ends the loop at once.  A nil predicate retries everything.
func WithShouldRetry(f func(error) bool) Option {
	return func(c *config) {
		if f != nil {
			c.shouldRetry = f
		} else {
			c.shouldRetry = func(error) bool { return true }
		}
	}
}
