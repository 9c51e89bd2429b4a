// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the maximum number of concurrently running tasks.  A nonpositive
// value leaves the default of runtime.NumCPU() in place.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets the logger used to report task panics.  A nil logger uses sallust.Default().
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		} else {
			p.logger = sallust.Default()
		}
	}
}

// WithMeasures sets the metrics the pool reports to.  Nil discards metrics.
func WithMeasures(m *measures.Measures) Option {
	return func(p *Pool) {
		p.measures = measures.OrNop(m)
	}
}
