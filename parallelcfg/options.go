// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parallelcfg

import (
	"time"

	"github.com/xmidt-org/parallel/fanout"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/retry"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/parallel/xmetrics"
	"go.uber.org/zap"
)

const (
	DefaultTimeout  = 5 * time.Second
	DefaultDebounce = time.Second
	DefaultThrottle = time.Second
	DefaultPeriod   = 10 * time.Second
)

// Options is the complete set of tunables.  The zero value of any field means the default.
type Options struct {
	// Workers is the size of worker pools.  Nonpositive values mean runtime.NumCPU().
	Workers int `json:"workers"`

	// MaxDuration bounds fan-outs.  Nonpositive values mean no bound.
	MaxDuration time.Duration `json:"maxDuration"`

	// Retry is the retry policy for fallible operations.
	Retry retry.Policy `json:"retry"`

	// Timeout is the deadline for guarded operations.
	Timeout time.Duration `json:"timeout"`

	// Debounce is the quiet period for debounced triggers.
	Debounce time.Duration `json:"debounce"`

	// Throttle is the minimum interval between throttled triggers.
	Throttle time.Duration `json:"throttle"`

	// Period is the interval between scheduled runs.
	Period time.Duration `json:"period"`

	Log     LogOptions       `json:"log"`
	Metrics xmetrics.Options `json:"metrics"`
}

// Default returns the Options used when nothing is configured.
func Default() *Options {
	return &Options{
		Retry:    retry.DefaultPolicy(),
		Timeout:  DefaultTimeout,
		Debounce: DefaultDebounce,
		Throttle: DefaultThrottle,
		Period:   DefaultPeriod,
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}

	return def
}

// TimeoutOrDefault returns the configured timeout, or DefaultTimeout.
func (o *Options) TimeoutOrDefault() time.Duration {
	if o == nil {
		return DefaultTimeout
	}

	return orDefault(o.Timeout, DefaultTimeout)
}

// DebounceOrDefault returns the configured quiet period, or DefaultDebounce.
func (o *Options) DebounceOrDefault() time.Duration {
	if o == nil {
		return DefaultDebounce
	}

	return orDefault(o.Debounce, DefaultDebounce)
}

// ThrottleOrDefault returns the configured throttle interval, or DefaultThrottle.
func (o *Options) ThrottleOrDefault() time.Duration {
	if o == nil {
		return DefaultThrottle
	}

	return orDefault(o.Throttle, DefaultThrottle)
}

// PeriodOrDefault returns the configured schedule period, or DefaultPeriod.
func (o *Options) PeriodOrDefault() time.Duration {
	if o == nil {
		return DefaultPeriod
	}

	return orDefault(o.Period, DefaultPeriod)
}

// RetryPolicy returns the configured policy.  An unconfigured policy, one with no attempts,
// is retry.DefaultPolicy().
func (o *Options) RetryPolicy() retry.Policy {
	if o == nil || o.Retry.Attempts < 1 {
		return retry.DefaultPolicy()
	}

	return o.Retry
}

// NewPool creates a worker pool sized by these options.
func (o *Options) NewPool(logger *zap.Logger, m *measures.Measures) *workerpool.Pool {
	var workers int
	if o != nil {
		workers = o.Workers
	}

	return workerpool.New(
		workerpool.WithWorkers(workers),
		workerpool.WithLogger(logger),
		workerpool.WithMeasures(m),
	)
}

// FanoutOptions produces the fan-out options described by these Options.
func (o *Options) FanoutOptions(logger *zap.Logger, m *measures.Measures) []fanout.Option {
	opts := []fanout.Option{
		fanout.WithLogger(logger),
		fanout.WithMeasures(m),
	}

	if o != nil {
		opts = append(opts,
			fanout.WithWorkers(o.Workers),
			fanout.WithMaxDuration(o.MaxDuration),
		)
	}

	return opts
}
