// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package measures defines the metrics emitted by the concurrency primitives in this module.
package measures

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/parallel/xmetrics"
)

// Names for our metrics
const (
	PoolTasks         = "pool_tasks"
	PoolActiveWorkers = "pool_active_workers"
	PoolRejected      = "pool_rejected"
	TaskDuration      = "task_duration_seconds"
	RetryAttempts     = "retry_attempts"
	RetryExhausted    = "retry_exhausted"
	TimeoutOutcomes   = "timeout_outcomes"
	RaceOutcomes      = "race_outcomes"
	DebounceSubmitted = "debounce_submitted"
	DebounceFired     = "debounce_fired"
	ThrottleOutcomes  = "throttle_outcomes"
	ScheduleFirings   = "schedule_firings"
	ScheduleFailures  = "schedule_failures"
)

// labels
const (
	OutcomeLabel = "outcome"
)

// outcomes
const (
	SuccessOutcome   = "success"
	FailureOutcome   = "failure"
	PanicOutcome     = "panic"
	CompletedOutcome = "completed"
	ExpiredOutcome   = "expired"
	WonOutcome       = "won"
	AllFailedOutcome = "all_failed"
	AcceptedOutcome  = "accepted"
	DroppedOutcome   = "dropped"
)

// Metrics returns the Metrics relevant to this package
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       PoolTasks,
			Type:       xmetrics.CounterType,
			Help:       "Count of units of work completed by worker pools, by outcome",
			LabelNames: []string{OutcomeLabel},
		},
		{
			Name: PoolActiveWorkers,
			Type: xmetrics.GaugeType,
			Help: "The number of worker slots currently running a unit of work",
		},
		{
			Name: PoolRejected,
			Type: xmetrics.CounterType,
			Help: "Count of submissions that could not acquire a worker",
		},
		{
			Name:    TaskDuration,
			Type:    xmetrics.HistogramType,
			Help:    "Duration of individual fanned-out units of work",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		{
			Name:       RetryAttempts,
			Type:       xmetrics.CounterType,
			Help:       "Count of individual attempts made by retry policies, by outcome",
			LabelNames: []string{OutcomeLabel},
		},
		{
			Name: RetryExhausted,
			Type: xmetrics.CounterType,
			Help: "Count of retry policies that used every attempt without success",
		},
		{
			Name:       TimeoutOutcomes,
			Type:       xmetrics.CounterType,
			Help:       "Count of timeout guarded operations, by outcome",
			LabelNames: []string{OutcomeLabel},
		},
		{
			Name:       RaceOutcomes,
			Type:       xmetrics.CounterType,
			Help:       "Count of races, by outcome",
			LabelNames: []string{OutcomeLabel},
		},
		{
			Name: DebounceSubmitted,
			Type: xmetrics.CounterType,
			Help: "Count of calls to debounced functions",
		},
		{
			Name: DebounceFired,
			Type: xmetrics.CounterType,
			Help: "Count of executions of debounced functions",
		},
		{
			Name:       ThrottleOutcomes,
			Type:       xmetrics.CounterType,
			Help:       "Count of calls to throttled functions, by outcome",
			LabelNames: []string{OutcomeLabel},
		},
		{
			Name: ScheduleFirings,
			Type: xmetrics.CounterType,
			Help: "Count of scheduled task executions",
		},
		{
			Name: ScheduleFailures,
			Type: xmetrics.CounterType,
			Help: "Count of scheduled task executions that failed",
		},
	}
}

// Measures describes the defined metrics that will be used by clients.  Labeled counters
// must be curried with an outcome via With.
type Measures struct {
	PoolTasks         metrics.Counter
	PoolActiveWorkers metrics.Gauge
	PoolRejected      metrics.Counter
	TaskDuration      metrics.Histogram
	RetryAttempts     metrics.Counter
	RetryExhausted    metrics.Counter
	TimeoutOutcomes   metrics.Counter
	RaceOutcomes      metrics.Counter
	DebounceSubmitted metrics.Counter
	DebounceFired     metrics.Counter
	ThrottleOutcomes  metrics.Counter
	ScheduleFirings   metrics.Counter
	ScheduleFailures  metrics.Counter
}

// New realizes the desired metrics from a provider, normally an xmetrics.Registry created with Metrics.
func New(p provider.Provider) *Measures {
	return &Measures{
		PoolTasks:         p.NewCounter(PoolTasks),
		PoolActiveWorkers: p.NewGauge(PoolActiveWorkers),
		PoolRejected:      p.NewCounter(PoolRejected),
		TaskDuration:      p.NewHistogram(TaskDuration, 0),
		RetryAttempts:     p.NewCounter(RetryAttempts),
		RetryExhausted:    p.NewCounter(RetryExhausted),
		TimeoutOutcomes:   p.NewCounter(TimeoutOutcomes),
		RaceOutcomes:      p.NewCounter(RaceOutcomes),
		DebounceSubmitted: p.NewCounter(DebounceSubmitted),
		DebounceFired:     p.NewCounter(DebounceFired),
		ThrottleOutcomes:  p.NewCounter(ThrottleOutcomes),
		ScheduleFirings:   p.NewCounter(ScheduleFirings),
		ScheduleFailures:  p.NewCounter(ScheduleFailures),
	}
}

// NewNop produces Measures that discard everything.
func NewNop() *Measures {
	return &Measures{
		PoolTasks:         discard.NewCounter(),
		PoolActiveWorkers: discard.NewGauge(),
		PoolRejected:      discard.NewCounter(),
		TaskDuration:      discard.NewHistogram(),
		RetryAttempts:     discard.NewCounter(),
		RetryExhausted:    discard.NewCounter(),
		TimeoutOutcomes:   discard.NewCounter(),
		RaceOutcomes:      discard.NewCounter(),
		DebounceSubmitted: discard.NewCounter(),
		DebounceFired:     discard.NewCounter(),
		ThrottleOutcomes:  discard.NewCounter(),
		ScheduleFirings:   discard.NewCounter(),
		ScheduleFailures:  discard.NewCounter(),
	}
}

// OrNop returns m, or NewNop() if m is nil.
func OrNop(m *Measures) *Measures {
	if m == nil {
		return NewNop()
	}

	return m
}
