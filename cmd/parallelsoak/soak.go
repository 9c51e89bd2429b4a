// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/parallel/debounce"
	"github.com/xmidt-org/parallel/fanout"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/parallelcfg"
	"github.com/xmidt-org/parallel/race"
	"github.com/xmidt-org/parallel/retry"
	"github.com/xmidt-org/parallel/schedule"
	"github.com/xmidt-org/parallel/throttle"
	"github.com/xmidt-org/parallel/timeout"
	"github.com/xmidt-org/parallel/workerpool"
	"github.com/xmidt-org/sallust"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var errSimulated = errors.New("simulated failure")

func init() {
	ksuid.SetRand(ksuid.FastRander)
}

// soaker runs the synthetic workload.  Each run fans out units of work on a shared pool, each
// unit retried and guarded by a timeout, and then races redundant probes against each other.
type soaker struct {
	config   SoakConfig
	options  *parallelcfg.Options
	logger   *zap.Logger
	measures *measures.Measures
	pool     *workerpool.Pool
	status   *status

	// summarize collapses bursts of failed runs into one log entry
	summarize *debounce.Debouncer

	// report logs progress at most once per throttle interval
	report *throttle.Throttle

	randLock sync.Mutex
	rand     *rand.Rand
}

func newSoaker(sc SoakConfig, o *parallelcfg.Options, logger *zap.Logger, m *measures.Measures, st *status) *soaker {
	s := &soaker{
		config:   sc,
		options:  o,
		logger:   logger,
		measures: m,
		pool:     o.NewPool(logger, m),
		status:   st,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())), // nolint:gosec
	}

	s.summarize = debounce.New(
		o.DebounceOrDefault(),
		debounce.WithLogger(logger),
		debounce.WithMeasures(m),
	)

	s.report = throttle.New(
		s.logProgress,
		o.ThrottleOrDefault(),
		throttle.WithLogger(logger),
		throttle.WithMeasures(m),
	)

	return s
}

func (s *soaker) float64() float64 {
	s.randLock.Lock()
	defer s.randLock.Unlock()
	return s.rand.Float64()
}

func (s *soaker) latency() time.Duration {
	return time.Duration(s.float64() * float64(s.config.MaxLatency))
}

// attempt simulates one call to a remote dependency.
func (s *soaker) attempt(ctx context.Context, input int) (int, error) {
	timer := time.NewTimer(s.latency())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	if s.float64() < s.config.FailureRate {
		return 0, errSimulated
	}

	return input * input, nil
}

// unit is a single fanned-out unit of work: retried attempts, each bounded by the timeout.
func (s *soaker) unit(ctx context.Context, input int) (int, error) {
	return retry.Execute(ctx, s.options.RetryPolicy(), func(ctx context.Context) (int, error) {
		v, ok, err := timeout.Value(ctx, s.options.TimeoutOrDefault(), func(ctx context.Context) (int, error) {
			return s.attempt(ctx, input)
		}, timeout.WithLogger(s.logger), timeout.WithMeasures(s.measures))

		switch {
		case err != nil:
			return 0, err
		case !ok:
			return 0, context.DeadlineExceeded
		default:
			return v, nil
		}
	}, retry.WithLogger(s.logger), retry.WithMeasures(s.measures))
}

// probe races two redundant attempts, keeping whichever answers first.
func (s *soaker) probe(ctx context.Context) (int, error) {
	return race.First(ctx, []func(context.Context) (int, error){
		func(ctx context.Context) (int, error) { return s.attempt(ctx, 1) },
		func(ctx context.Context) (int, error) { return s.attempt(ctx, 1) },
	}, race.WithLogger(s.logger), race.WithMeasures(s.measures))
}

// run is one scheduled execution of the workload.  Workload failures are recorded rather than
// returned, so that they do not end the schedule.
func (s *soaker) run(ctx context.Context) error {
	var (
		runID  = ksuid.New().String()
		logger = s.logger.With(zap.String("runID", runID))
		inputs = make([]int, s.config.Units)
	)

	ctx = sallust.With(ctx, logger)
	for i := range inputs {
		inputs[i] = i
	}

	opts := append(s.options.FanoutOptions(logger, s.measures), fanout.WithPool(s.pool))
	results, err := fanout.Map(ctx, inputs, s.unit, opts...)
	if err == nil {
		_, err = s.probe(ctx)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.status.record(runID, len(results), err)
	if err != nil {
		s.summarize.Submit(func() {
			runs, failures, last := s.status.failures()
			logger.Warn("soak runs failing", zap.Int("runs", runs), zap.Int("failures", failures), zap.String("lastError", last))
		})
	}

	s.report.Trigger()
	return nil
}

func (s *soaker) logProgress() {
	snapshot := s.status.snapshotCopy()
	s.logger.Info("soak progress",
		zap.Int("runs", snapshot.Runs),
		zap.Int("failures", snapshot.Failures),
		zap.String("lastRunID", snapshot.LastRunID),
		zap.Int("active", s.pool.Active()),
	)
}

// sample records pool utilization, continuously, until cancelled.
func (s *soaker) sample(context.Context) error {
	s.status.sampleActive(s.pool.Active())
	return nil
}

// start schedules the workload and the sampler.  The returned function stops both.
func (s *soaker) start(ctx context.Context) func(context.Context) error {
	period := s.options.PeriodOrDefault()
	workload := schedule.Every(ctx, s.run, 0, period, schedule.WithLogger(s.logger), schedule.WithMeasures(s.measures))
	sampler := schedule.Background(ctx, s.sample, max(period/4, time.Millisecond), schedule.WithLogger(s.logger), schedule.WithMeasures(s.measures))

	return func(stopCtx context.Context) error {
		workload.Cancel()
		sampler.Cancel()
		s.summarize.Discharge()
		s.pool.ShutdownNow()

		if err := workload.Wait(stopCtx); err != nil {
			return err
		}

		return sampler.Wait(stopCtx)
	}
}

func provideSoak() fx.Option {
	return fx.Options(
		fx.Provide(
			newStatus,
			newSoaker,
		),
		fx.Invoke(
			func(lc fx.Lifecycle, s *soaker) {
				var stop func(context.Context) error
				lc.Append(fx.Hook{
					OnStart: func(context.Context) error {
						stop = s.start(context.Background())
						return nil
					},
					OnStop: func(ctx context.Context) error {
						return stop(ctx)
					},
				})
			},
		),
	)
}
