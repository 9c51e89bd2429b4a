// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/spf13/viper"
	"github.com/xmidt-org/parallel/parallelcfg"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	soakKey = "soak"

	defaultAddress    = ":9090"
	defaultUnits      = 16
	defaultMaxLatency = 50 * time.Millisecond
)

// SoakConfig describes the synthetic workload.
type SoakConfig struct {
	// Address is where /metrics and /health are served.
	Address string

	// Units is the number of units of work fanned out on each run.
	Units int

	// FailureRate is the probability, in [0, 1], that an attempt of a unit fails.
	FailureRate float64

	// MaxLatency is the upper bound on the simulated latency of an attempt.
	MaxLatency time.Duration
}

func (sc *SoakConfig) applyDefaults() {
	if len(sc.Address) == 0 {
		sc.Address = defaultAddress
	}

	if sc.Units < 1 {
		sc.Units = defaultUnits
	}

	if sc.MaxLatency <= 0 {
		sc.MaxLatency = defaultMaxLatency
	}

	if sc.FailureRate < 0 {
		sc.FailureRate = 0
	} else if sc.FailureRate > 1 {
		sc.FailureRate = 1
	}
}

func newSoakConfig(v *viper.Viper) (SoakConfig, error) {
	var sc SoakConfig
	if err := v.UnmarshalKey(soakKey, &sc, viper.DecodeHook(parallelcfg.DecodeHook())); err != nil {
		return SoakConfig{}, err
	}

	sc.applyDefaults()
	return sc, nil
}

func provideConfig(arguments []string) fx.Option {
	return fx.Provide(
		func() (*viper.Viper, *parallelcfg.Options, error) {
			return parallelcfg.Load(applicationName, arguments)
		},
		newSoakConfig,
		func(o *parallelcfg.Options) (*zap.Logger, error) {
			logger, err := o.Log.NewLogger()
			if err != nil {
				return nil, err
			}

			return logger.With(zap.String("application", applicationName)), nil
		},
	)
}
