// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package measurestest provides Measures backed by a real registry, for asserting metrics in tests.
package measurestest

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/xmetrics"
)

// New creates Measures from a fresh registry that has only this module's metrics.
func New(t testing.TB) (*measures.Measures, xmetrics.Registry) {
	r, err := xmetrics.NewRegistry(
		&xmetrics.Options{
			DisableGoCollector:      true,
			DisableProcessCollector: true,
		},
		measures.Metrics,
	)

	require.NoError(t, err)
	return measures.New(r), r
}

// Value gathers from r and sums the named metric across every sample whose labels include the
// given name/value pairs.  Counters and gauges contribute their values, histograms their sample counts.
func Value(t testing.TB, r xmetrics.Registry, name string, labelValues ...string) float64 {
	families, err := r.Gather()
	require.NoError(t, err)

	fqName := xmetrics.DefaultNamespace + "_" + xmetrics.DefaultSubsystem + "_" + name

	var total float64
	for _, family := range families {
		if family.GetName() != fqName {
			continue
		}

		for _, m := range family.GetMetric() {
			if !matches(m, labelValues) {
				continue
			}

			switch {
			case m.Counter != nil:
				total += m.Counter.GetValue()
			case m.Gauge != nil:
				total += m.Gauge.GetValue()
			case m.Histogram != nil:
				total += float64(m.Histogram.GetSampleCount())
			}
		}
	}

	return total
}

func matches(m *dto.Metric, labelValues []string) bool {
	for i := 0; i+1 < len(labelValues); i += 2 {
		found := false
		for _, lp := range m.GetLabel() {
			if lp.GetName() == labelValues[i] && lp.GetValue() == labelValues[i+1] {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
