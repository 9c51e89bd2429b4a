// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/xmidt-org/parallel/measures"
	"github.com/xmidt-org/parallel/parallelcfg"
	"github.com/xmidt-org/parallel/xmetrics"
	"go.uber.org/fx"
)

// provideMetrics provides the registry and the toolkit's measures as uber/fx components.
func provideMetrics() fx.Option {
	return fx.Provide(
		func(o *parallelcfg.Options) (xmetrics.Registry, error) {
			return xmetrics.NewRegistry(&o.Metrics, measures.Metrics)
		},
		func(r xmetrics.Registry) *measures.Measures {
			return measures.New(r)
		},
	)
}
