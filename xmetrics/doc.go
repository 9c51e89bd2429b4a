// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xmetrics provides a Prometheus registry that doubles as a go-kit metrics.Provider.

Metrics are described up front with Metric values, usually supplied by a package-level Metrics()
function (see the measures package), and are registered when the Registry is created.  Components
then obtain go-kit Counters, Gauges, and Histograms by name.
*/
package xmetrics
