// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package parallelcfg loads the tunables of this module's primitives from Viper, and turns them into
pools, policies, and options.  Durations may be given as strings ("250ms"), or as integer nanoseconds.

A typical configuration file:

	workers: 8
	maxDuration: 30s
	retry:
	  attempts: 5
	  delay: 100ms
	  multiplier: 2
	  maxDelay: 5s
	timeout: 2s
	debounce: 500ms
	throttle: 1s
	period: 10s
	log:
	  level: info
	  file: /var/log/parallel/parallel.log
	  maxsize: 100
	metrics:
	  namespace: xmidt
	  subsystem: parallel
*/
package parallelcfg
