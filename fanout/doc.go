// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package fanout runs independent units of work concurrently and joins their results in input order.

Every entry point returns a slice whose length equals the number of inputs, and whose element i
corresponds to input i regardless of completion order.  Each unit writes only its own slot, so no
locking is needed to assemble results.

Failures do not cut a fan-out short.  Every unit runs to completion, and then the failures are
reported together as *xerrors.TaskError values combined in index order.  When a maximum duration
is configured, units still running when it elapses are abandoned: their contexts are cancelled,
their slots hold zero values, and an *xerrors.AbandonedError is reported.

By default each call creates its own worker pool and shuts it down before returning.  WithPool
runs units on a caller-owned pool instead, which is left running.
*/
package fanout
