// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package workerpool runs units of work on a bounded number of goroutines.

A Pool admits at most Workers() tasks at a time.  Submit blocks until a slot frees up, the
submitting context is done, or the pool is shut down.  Each task receives a context that is
cancelled when either the submitting context or the pool is cancelled.  Cancellation is
advisory: a task that ignores its context runs to completion.

Shutdown is graceful and waits for in-flight tasks.  ShutdownNow cancels every in-flight
task's context and returns immediately.
*/
package workerpool
