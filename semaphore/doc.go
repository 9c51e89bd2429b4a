// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a closeable, channel-based counting semaphore that honors context semantics.

The worker pool uses a semaphore to bound how many units of work run at once.  Closing the semaphore
releases every goroutine blocked in Acquire with ErrClosed, which is how a pool rejects work once it
begins shutting down.
*/
package semaphore
