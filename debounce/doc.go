// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package debounce collapses bursts of calls into a single call made once the burst goes quiet.

A Debouncer holds at most one pending function.  Each Submit replaces the pending function and
restarts the quiet period, so the function that eventually runs is always the last one submitted,
at least one quiet period after that submission.  A pending function that has been replaced or
cancelled never runs, even if its timer had already fired.
*/
package debounce
