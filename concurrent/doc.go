// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package concurrent provides the small blocking helpers the rest of this module is built on:
join barriers with deadlines, an interruptible delay, and timing of operations.
*/
package concurrent
