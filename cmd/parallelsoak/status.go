// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Snapshot is the health report served at /health.
type Snapshot struct {
	Runs       int       `json:"runs"`
	Failures   int       `json:"failures"`
	LastRunID  string    `json:"lastRunID,omitempty"`
	LastRun    time.Time `json:"lastRun,omitempty"`
	LastError  string    `json:"lastError,omitempty"`
	LastUnits  int       `json:"lastUnits"`
	PeakActive int       `json:"peakActive"`
}

// status accumulates the outcomes of soak runs.
type status struct {
	lock     sync.Mutex
	snapshot Snapshot
}

func newStatus() *status {
	return new(status)
}

func (st *status) record(runID string, units int, err error) {
	st.lock.Lock()
	defer st.lock.Unlock()

	st.snapshot.Runs++
	st.snapshot.LastRunID = runID
	st.snapshot.LastRun = time.Now()
	st.snapshot.LastUnits = units
	if err != nil {
		st.snapshot.Failures++
		st.snapshot.LastError = err.Error()
	}
}

func (st *status) sampleActive(active int) {
	st.lock.Lock()
	if active > st.snapshot.PeakActive {
		st.snapshot.PeakActive = active
	}

	st.lock.Unlock()
}

func (st *status) failures() (runs, failures int, last string) {
	st.lock.Lock()
	defer st.lock.Unlock()
	return st.snapshot.Runs, st.snapshot.Failures, st.snapshot.LastError
}

func (st *status) snapshotCopy() Snapshot {
	st.lock.Lock()
	defer st.lock.Unlock()
	return st.snapshot
}

// ServeHTTP writes the current Snapshot as JSON.
func (st *status) ServeHTTP(response http.ResponseWriter, _ *http.Request) {
	response.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(response).Encode(st.snapshotCopy()); err != nil {
		http.Error(response, err.Error(), http.StatusInternalServerError)
	}
}
