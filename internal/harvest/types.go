package harvest

import (
	"time"
)

// FetchTarget is one unit of work and its observed outcome. It is created
// when a worker starts a host and discarded when the worker finishes; only
// its effect (a file on disk) survives the run.
type FetchTarget struct {
	Hostname         string
	RequestURI       string
	EffectiveURI     string
	ResponseCode     int
	ResponseHeaders  map[string]string
	Bytes            int64
	FileModifiedTime time.Time
	RequestTimestamp time.Time
	Body             []byte
}

// Outcome is the terminal state of a per-host fetch.
type Outcome string

// Terminal worker outcomes.
const (
	OutcomeSaved        Outcome = "saved"
	OutcomeSkippedFresh Outcome = "skipped_fresh"
	OutcomeAborted      Outcome = "aborted"
)

// HostResult summarizes what happened to a single host.
type HostResult struct {
	Hostname string
	Outcome  Outcome
	Bytes    int64
	Reason   string
}

// RunResult is reported to the caller once a run drains.
type RunResult struct {
	Elapsed    time.Duration
	Dispatched int
	Saved      int
	Skipped    int
	Aborted    int
	Rejected   int
}

// Attempt is the immutable record of one transport attempt. Headers maps
// canonical header names to the last value seen for that name.
type Attempt struct {
	RequestURI   string
	EffectiveURI string
	StatusCode   int
	Headers      map[string]string
	Body         []byte
	Bytes        int64
	LastModified time.Time
	RequestedAt  time.Time
}
