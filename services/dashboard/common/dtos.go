package common

import "time"

// RawPayload holds the upstream metrics payload exactly as delivered: a table of numeric columns per
// reporting period plus the sibling targets table
type RawPayload struct {
	Periods map[string]map[string]float64
	Targets map[string]float64
}

// Snapshot is one normalized metric reading: the current value and the target it is measured against.
// Target is always resolved, it never carries an "absent" state
type Snapshot struct {
	Value  float64 `json:"value"`
	Target float64 `json:"target"`
}

// PipelineStatus is the refresh state machine as seen by the display layer
type PipelineStatus struct {
	LastAttempt   time.Time
	LastSuccess   time.Time // zero until the first successful refresh
	LastErrorKind string    // empty after a successful refresh
	LastError     string
	Refreshing    bool
	HasSnapshot   bool
}
