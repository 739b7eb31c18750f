// internal/domain/entity/sync_run.go
package entity

import (
	"time"
)

// SyncPhase is the scheduler's position inside a run.
type SyncPhase string

const (
	PhaseIdle         SyncPhase = "idle"
	PhaseFetching     SyncPhase = "fetching"
	PhaseTransforming SyncPhase = "transforming"
	PhasePersisting   SyncPhase = "persisting"
	PhaseDetecting    SyncPhase = "detecting"
	PhaseNotifying    SyncPhase = "notifying"
)

// SyncOutcome is the terminal state of one run.
type SyncOutcome string

const (
	OutcomeSucceeded SyncOutcome = "succeeded"
	OutcomeFailed    SyncOutcome = "failed"
)

// SyncRunResult summarizes one sync run. It is kept only in the
// scheduler's in-memory history, never persisted.
type SyncRunResult struct {
	RunID        string      `json:"run_id"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
	Outcome      SyncOutcome `json:"outcome"`
	Fetched      int         `json:"fetched"`
	New          int         `json:"new"`
	Failed       int         `json:"failed"`
	Notified     int         `json:"notified"`
	NotifyFailed int         `json:"notify_failed"`
	Error        string      `json:"error,omitempty"`
}
