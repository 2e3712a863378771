package model

import "time"

// UpdatePhase represents where the update orchestrator is in its cycle
type UpdatePhase string

const (
	// PhaseIdle means no timer is armed and no update is running
	PhaseIdle UpdatePhase = "Idle"

	// PhaseScheduled means the next regular update timer is armed
	PhaseScheduled UpdatePhase = "Scheduled"

	// PhaseUpdating means a fetch cycle is in flight
	PhaseUpdating UpdatePhase = "Updating"

	// PhaseRetryPending means a failed fetch will be retried after a backoff
	PhaseRetryPending UpdatePhase = "RetryPending"
)

// String returns the string representation of UpdatePhase
func (p UpdatePhase) String() string {
	return string(p)
}

// IsBusy returns true while a fetch cycle is running
func (p UpdatePhase) IsBusy() bool {
	return p == PhaseUpdating
}

// IsWaiting returns true if a timer is armed (regular or retry)
func (p UpdatePhase) IsWaiting() bool {
	return p == PhaseScheduled || p == PhaseRetryPending
}

// UpdateState is a snapshot of the orchestrator's transient state
type UpdateState struct {
	Phase              UpdatePhase
	IsUpdating         bool
	RetryCount         int
	NextUpdateTime     *time.Time // nil when no timer is armed
	IsNetworkAvailable bool
	IsSuspended        bool // timer suspended for system sleep
}
