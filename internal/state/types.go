// Package state provides sync status tracking and persistence for the
// grocery sync service.
package state

import "time"

// Phase represents the lifecycle state of the sync loop for one account
type Phase string

const (
	// PhasePending means setup or a sync cycle is in progress and no
	// verdict has been recorded yet
	PhasePending Phase = "Pending"

	// PhaseReady means the last sync cycle completed successfully
	PhaseReady Phase = "Ready"

	// PhaseFailed means the last setup attempt or sync cycle failed;
	// previously synced data stays served and the loop keeps retrying
	PhaseFailed Phase = "Failed"

	// PhaseReauthRequired means the account credentials were rejected and
	// syncing is suspended until the user re-authenticates
	PhaseReauthRequired Phase = "ReauthRequired"
)

// SyncStatus represents the current state of list synchronization for an account
type SyncStatus struct {
	// Phase is the current lifecycle phase
	Phase Phase `json:"phase"`

	// Message provides additional information about the status
	Message string `json:"message,omitempty"`

	// Reason is the failure reason tag of the last failed cycle, if any
	Reason string `json:"reason,omitempty"`

	// LastAttempt is the timestamp of the last sync attempt
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`

	// AttemptCount is the number of attempts since the last success
	AttemptCount int `json:"attemptCount,omitempty"`

	// LastSyncTime is the timestamp of the last successful sync
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`

	// ListCount is the number of lists in the last successful snapshot
	ListCount int `json:"listCount,omitempty"`
}
