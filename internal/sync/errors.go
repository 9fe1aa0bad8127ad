package sync

import (
	"fmt"

	"github.com/grocerly/grocery-sync-server/internal/groceries"
)

// FailReason tags the cause of a failed setup or refresh cycle
type FailReason string

const (
	// FailReasonRequest means the remote service could not be reached
	FailReasonRequest FailReason = "request"

	// FailReasonParse means a response from the remote service could not be decoded
	FailReasonParse FailReason = "parse"

	// FailReasonTokenRefresh means the token-recovery request itself failed
	// for a non-auth reason
	FailReasonTokenRefresh FailReason = "token_refresh"
)

// SetupNotReadyError signals a recoverable setup failure; the host should
// retry setup later.
type SetupNotReadyError struct {
	Reason FailReason
	Err    error
}

func (e *SetupNotReadyError) Error() string {
	return fmt.Sprintf("setup not ready (%s): %v", e.Reason, e.Err)
}

func (e *SetupNotReadyError) Unwrap() error {
	return e.Err
}

// SetupAuthFailedError signals that the stored credentials were rejected
// during setup; the host must initiate re-authentication.
type SetupAuthFailedError struct {
	Account string
	Err     error
}

func (e *SetupAuthFailedError) Error() string {
	return fmt.Sprintf("authentication failed for account %s: %v", e.Account, e.Err)
}

func (e *SetupAuthFailedError) Unwrap() error {
	return e.Err
}

// RefreshFailedError signals a failed refresh cycle; previously synced data
// stays valid and the host retries on its own schedule.
type RefreshFailedError struct {
	Reason FailReason
	Err    error
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("refresh failed (%s): %v", e.Reason, e.Err)
}

func (e *RefreshFailedError) Unwrap() error {
	return e.Err
}

// ReauthRequiredError signals that token recovery was rejected; refreshing
// cannot resume until the user re-authenticates.
type ReauthRequiredError struct {
	Account string
	Err     error
}

func (e *ReauthRequiredError) Error() string {
	return fmt.Sprintf("re-authentication required for account %s: %v", e.Account, e.Err)
}

func (e *ReauthRequiredError) Unwrap() error {
	return e.Err
}

// failReason maps a client error onto the cycle failure taxonomy.
// Auth errors are handled separately by the callers.
func failReason(err error) FailReason {
	if groceries.IsParse(err) {
		return FailReasonParse
	}
	return FailReasonRequest
}
