package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go Service

// Service provides cached access to the sync status of an account.
// Reads are served from memory; writes go through to persistence.
type Service interface {
	// Initialize loads the persisted status into the cache. A status left
	// at Pending by an interrupted run is demoted to Failed so the phase
	// never claims an attempt that is no longer running.
	Initialize(ctx context.Context) error

	// GetStatus returns the cached sync status
	GetStatus(ctx context.Context) (*SyncStatus, error)

	// SetPhase records a phase transition with an optional message and
	// failure reason, stamping the attempt time
	SetPhase(ctx context.Context, phase Phase, message, reason string) error

	// RecordSuccess records a completed sync cycle and resets the
	// attempt counter
	RecordSuccess(ctx context.Context, listCount int) error
}

type cachedService struct {
	persistence Persistence
	account     string
	clock       func() time.Time

	mu     sync.RWMutex
	status *SyncStatus
}

// NewService creates a status service for the given account backed by the
// given persistence
func NewService(persistence Persistence, account string) Service {
	return &cachedService{
		persistence: persistence,
		account:     account,
		clock:       time.Now,
	}
}

func (s *cachedService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status, err := s.persistence.LoadStatus(ctx, s.account)
	if err != nil {
		return fmt.Errorf("failed to load sync status: %w", err)
	}

	if status.Phase == PhasePending {
		// The previous run was interrupted mid-attempt
		slog.Warn("Found interrupted sync attempt, marking as failed", "account", s.account)
		status.Phase = PhaseFailed
		status.Message = "previous sync attempt was interrupted"
		if err := s.persistence.SaveStatus(ctx, s.account, status); err != nil {
			return fmt.Errorf("failed to persist recovered sync status: %w", err)
		}
	}

	s.status = status
	return nil
}

func (s *cachedService) GetStatus(_ context.Context) (*SyncStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.status == nil {
		return nil, fmt.Errorf("status service not initialized")
	}

	// Return a copy so callers cannot mutate the cache
	statusCopy := *s.status
	return &statusCopy, nil
}

func (s *cachedService) SetPhase(ctx context.Context, phase Phase, message, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == nil {
		return fmt.Errorf("status service not initialized")
	}

	now := s.clock().UTC()

	updated := *s.status
	updated.Phase = phase
	updated.Message = message
	updated.Reason = reason
	updated.LastAttempt = &now
	if phase == PhasePending {
		updated.AttemptCount++
	}

	if err := s.persistence.SaveStatus(ctx, s.account, &updated); err != nil {
		return fmt.Errorf("failed to persist sync status: %w", err)
	}

	s.status = &updated
	return nil
}

func (s *cachedService) RecordSuccess(ctx context.Context, listCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == nil {
		return fmt.Errorf("status service not initialized")
	}

	now := s.clock().UTC()

	updated := *s.status
	updated.Phase = PhaseReady
	updated.Message = ""
	updated.Reason = ""
	updated.AttemptCount = 0
	updated.LastSyncTime = &now
	updated.ListCount = listCount

	if err := s.persistence.SaveStatus(ctx, s.account, &updated); err != nil {
		return fmt.Errorf("failed to persist sync status: %w", err)
	}

	s.status = &updated
	return nil
}
