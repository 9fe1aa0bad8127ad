// Package scheduler drives the background synchronization loop: periodic
// refresh cycles, on-demand refreshes, list subscriptions, and the
// re-authentication lifecycle.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/grocerly/grocery-sync-server/internal/groceries"
	"github.com/grocerly/grocery-sync-server/internal/state"
	pkgsync "github.com/grocerly/grocery-sync-server/internal/sync"
	"github.com/grocerly/grocery-sync-server/internal/telemetry"
)

const (
	// DefaultSyncInterval is the default delay between refresh cycles
	DefaultSyncInterval = 90 * time.Second

	// defaultMaxSetupTries bounds the exponential-backoff retry of setup
	// before the scheduler gives up on transient failures
	defaultMaxSetupTries = 5
)

// Scheduler manages background list synchronization for one account
type Scheduler interface {
	// Start begins the background sync loop.
	// Blocks until the context is cancelled or setup fails unrecoverably.
	Start(ctx context.Context) error

	// Stop gracefully stops the scheduler
	Stop() error

	// RequestRefresh triggers a refresh cycle outside the regular interval.
	// Non-blocking; a cycle already pending coalesces with the request.
	RequestRefresh()

	// Reauthenticate clears a re-authentication suspension and retries the
	// full login. Non-blocking.
	Reauthenticate()

	// Subscribe registers interest in a list and returns an unsubscribe
	// function. While any subscription exists, refresh cycles fetch only
	// subscribed lists; with none, every list is fetched.
	Subscribe(listUUID string) func()

	// Snapshot returns the latest successfully consolidated result
	Snapshot() pkgsync.Result

	// UserSettings returns the account settings cached during setup
	UserSettings() *groceries.UserSettings
}

// defaultScheduler is the default implementation of Scheduler
type defaultScheduler struct {
	coordinator *pkgsync.Coordinator
	statusSvc   state.Service
	interval    time.Duration

	// Lifecycle management
	cancelFunc context.CancelFunc
	done       chan struct{}

	refreshCh chan struct{}
	reauthCh  chan struct{}

	// Metrics
	syncMetrics *telemetry.SyncMetrics
	listMetrics *telemetry.ListMetrics

	mu            stdsync.RWMutex
	data          pkgsync.Result
	userSettings  *groceries.UserSettings
	subscriptions map[string]int
	suspended     bool
}

// Option is a function that configures the scheduler
type Option func(*defaultScheduler)

// WithInterval sets the delay between refresh cycles
func WithInterval(interval time.Duration) Option {
	return func(s *defaultScheduler) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithSyncMetrics sets the sync metrics for the scheduler
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(s *defaultScheduler) {
		s.syncMetrics = metrics
	}
}

// WithListMetrics sets the list metrics for the scheduler
func WithListMetrics(metrics *telemetry.ListMetrics) Option {
	return func(s *defaultScheduler) {
		s.listMetrics = metrics
	}
}

// New creates a new scheduler with injected dependencies
func New(coordinator *pkgsync.Coordinator, statusSvc state.Service, opts ...Option) Scheduler {
	s := &defaultScheduler{
		coordinator:   coordinator,
		statusSvc:     statusSvc,
		interval:      DefaultSyncInterval,
		done:          make(chan struct{}),
		refreshCh:     make(chan struct{}, 1),
		reauthCh:      make(chan struct{}, 1),
		data:          pkgsync.Result{},
		subscriptions: make(map[string]int),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start begins the background sync loop
func (s *defaultScheduler) Start(ctx context.Context) error {
	slog.Info("Starting sync scheduler",
		"account", s.coordinator.Account(),
		"interval", s.interval)

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	defer func() {
		close(s.done)
		slog.Info("Sync scheduler shutting down")
	}()

	if err := s.statusSvc.Initialize(runCtx); err != nil {
		return fmt.Errorf("failed to initialize sync status: %w", err)
	}

	if err := s.setUp(runCtx); err != nil {
		var authErr *pkgsync.SetupAuthFailedError
		if !errors.As(err, &authErr) {
			return fmt.Errorf("scheduler setup failed: %w", err)
		}
		// Credentials rejected. Keep running so the account can be
		// re-authenticated without restarting the process.
		s.suspend(runCtx, authErr.Account, err)
	} else {
		s.runCycle(runCtx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCycle(runCtx)
		case <-s.refreshCh:
			s.runCycle(runCtx)
		case <-s.reauthCh:
			s.handleReauthentication(runCtx)
		case <-runCtx.Done():
			slog.Info("Sync scheduler stopping")
			return nil
		}
	}
}

// Stop gracefully stops the scheduler
func (s *defaultScheduler) Stop() error {
	if s.cancelFunc != nil {
		slog.Info("Stopping sync scheduler")
		s.cancelFunc()
		<-s.done
	}
	return nil
}

// RequestRefresh triggers an immediate refresh cycle
func (s *defaultScheduler) RequestRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
		// A refresh is already pending
	}
}

// Reauthenticate triggers a full re-login after a credential rejection
func (s *defaultScheduler) Reauthenticate() {
	select {
	case s.reauthCh <- struct{}{}:
	default:
	}
}

// Subscribe registers interest in a list
func (s *defaultScheduler) Subscribe(listUUID string) func() {
	s.mu.Lock()
	s.subscriptions[listUUID]++
	s.mu.Unlock()

	slog.Debug("List subscription added", "list_uuid", listUUID)

	// Pick up the newly subscribed list without waiting for the interval
	s.RequestRefresh()

	var once stdsync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.subscriptions[listUUID] <= 1 {
				delete(s.subscriptions, listUUID)
			} else {
				s.subscriptions[listUUID]--
			}
		})
	}
}

// Snapshot returns the latest successfully consolidated result
func (s *defaultScheduler) Snapshot() pkgsync.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// UserSettings returns the account settings cached during setup
func (s *defaultScheduler) UserSettings() *groceries.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userSettings
}

// setUp runs coordinator setup with exponential backoff on transient
// failures. Auth rejections are permanent and abort the retry loop.
func (s *defaultScheduler) setUp(ctx context.Context) error {
	if err := s.statusSvc.SetPhase(ctx, state.PhasePending, "authenticating", ""); err != nil {
		slog.Error("Error updating sync status", "error", err)
	}

	operation := func() (struct{}, error) {
		if err := s.coordinator.Setup(ctx); err != nil {
			var authErr *pkgsync.SetupAuthFailedError
			if errors.As(err, &authErr) {
				return struct{}{}, backoff.Permanent(err)
			}
			slog.Warn("Setup attempt failed, retrying", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(defaultMaxSetupTries),
	)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.userSettings = s.coordinator.UserSettings()
	s.mu.Unlock()
	return nil
}

// runCycle executes one refresh cycle and records its outcome
func (s *defaultScheduler) runCycle(ctx context.Context) {
	s.mu.RLock()
	suspended := s.suspended
	s.mu.RUnlock()
	if suspended {
		slog.Debug("Skipping refresh cycle, re-authentication required",
			"account", s.coordinator.Account())
		return
	}

	account := s.coordinator.Account()
	startTime := time.Now()

	if err := s.statusSvc.SetPhase(ctx, state.PhasePending, "", ""); err != nil {
		slog.Error("Error updating sync status", "account", account, "error", err)
	}

	result, refreshErr := s.coordinator.Refresh(ctx, s.interestSnapshot())
	refreshDuration := time.Since(startTime)

	if refreshErr != nil {
		s.recordFailure(ctx, account, refreshErr, refreshDuration)
		return
	}

	s.mu.Lock()
	s.data = result
	s.mu.Unlock()

	if err := s.statusSvc.RecordSuccess(ctx, len(result)); err != nil {
		slog.Error("Error updating sync status", "account", account, "error", err)
	}

	s.syncMetrics.RecordRefreshDuration(ctx, account, refreshDuration, true)
	s.listMetrics.RecordSnapshot(ctx, account, int64(len(result)), int64(countOpenItems(result)))

	slog.Info("Refresh cycle completed",
		"account", account,
		"list_count", len(result),
		"duration", refreshDuration)
}

// recordFailure maps a refresh error to a status phase and metrics
func (s *defaultScheduler) recordFailure(ctx context.Context, account string, refreshErr error, duration time.Duration) {
	s.syncMetrics.RecordRefreshDuration(ctx, account, duration, false)

	var reauthErr *pkgsync.ReauthRequiredError
	if errors.As(refreshErr, &reauthErr) {
		s.suspend(ctx, reauthErr.Account, refreshErr)
		return
	}

	reason := ""
	var failedErr *pkgsync.RefreshFailedError
	if errors.As(refreshErr, &failedErr) {
		reason = string(failedErr.Reason)
	}

	slog.Error("Refresh cycle failed",
		"account", account,
		"reason", reason,
		"error", refreshErr)

	s.syncMetrics.RecordRefreshFailure(ctx, account, reason)

	if err := s.statusSvc.SetPhase(ctx, state.PhaseFailed, refreshErr.Error(), reason); err != nil {
		slog.Error("Error updating sync status", "account", account, "error", err)
	}
}

// suspend halts refresh cycles until Reauthenticate is called
func (s *defaultScheduler) suspend(ctx context.Context, account string, cause error) {
	s.mu.Lock()
	s.suspended = true
	s.mu.Unlock()

	slog.Error("Account requires re-authentication, suspending sync",
		"account", account,
		"error", cause)

	if err := s.statusSvc.SetPhase(ctx, state.PhaseReauthRequired, cause.Error(), "account"); err != nil {
		slog.Error("Error updating sync status", "account", account, "error", err)
	}
}

// handleReauthentication retries the full login after a suspension
func (s *defaultScheduler) handleReauthentication(ctx context.Context) {
	s.mu.Lock()
	s.suspended = false
	s.mu.Unlock()

	slog.Info("Re-authentication requested", "account", s.coordinator.Account())

	if err := s.setUp(ctx); err != nil {
		var authErr *pkgsync.SetupAuthFailedError
		if errors.As(err, &authErr) {
			s.suspend(ctx, authErr.Account, err)
			return
		}
		slog.Error("Re-authentication setup failed", "error", err)
		if err := s.statusSvc.SetPhase(ctx, state.PhaseFailed, err.Error(), ""); err != nil {
			slog.Error("Error updating sync status", "error", err)
		}
		return
	}

	s.runCycle(ctx)
}

// interestSnapshot builds the set of lists current subscribers require
func (s *defaultScheduler) interestSnapshot() pkgsync.InterestSet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	interest := make(pkgsync.InterestSet, len(s.subscriptions))
	for listUUID := range s.subscriptions {
		interest[listUUID] = struct{}{}
	}
	return interest
}

// countOpenItems totals the open purchase items across a snapshot
func countOpenItems(result pkgsync.Result) int {
	var total int
	for _, snapshot := range result {
		total += len(snapshot.Items.Purchase)
	}
	return total
}
