// Package service provides the business logic for the grocery sync API
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	stdsync "sync"

	"github.com/grocerly/grocery-sync-server/internal/state"
	pkgsync "github.com/grocerly/grocery-sync-server/internal/sync"
	"github.com/grocerly/grocery-sync-server/internal/sync/scheduler"
)

var (
	// ErrListNotFound is returned when a list is not in the current snapshot
	ErrListNotFound = errors.New("list not found")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go GrocerService

// ListSummary is the metadata of one list in the current snapshot
type ListSummary struct {
	ListUUID  string `json:"listUuid"`
	Name      string `json:"name"`
	Theme     string `json:"theme,omitempty"`
	ItemCount int    `json:"itemCount"`
}

// GrocerService defines the interface for grocery sync operations
type GrocerService interface {
	// CheckReadiness checks if the service has completed a successful sync
	CheckReadiness(ctx context.Context) error

	// ListLists returns the metadata of all lists in the current snapshot
	ListLists(ctx context.Context) ([]ListSummary, error)

	// GetListItems returns the snapshot of a single list
	GetListItems(ctx context.Context, listUUID string) (*pkgsync.ListSnapshot, error)

	// GetSyncStatus returns the current sync status
	GetSyncStatus(ctx context.Context) (*state.SyncStatus, error)

	// TriggerRefresh requests an on-demand refresh cycle
	TriggerRefresh(ctx context.Context) error

	// Subscribe adds a list to the interest set. Idempotent.
	Subscribe(ctx context.Context, listUUID string) error

	// Unsubscribe removes a list from the interest set. Idempotent.
	Unsubscribe(ctx context.Context, listUUID string) error

	// Reauthenticate clears a re-authentication suspension and retries login
	Reauthenticate(ctx context.Context) error
}

// grocerService implements GrocerService over the sync scheduler
type grocerService struct {
	scheduler scheduler.Scheduler
	statusSvc state.Service

	mu            stdsync.Mutex
	subscriptions map[string]func()
}

// NewGrocerService creates a new service over the given scheduler and status service
func NewGrocerService(sched scheduler.Scheduler, statusSvc state.Service) GrocerService {
	return &grocerService{
		scheduler:     sched,
		statusSvc:     statusSvc,
		subscriptions: make(map[string]func()),
	}
}

func (s *grocerService) CheckReadiness(ctx context.Context) error {
	status, err := s.statusSvc.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sync status: %w", err)
	}

	if status.LastSyncTime == nil {
		return fmt.Errorf("no successful sync completed yet (phase %q)", status.Phase)
	}

	return nil
}

func (s *grocerService) ListLists(_ context.Context) ([]ListSummary, error) {
	snapshot := s.scheduler.Snapshot()

	summaries := make([]ListSummary, 0, len(snapshot))
	for _, entry := range snapshot {
		summaries = append(summaries, ListSummary{
			ListUUID:  entry.List.ListUUID,
			Name:      entry.List.Name,
			Theme:     entry.List.Theme,
			ItemCount: len(entry.Items.Purchase),
		})
	}

	// Map iteration order is random; keep the response stable
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}

func (s *grocerService) GetListItems(_ context.Context, listUUID string) (*pkgsync.ListSnapshot, error) {
	snapshot := s.scheduler.Snapshot()

	entry, ok := snapshot[listUUID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListNotFound, listUUID)
	}

	return &entry, nil
}

func (s *grocerService) GetSyncStatus(ctx context.Context) (*state.SyncStatus, error) {
	return s.statusSvc.GetStatus(ctx)
}

func (s *grocerService) TriggerRefresh(_ context.Context) error {
	s.scheduler.RequestRefresh()
	return nil
}

func (s *grocerService) Subscribe(_ context.Context, listUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subscriptions[listUUID]; ok {
		return nil
	}

	s.subscriptions[listUUID] = s.scheduler.Subscribe(listUUID)
	return nil
}

func (s *grocerService) Unsubscribe(_ context.Context, listUUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unsubscribe, ok := s.subscriptions[listUUID]
	if !ok {
		return nil
	}

	unsubscribe()
	delete(s.subscriptions, listUUID)
	return nil
}

func (s *grocerService) Reauthenticate(_ context.Context) error {
	s.scheduler.Reauthenticate()
	return nil
}
