// Package sync implements the grocery list synchronization core: a
// coordinator that consolidates remote list data into per-cycle snapshots
// and classifies failures for the scheduling layer, including one-shot
// access-token recovery before escalating to re-authentication.
package sync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/grocerly/grocery-sync-server/internal/groceries"
	"github.com/grocerly/grocery-sync-server/internal/telemetry"
)

// ErrSetupNotComplete is returned by Refresh when Setup has not succeeded yet
var ErrSetupNotComplete = errors.New("coordinator setup has not completed")

// Coordinator fetches and consolidates grocery list data from the remote
// client. Refresh cycles are all-or-nothing: either every list of interest
// is fetched, or the cycle fails and the previous data stays current.
//
// A Coordinator is driven by a single scheduling loop; Refresh must never
// be called concurrently. Data and UserSettings are safe to call from the
// serving layer between cycles because a cycle replaces the Result pointer
// wholesale and never mutates a published snapshot.
type Coordinator struct {
	client  groceries.Client
	metrics *telemetry.SyncMetrics

	userSettings *groceries.UserSettings
	data         Result
	ready        bool
}

// Option is a function that configures the coordinator
type Option func(*Coordinator)

// WithSyncMetrics sets the sync metrics for the coordinator
func WithSyncMetrics(metrics *telemetry.SyncMetrics) Option {
	return func(c *Coordinator) {
		c.metrics = metrics
	}
}

// NewCoordinator creates a coordinator around the injected remote client
func NewCoordinator(client groceries.Client, opts ...Option) *Coordinator {
	c := &Coordinator{
		client: client,
		data:   Result{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Setup authenticates against the remote service and caches the account's
// user settings. It must complete successfully before the first Refresh.
//
// Failure mapping:
//   - transport error -> *SetupNotReadyError{Reason: request}
//   - parse error     -> *SetupNotReadyError{Reason: parse}
//   - auth error      -> *SetupAuthFailedError carrying the account identifier
func (c *Coordinator) Setup(ctx context.Context) error {
	if err := c.client.Login(ctx); err != nil {
		return c.setupError(err)
	}

	settings, err := c.client.GetAllUserSettings(ctx)
	if err != nil {
		return c.setupError(err)
	}

	c.userSettings = settings
	c.ready = true

	slog.Info("Sync coordinator setup complete", "account", c.client.AccountIdentifier())
	return nil
}

func (c *Coordinator) setupError(err error) error {
	if groceries.IsAuth(err) {
		return &SetupAuthFailedError{Account: c.client.AccountIdentifier(), Err: err}
	}
	return &SetupNotReadyError{Reason: failReason(err), Err: err}
}

// Refresh runs one synchronization cycle: enumerate the remote lists, fetch
// the content of every list of interest, and publish the consolidated
// Result. On an auth failure during enumeration it attempts a single silent
// token refresh; if that succeeds the previous Result is returned unchanged
// and the full refresh is deferred to the next scheduled cycle.
func (c *Coordinator) Refresh(ctx context.Context, interest InterestSet) (Result, error) {
	if !c.ready {
		return nil, ErrSetupNotComplete
	}

	lists, err := c.client.LoadLists(ctx)
	if err != nil {
		if groceries.IsAuth(err) {
			return c.recoverToken(ctx)
		}
		return nil, &RefreshFailedError{Reason: failReason(err), Err: err}
	}

	result := make(Result, len(lists.Lists))
	for _, lst := range lists.Lists {
		if !interest.Empty() && !interest.Contains(lst.ListUUID) {
			continue
		}

		items, err := c.client.GetList(ctx, lst.ListUUID)
		if err != nil {
			// All-or-nothing: discard everything fetched this cycle.
			return nil, &RefreshFailedError{Reason: failReason(err), Err: err}
		}

		result[lst.ListUUID] = ListSnapshot{List: lst, Items: *items}
	}

	c.data = result

	slog.Debug("Refresh cycle complete",
		"lists_total", len(lists.Lists),
		"lists_synced", len(result))
	return result, nil
}

// recoverToken handles an auth failure on list enumeration. One silent
// token refresh is attempted per cycle; a second auth rejection escalates
// to re-authentication.
func (c *Coordinator) recoverToken(ctx context.Context) (Result, error) {
	slog.Warn("Access token rejected, attempting token refresh",
		"account", c.client.AccountIdentifier())

	if err := c.client.RetrieveNewAccessToken(ctx); err != nil {
		c.metrics.RecordTokenRefresh(ctx, c.client.AccountIdentifier(), false)
		if groceries.IsAuth(err) {
			return nil, &ReauthRequiredError{Account: c.client.AccountIdentifier(), Err: err}
		}
		return nil, &RefreshFailedError{Reason: FailReasonTokenRefresh, Err: err}
	}
	c.metrics.RecordTokenRefresh(ctx, c.client.AccountIdentifier(), true)

	// Token refreshed. Return the previous data unchanged and let the next
	// scheduled cycle perform the full fetch; a single cycle performs at
	// most one remote round-trip escalation.
	slog.Info("Token refresh succeeded, serving previous snapshot until next cycle")
	return c.data, nil
}

// Data returns the latest successfully consolidated Result
func (c *Coordinator) Data() Result {
	return c.data
}

// UserSettings returns the settings cached during Setup, or nil before it
func (c *Coordinator) UserSettings() *groceries.UserSettings {
	return c.userSettings
}

// Ready reports whether Setup has completed successfully
func (c *Coordinator) Ready() bool {
	return c.ready
}

// Account returns the identifier of the account this coordinator syncs
func (c *Coordinator) Account() string {
	return c.client.AccountIdentifier()
}
