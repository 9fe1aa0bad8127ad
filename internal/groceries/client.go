// Package groceries provides the client for the remote grocery list API.
// It owns authentication, token refresh, and the typed error classification
// (transport, parse, auth) that the sync layer builds its recovery on.
package groceries

import "context"

// Client is the interface to the remote grocery list service
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/grocerly/grocery-sync-server/internal/groceries Client
type Client interface {
	// Login authenticates with the configured credentials and stores the
	// session tokens on the client
	Login(ctx context.Context) error

	// GetAllUserSettings fetches the account-wide user settings
	GetAllUserSettings(ctx context.Context) (*UserSettings, error)

	// LoadLists enumerates all grocery lists of the account
	LoadLists(ctx context.Context) (*ListsResponse, error)

	// GetList fetches the items of a single list
	GetList(ctx context.Context, listUUID string) (*ItemsResponse, error)

	// RetrieveNewAccessToken exchanges the refresh token for a new access token
	RetrieveNewAccessToken(ctx context.Context) error

	// AccountIdentifier returns the account email for error reporting
	AccountIdentifier() string
}
