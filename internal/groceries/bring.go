package groceries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/grocerly/grocery-sync-server/internal/httpclient"
)

// BringClient talks to a Bring-style grocery list REST API
type BringClient struct {
	http     httpclient.Client
	endpoint string
	email    string
	password string

	mu           sync.Mutex
	userUUID     string
	accessToken  string
	refreshToken string
	tokenExpiry  time.Time
}

// authResponse is the payload of the login and token refresh endpoints
type authResponse struct {
	UUID         string `json:"uuid"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// NewBringClient creates a client for the given API endpoint and credentials.
// The endpoint is the base URL without a trailing slash.
func NewBringClient(http httpclient.Client, endpoint, email, password string) *BringClient {
	if len(endpoint) > 0 && endpoint[len(endpoint)-1] == '/' {
		endpoint = endpoint[:len(endpoint)-1]
	}
	return &BringClient{
		http:     http,
		endpoint: endpoint,
		email:    email,
		password: password,
	}
}

// AccountIdentifier returns the account email for error reporting
func (c *BringClient) AccountIdentifier() string {
	return c.email
}

// Login authenticates with email and password and stores the session tokens
func (c *BringClient) Login(ctx context.Context) error {
	const op = "login"

	form := url.Values{}
	form.Set("email", c.email)
	form.Set("password", c.password)

	body, err := c.http.PostForm(ctx, c.endpoint+"/v2/bringauth", form.Encode(), c.requestHeaders())
	if err != nil {
		return classify(op, err)
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return newAPIError(ErrKindParse, op, err)
	}
	if auth.AccessToken == "" || auth.UUID == "" {
		return newAPIError(ErrKindParse, op, fmt.Errorf("auth response missing access token or user uuid"))
	}

	c.storeSession(&auth)
	return nil
}

// RetrieveNewAccessToken exchanges the refresh token for a new access token
func (c *BringClient) RetrieveNewAccessToken(ctx context.Context) error {
	const op = "token refresh"

	c.mu.Lock()
	refreshToken := c.refreshToken
	c.mu.Unlock()

	if refreshToken == "" {
		return newAPIError(ErrKindAuth, op, fmt.Errorf("no refresh token available, login required"))
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	body, err := c.http.PostForm(ctx, c.endpoint+"/v2/bringauth/token", form.Encode(), c.requestHeaders())
	if err != nil {
		return classify(op, err)
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return newAPIError(ErrKindParse, op, err)
	}
	if auth.AccessToken == "" {
		return newAPIError(ErrKindParse, op, fmt.Errorf("token response missing access token"))
	}

	c.storeSession(&auth)
	return nil
}

// LoadLists enumerates all grocery lists of the account
func (c *BringClient) LoadLists(ctx context.Context) (*ListsResponse, error) {
	const op = "load lists"

	c.mu.Lock()
	userUUID := c.userUUID
	c.mu.Unlock()
	if userUUID == "" {
		return nil, newAPIError(ErrKindAuth, op, fmt.Errorf("not logged in"))
	}

	body, err := c.http.Get(ctx, c.endpoint+"/bringusers/"+userUUID+"/lists", c.authHeaders())
	if err != nil {
		return nil, classify(op, err)
	}

	var lists ListsResponse
	if err := json.Unmarshal(body, &lists); err != nil {
		return nil, newAPIError(ErrKindParse, op, err)
	}

	return &lists, nil
}

// GetList fetches the items of a single list
func (c *BringClient) GetList(ctx context.Context, listUUID string) (*ItemsResponse, error) {
	const op = "get list"

	body, err := c.http.Get(ctx, c.endpoint+"/v2/bringlists/"+listUUID, c.authHeaders())
	if err != nil {
		return nil, classify(op, err)
	}

	var items ItemsResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, newAPIError(ErrKindParse, op, err)
	}

	return &items, nil
}

// GetAllUserSettings fetches the account-wide user settings
func (c *BringClient) GetAllUserSettings(ctx context.Context) (*UserSettings, error) {
	const op = "get user settings"

	c.mu.Lock()
	userUUID := c.userUUID
	c.mu.Unlock()
	if userUUID == "" {
		return nil, newAPIError(ErrKindAuth, op, fmt.Errorf("not logged in"))
	}

	body, err := c.http.Get(ctx, c.endpoint+"/bringusersettings/"+userUUID, c.authHeaders())
	if err != nil {
		return nil, classify(op, err)
	}

	var settings UserSettings
	if err := json.Unmarshal(body, &settings); err != nil {
		return nil, newAPIError(ErrKindParse, op, err)
	}

	return &settings, nil
}

// storeSession records tokens from an auth response and derives the access
// token expiry from its JWT exp claim. The expiry is informational only;
// the server remains the authority on token validity.
func (c *BringClient) storeSession(auth *authResponse) {
	expiry := time.Now().Add(time.Duration(auth.ExpiresIn) * time.Second)
	if claims := parseTokenExpiry(auth.AccessToken); !claims.IsZero() {
		expiry = claims
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if auth.UUID != "" {
		c.userUUID = auth.UUID
	}
	c.accessToken = auth.AccessToken
	if auth.RefreshToken != "" {
		c.refreshToken = auth.RefreshToken
	}
	c.tokenExpiry = expiry

	slog.Debug("Stored API session",
		"account", c.email,
		"token_expiry", expiry.Format(time.RFC3339))
}

// parseTokenExpiry extracts the exp claim from the access token without
// verifying the signature; the token was just issued over an authenticated
// channel and is only inspected for scheduling hints.
func parseTokenExpiry(accessToken string) time.Time {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// requestHeaders returns the headers common to unauthenticated requests
func (c *BringClient) requestHeaders() map[string]string {
	return map[string]string{
		"X-Request-ID": uuid.NewString(),
	}
}

// authHeaders returns the headers for authenticated requests
func (c *BringClient) authHeaders() map[string]string {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	return map[string]string{
		"X-Request-ID":  uuid.NewString(),
		"Authorization": "Bearer " + token,
	}
}

// classify maps transport-layer failures onto the client error taxonomy.
// 401 and 403 indicate rejected credentials or tokens; every other HTTP
// or connection failure is a transport error.
func classify(op string, err error) *APIError {
	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newAPIError(ErrKindAuth, op, err)
		}
	}
	return newAPIError(ErrKindTransport, op, err)
}
