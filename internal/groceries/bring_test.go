package groceries_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerly/grocery-sync-server/internal/groceries"
	"github.com/grocerly/grocery-sync-server/internal/httpclient"
)

const (
	testEmail    = "user@example.com"
	testPassword = "hunter2"
	testUserUUID = "a3f9c2d1-user"
)

// signedTestToken returns a JWT whose exp claim is one hour from now
func signedTestToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUserUUID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newAPIServer fakes the remote grocery API: login, token refresh, list
// enumeration, list content, and user settings endpoints.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v2/bringauth", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("email") != testEmail || r.Form.Get("password") != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"uuid": "` + testUserUUID + `",
			"access_token": "` + signedTestToken(t) + `",
			"refresh_token": "refresh-abc",
			"token_type": "Bearer",
			"expires_in": 3600
		}`))
	})

	mux.HandleFunc("POST /v2/bringauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("refresh_token") != "refresh-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"access_token": "` + signedTestToken(t) + `", "expires_in": 3600}`))
	})

	mux.HandleFunc("GET /bringusers/"+testUserUUID+"/lists", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"lists": [
			{"listUuid": "list-a", "name": "Groceries"},
			{"listUuid": "list-b", "name": "Hardware store", "theme": "ch.publisheria.bring.theme.home"}
		]}`))
	})

	mux.HandleFunc("GET /v2/bringlists/list-a", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"uuid": "list-a",
			"status": "SHARED",
			"purchase": [{"name": "Milk"}, {"name": "Eggs", "specification": "free range"}],
			"recently": [{"name": "Bread"}]
		}`))
	})

	mux.HandleFunc("GET /bringusersettings/"+testUserUUID, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"usersettings": [{"key": "autoPush", "value": "ON"}],
			"userlistsettings": [{"listUuid": "list-a", "usersettings": [{"key": "listSectionOrder", "value": "[]"}]}]
		}`))
	})

	server := httptest.NewServer(mux)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func newTestClient(t *testing.T, endpoint string) *groceries.BringClient {
	t.Helper()
	return groceries.NewBringClient(httpclient.NewDefaultClient(0), endpoint, testEmail, testPassword)
}

func TestBringClient_LoginAndLoadLists(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	require.NoError(t, client.Login(ctx))

	lists, err := client.LoadLists(ctx)
	require.NoError(t, err)
	require.Len(t, lists.Lists, 2)
	assert.Equal(t, "list-a", lists.Lists[0].ListUUID)
	assert.Equal(t, "Groceries", lists.Lists[0].Name)
	assert.Equal(t, "list-b", lists.Lists[1].ListUUID)
}

func TestBringClient_LoginRejected(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := groceries.NewBringClient(httpclient.NewDefaultClient(0), server.URL, testEmail, "wrong")

	err := client.Login(context.Background())

	require.Error(t, err)
	assert.True(t, groceries.IsAuth(err), "rejected credentials should classify as auth error")
}

func TestBringClient_LoginTransportError(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	url := server.URL
	server.Close()

	client := newTestClient(t, url)

	err := client.Login(context.Background())

	require.Error(t, err)
	assert.True(t, groceries.IsTransport(err), "connection failure should classify as transport error")
}

func TestBringClient_ParseError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Login(context.Background())

	require.Error(t, err)
	assert.True(t, groceries.IsParse(err), "malformed body should classify as parse error")
}

func TestBringClient_GetList(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	items, err := client.GetList(ctx, "list-a")

	require.NoError(t, err)
	assert.Equal(t, "list-a", items.UUID)
	require.Len(t, items.Purchase, 2)
	assert.Equal(t, "Milk", items.Purchase[0].Name)
	assert.Equal(t, "free range", items.Purchase[1].Specification)
	assert.Len(t, items.Recently, 1)
}

func TestBringClient_GetAllUserSettings(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	settings, err := client.GetAllUserSettings(ctx)

	require.NoError(t, err)
	require.Len(t, settings.Settings, 1)
	assert.Equal(t, "autoPush", settings.Settings[0].Key)
	require.Len(t, settings.ListSettings, 1)
	assert.Equal(t, "list-a", settings.ListSettings[0].ListUUID)
}

func TestBringClient_RequiresLogin(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	_, err := client.LoadLists(ctx)
	require.Error(t, err)
	assert.True(t, groceries.IsAuth(err))

	_, err = client.GetAllUserSettings(ctx)
	require.Error(t, err)
	assert.True(t, groceries.IsAuth(err))

	err = client.RetrieveNewAccessToken(ctx)
	require.Error(t, err)
	assert.True(t, groceries.IsAuth(err), "refresh without a refresh token should classify as auth error")
}

func TestBringClient_RetrieveNewAccessToken(t *testing.T) {
	t.Parallel()

	server := newAPIServer(t)
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	require.NoError(t, client.Login(ctx))

	require.NoError(t, client.RetrieveNewAccessToken(ctx))

	// The refreshed token must still authenticate list enumeration.
	lists, err := client.LoadLists(ctx)
	require.NoError(t, err)
	assert.Len(t, lists.Lists, 2)
}

func TestBringClient_AccountIdentifier(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "http://localhost")

	assert.Equal(t, testEmail, client.AccountIdentifier())
}
