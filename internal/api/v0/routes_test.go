package v0_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	v0 "github.com/grocerly/grocery-sync-server/internal/api/v0"
	"github.com/grocerly/grocery-sync-server/internal/groceries"
	"github.com/grocerly/grocery-sync-server/internal/service"
	"github.com/grocerly/grocery-sync-server/internal/service/mocks"
	"github.com/grocerly/grocery-sync-server/internal/state"
	pkgsync "github.com/grocerly/grocery-sync-server/internal/sync"
)

func doRequest(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestListLists(t *testing.T) {
	t.Parallel()

	t.Run("returns list summaries", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().ListLists(gomock.Any()).Return([]service.ListSummary{
			{ListUUID: "list-a", Name: "Groceries", ItemCount: 2},
			{ListUUID: "list-b", Name: "Hardware store", ItemCount: 1},
		}, nil)

		rec := doRequest(t, v0.Router(svc), http.MethodGet, "/lists")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var summaries []service.ListSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
		require.Len(t, summaries, 2)
		assert.Equal(t, "Groceries", summaries[0].Name)
	})

	t.Run("maps service failure to 500", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().ListLists(gomock.Any()).Return(nil, errors.New("boom"))

		rec := doRequest(t, v0.Router(svc), http.MethodGet, "/lists")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestGetListItems(t *testing.T) {
	t.Parallel()

	t.Run("returns the list snapshot", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().GetListItems(gomock.Any(), "list-a").Return(&pkgsync.ListSnapshot{
			List: groceries.List{ListUUID: "list-a", Name: "Groceries"},
			Items: groceries.ItemsResponse{
				UUID:     "list-a",
				Purchase: []groceries.Item{{Name: "Milk"}, {Name: "Bread", Specification: "whole grain"}},
			},
		}, nil)

		rec := doRequest(t, v0.Router(svc), http.MethodGet, "/lists/list-a")

		require.Equal(t, http.StatusOK, rec.Code)

		var snapshot pkgsync.ListSnapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
		assert.Equal(t, "Groceries", snapshot.List.Name)
		assert.Len(t, snapshot.Items.Purchase, 2)
	})

	t.Run("unknown list returns 404", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().GetListItems(gomock.Any(), "nope").
			Return(nil, fmt.Errorf("%w: nope", service.ErrListNotFound))

		rec := doRequest(t, v0.Router(svc), http.MethodGet, "/lists/nope")

		require.Equal(t, http.StatusNotFound, rec.Code)

		var errResp v0.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Error, "nope")
	})
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	lastSync := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGrocerService(ctrl)
	svc.EXPECT().GetSyncStatus(gomock.Any()).Return(&state.SyncStatus{
		Phase:        state.PhaseReady,
		LastSyncTime: &lastSync,
		ListCount:    3,
	}, nil)

	rec := doRequest(t, v0.Router(svc), http.MethodGet, "/status")

	require.Equal(t, http.StatusOK, rec.Code)

	var status v0.StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "Ready", status.Phase)
	assert.Equal(t, 3, status.ListCount)
	assert.NotEmpty(t, status.LastSyncTime)
}

func TestTriggerRefresh(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGrocerService(ctrl)
	svc.EXPECT().TriggerRefresh(gomock.Any()).Return(nil)

	rec := doRequest(t, v0.Router(svc), http.MethodPost, "/refresh")

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp v0.AcceptedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "refresh requested", resp.Status)
}

func TestReauthenticate(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockGrocerService(ctrl)
	svc.EXPECT().Reauthenticate(gomock.Any()).Return(nil)

	rec := doRequest(t, v0.Router(svc), http.MethodPost, "/reauthenticate")
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestSubscriptions(t *testing.T) {
	t.Parallel()

	t.Run("subscribe returns 204", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().Subscribe(gomock.Any(), "list-a").Return(nil)

		rec := doRequest(t, v0.Router(svc), http.MethodPut, "/subscriptions/list-a")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unsubscribe returns 204", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().Unsubscribe(gomock.Any(), "list-a").Return(nil)

		rec := doRequest(t, v0.Router(svc), http.MethodDelete, "/subscriptions/list-a")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("health is always healthy", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)

		rec := doRequest(t, v0.HealthRouter(svc), http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("readiness reflects sync state", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().CheckReadiness(gomock.Any()).Return(nil)

		rec := doRequest(t, v0.HealthRouter(svc), http.MethodGet, "/readiness")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readiness returns 503 before first sync", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)
		svc.EXPECT().CheckReadiness(gomock.Any()).Return(errors.New("no successful sync completed yet"))

		rec := doRequest(t, v0.HealthRouter(svc), http.MethodGet, "/readiness")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var errResp v0.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Contains(t, errResp.Error, "not ready")
	})

	t.Run("version reports build info", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		svc := mocks.NewMockGrocerService(ctrl)

		rec := doRequest(t, v0.HealthRouter(svc), http.MethodGet, "/version")
		require.Equal(t, http.StatusOK, rec.Code)

		var info map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
		assert.NotEmpty(t, info["go_version"])
		assert.NotEmpty(t, info["platform"])
	})
}
