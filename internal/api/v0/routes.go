// Package v0 provides the REST API handlers for grocery list access.
package v0

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grocerly/grocery-sync-server/internal/service"
	"github.com/grocerly/grocery-sync-server/internal/versions"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the sync status as served by the API
type StatusResponse struct {
	Phase        string `json:"phase"`
	Message      string `json:"message,omitempty"`
	Reason       string `json:"reason,omitempty"`
	LastSyncTime string `json:"lastSyncTime,omitempty"`
	ListCount    int    `json:"listCount"`
}

// AcceptedResponse acknowledges an asynchronous operation
type AcceptedResponse struct {
	Status string `json:"status"`
}

// Routes defines the routes for the grocery sync API with dependency injection
type Routes struct {
	service service.GrocerService
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.GrocerService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the grocery sync API
func Router(svc service.GrocerService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Get("/lists", routes.listLists)
	r.Get("/lists/{listUUID}", routes.getListItems)
	r.Get("/status", routes.getStatus)
	r.Post("/refresh", routes.triggerRefresh)
	r.Post("/reauthenticate", routes.reauthenticate)
	r.Put("/subscriptions/{listUUID}", routes.subscribe)
	r.Delete("/subscriptions/{listUUID}", routes.unsubscribe)

	return r
}

// listLists handles GET /api/v0/lists
//
// @Summary		List grocery lists
// @Description	Get the metadata of every list in the current snapshot
// @Tags			lists
// @Produce		json
// @Success		200	{array}		service.ListSummary
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/lists [get]
func (rr *Routes) listLists(w http.ResponseWriter, r *http.Request) {
	summaries, err := rr.service.ListLists(r.Context())
	if err != nil {
		slog.Error("Failed to list lists", "error", err)
		rr.writeErrorResponse(w, "Failed to list lists", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, summaries)
}

// getListItems handles GET /api/v0/lists/{listUUID}
//
// @Summary		Get list content
// @Description	Get the items of a single list from the current snapshot
// @Tags			lists
// @Produce		json
// @Param			listUUID	path		string	true	"List UUID"
// @Success		200			{object}	sync.ListSnapshot
// @Failure		404			{object}	ErrorResponse
// @Router			/api/v0/lists/{listUUID} [get]
func (rr *Routes) getListItems(w http.ResponseWriter, r *http.Request) {
	listUUID := chi.URLParam(r, "listUUID")

	snapshot, err := rr.service.GetListItems(r.Context(), listUUID)
	if err != nil {
		if errors.Is(err, service.ErrListNotFound) {
			rr.writeErrorResponse(w, "List not found: "+listUUID, http.StatusNotFound)
			return
		}
		slog.Error("Failed to get list items", "list_uuid", listUUID, "error", err)
		rr.writeErrorResponse(w, "Failed to get list items", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusOK, snapshot)
}

// getStatus handles GET /api/v0/status
//
// @Summary		Get sync status
// @Description	Get the current phase of the background synchronization
// @Tags			sync
// @Produce		json
// @Success		200	{object}	StatusResponse
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/status [get]
func (rr *Routes) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := rr.service.GetSyncStatus(r.Context())
	if err != nil {
		slog.Error("Failed to get sync status", "error", err)
		rr.writeErrorResponse(w, "Failed to get sync status", http.StatusInternalServerError)
		return
	}

	resp := StatusResponse{
		Phase:     string(status.Phase),
		Message:   status.Message,
		Reason:    status.Reason,
		ListCount: status.ListCount,
	}
	if status.LastSyncTime != nil {
		resp.LastSyncTime = status.LastSyncTime.Format(http.TimeFormat)
	}

	rr.writeJSONResponse(w, http.StatusOK, resp)
}

// triggerRefresh handles POST /api/v0/refresh
//
// @Summary		Trigger a refresh
// @Description	Request an on-demand refresh cycle outside the regular interval
// @Tags			sync
// @Produce		json
// @Success		202	{object}	AcceptedResponse
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/refresh [post]
func (rr *Routes) triggerRefresh(w http.ResponseWriter, r *http.Request) {
	if err := rr.service.TriggerRefresh(r.Context()); err != nil {
		slog.Error("Failed to trigger refresh", "error", err)
		rr.writeErrorResponse(w, "Failed to trigger refresh", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusAccepted, AcceptedResponse{Status: "refresh requested"})
}

// reauthenticate handles POST /api/v0/reauthenticate
//
// @Summary		Re-authenticate the account
// @Description	Clear a re-authentication suspension and retry the login
// @Tags			sync
// @Produce		json
// @Success		202	{object}	AcceptedResponse
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/reauthenticate [post]
func (rr *Routes) reauthenticate(w http.ResponseWriter, r *http.Request) {
	if err := rr.service.Reauthenticate(r.Context()); err != nil {
		slog.Error("Failed to trigger re-authentication", "error", err)
		rr.writeErrorResponse(w, "Failed to trigger re-authentication", http.StatusInternalServerError)
		return
	}

	rr.writeJSONResponse(w, http.StatusAccepted, AcceptedResponse{Status: "re-authentication requested"})
}

// subscribe handles PUT /api/v0/subscriptions/{listUUID}
//
// @Summary		Subscribe to a list
// @Description	Add a list to the interest set; refresh cycles then fetch only subscribed lists
// @Tags			subscriptions
// @Produce		json
// @Param			listUUID	path	string	true	"List UUID"
// @Success		204
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/subscriptions/{listUUID} [put]
func (rr *Routes) subscribe(w http.ResponseWriter, r *http.Request) {
	listUUID := chi.URLParam(r, "listUUID")

	if err := rr.service.Subscribe(r.Context(), listUUID); err != nil {
		slog.Error("Failed to subscribe", "list_uuid", listUUID, "error", err)
		rr.writeErrorResponse(w, "Failed to subscribe", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// unsubscribe handles DELETE /api/v0/subscriptions/{listUUID}
//
// @Summary		Unsubscribe from a list
// @Description	Remove a list from the interest set
// @Tags			subscriptions
// @Produce		json
// @Param			listUUID	path	string	true	"List UUID"
// @Success		204
// @Failure		500	{object}	ErrorResponse
// @Router			/api/v0/subscriptions/{listUUID} [delete]
func (rr *Routes) unsubscribe(w http.ResponseWriter, r *http.Request) {
	listUUID := chi.URLParam(r, "listUUID")

	if err := rr.service.Unsubscribe(r.Context(), listUUID); err != nil {
		slog.Error("Failed to unsubscribe", "list_uuid", listUUID, "error", err)
		rr.writeErrorResponse(w, "Failed to unsubscribe", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.GrocerService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
//
// @Summary		Health check
// @Description	Check if the sync API is healthy
// @Tags			system
// @Produce		json
// @Success		200	{object}	map[string]string
// @Router			/health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler handles readiness check requests
//
// @Summary		Readiness check
// @Description	Check if at least one sync cycle completed successfully
// @Tags			system
// @Produce		json
// @Success		200	{object}	map[string]string
// @Failure		503	{object}	ErrorResponse
// @Router			/readiness [get]
func readinessHandler(svc service.GrocerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			errorResp := ErrorResponse{
				Error: "Service not ready: " + err.Error(),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(errorResp); encodeErr != nil {
				slog.Error("Failed to encode readiness error response", "error", encodeErr)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
//
// @Summary		Version information
// @Description	Get version information about the sync API
// @Tags			system
// @Produce		json
// @Success		200	{object}	map[string]string
// @Router			/version [get]
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	response := map[string]string{
		"version":    info.Version,
		"commit":     info.Commit,
		"build_date": info.BuildDate,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode version info", "error", err)
	}
}

// writeJSONResponse writes a JSON response with the given data
func (*Routes) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := ErrorResponse{
		Error: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
