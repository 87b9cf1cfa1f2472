package handlers

import (
	"net/http"
	"strconv"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
)

const (
	defaultSnapshotLimit = 30
	maxSnapshotLimit     = 365
)

// SnapshotHandler handles HTTP requests for persisted stats snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler with the provided service dependency.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// ListSnapshots handles GET requests for stored snapshots, most recent first.
//
// Endpoint: GET /api/snapshot
// Query Parameters:
//   - limit (optional): 1 to 365, default 30
//
// Response: 200 OK with array of StatsSnapshot
// Error: 400 Bad Request if limit is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *SnapshotHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := defaultSnapshotLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxSnapshotLimit {
			response.RespondError(w, http.StatusBadRequest, "invalid limit", "limit must be between 1 and 365")
			return
		}
		limit = v
	}

	snapshots, err := h.snapshotService.ListSnapshots(r.Context(), limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// TakeSnapshot handles POST requests to store the current stats immediately.
//
// Endpoint: POST /api/snapshot
// Response: 201 Created with StatsSnapshot
// Error: 500 Internal Server Error if the snapshot cannot be stored
func (h *SnapshotHandler) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotService.TakeSnapshot(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToTakeSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}
