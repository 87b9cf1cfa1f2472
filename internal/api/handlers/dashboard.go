package handlers

import (
	"net/http"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
	"github.com/ndewijer/Trade-Journal-Backend/internal/validation"
)

// DashboardHandler serves the aggregate views computed from the ledger.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler with the provided service dependency.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Stats handles GET requests for the aggregate statistics.
//
// Endpoint: GET /api/ledger/stats
// Query Parameters:
//   - startingCapital (optional): overrides the saved starting capital
//
// Response: 200 OK with Stats
// Error: 400 Bad Request if startingCapital is malformed
// Error: 500 Internal Server Error if the starting capital cannot be read
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	capital, err := parseOptionalAmount(r, "startingCapital")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStartingCapital.Error(), err.Error())
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), capital)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// History handles GET requests for every event annotated with its running balance,
// most recent first.
//
// Endpoint: GET /api/ledger/history
// Query Parameters:
//   - startingCapital (optional): overrides the saved starting capital
//
// Response: 200 OK with array of HistoryEntry
// Error: 400 Bad Request if startingCapital is malformed
// Error: 500 Internal Server Error if the starting capital cannot be read
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	capital, err := parseOptionalAmount(r, "startingCapital")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStartingCapital.Error(), err.Error())
		return
	}

	history, err := h.dashboardService.History(r.Context(), capital)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// Calendar handles GET requests for the resolved P/L per trading date.
//
// Endpoint: GET /api/ledger/calendar
// Query Parameters:
//   - month (optional): YYYY-MM
//
// Response: 200 OK with array of DailyResolution
// Error: 400 Bad Request if month is malformed
func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if err := validation.ValidateMonth(month); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.dashboardService.Calendar(month))
}

// Projection handles GET requests for the what-if projection.
// A non-numeric or negative amount projects to all zeros.
//
// Endpoint: GET /api/ledger/projection
// Query Parameters:
//   - amount: the hypothetical starting amount
//
// Response: 200 OK with Projection
func (h *DashboardHandler) Projection(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.dashboardService.Projection(projectionAmount(r)))
}

// Dashboard handles GET requests for every view at once.
//
// Endpoint: GET /api/ledger/dashboard
// Query Parameters:
//   - startingCapital (optional): overrides the saved starting capital
//   - amount (optional): projection amount
//   - month (optional): YYYY-MM calendar filter
//
// Response: 200 OK with Dashboard
// Error: 400 Bad Request if startingCapital or month is malformed
// Error: 500 Internal Server Error if the starting capital cannot be read
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	capital, err := parseOptionalAmount(r, "startingCapital")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStartingCapital.Error(), err.Error())
		return
	}

	month := r.URL.Query().Get("month")
	if err := validation.ValidateMonth(month); err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidMonth.Error(), err.Error())
		return
	}

	dashboard, err := h.dashboardService.Dashboard(r.Context(), capital, projectionAmount(r), month)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, dashboard)
}
