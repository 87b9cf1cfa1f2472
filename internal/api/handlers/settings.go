package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trade-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
	"github.com/ndewijer/Trade-Journal-Backend/internal/validation"
)

// SettingsHandler handles HTTP requests for user settings.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings handles GET requests for the current settings.
// The extraction key itself is never returned, only whether one is configured.
//
// Endpoint: GET /api/settings
// Response: 200 OK with SettingsResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.GetSettings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSettings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, settings)
}

// UpdateStartingCapital handles PUT requests to save the starting capital.
//
// Endpoint: PUT /api/settings/starting-capital
// Request Body: UpdateStartingCapitalRequest
// Response: 200 OK with SettingsResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the update fails
func (h *SettingsHandler) UpdateStartingCapital(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateStartingCapitalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStartingCapital(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	if err := h.settingsService.SetStartingCapital(r.Context(), *req.StartingCapital); err != nil {
		if errors.Is(err, apperrors.ErrInvalidStartingCapital) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidStartingCapital.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateSettings.Error(), err.Error())
		return
	}

	h.GetSettings(w, r)
}

// UpdateExtractionKey handles PUT requests to store the extraction API key.
// The key is encrypted at rest; without an encryption key the request is refused.
//
// Endpoint: PUT /api/settings/extraction-key
// Request Body: UpdateExtractionKeyRequest
// Response: 200 OK with SettingsResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if no encryption key is configured
// Error: 500 Internal Server Error if the update fails
func (h *SettingsHandler) UpdateExtractionKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateExtractionKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateExtractionKey(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	if err := h.settingsService.SetExtractionKey(r.Context(), req.APIKey); err != nil {
		if errors.Is(err, apperrors.ErrEncryptionKeyMissing) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrEncryptionKeyMissing.Error(), "set ENCRYPTION_KEY to store secrets")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToUpdateSettings.Error(), err.Error())
		return
	}

	h.GetSettings(w, r)
}
