package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Trade-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trade-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/service"
	"github.com/ndewijer/Trade-Journal-Backend/internal/validation"
)

const (
	// uploadField is the multipart field carrying the screenshots.
	uploadField = "images"
	// maxImagesPerUpload bounds one batch.
	maxImagesPerUpload = 20
)

// allowedImageTypes are the MIME types the extraction service accepts.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// LedgerHandler handles HTTP requests for ledger events and screenshot uploads.
type LedgerHandler struct {
	ledgerService  *service.LedgerService
	uploadService  *service.UploadService
	maxUploadBytes int64
}

// NewLedgerHandler creates a new LedgerHandler. maxUploadBytes limits the size of one image.
func NewLedgerHandler(ledgerService *service.LedgerService, uploadService *service.UploadService, maxUploadBytes int64) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:  ledgerService,
		uploadService:  uploadService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListEvents handles GET requests for every ledger event, ordered by date.
//
// Endpoint: GET /api/ledger/event
// Response: 200 OK with array of LedgerEvent
// Error: 500 Internal Server Error if retrieval fails
func (h *LedgerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.ledgerService.ListEvents(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEvents.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, events)
}

// GetEvent handles GET requests for a single ledger event.
//
// Endpoint: GET /api/ledger/event/{uuid}
// Response: 200 OK with LedgerEvent
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the event does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *LedgerHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "uuid")

	event, err := h.ledgerService.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEventNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEvent.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST requests for a manual ledger entry.
// The entry is normalized exactly like an extracted record.
//
// Endpoint: POST /api/ledger/event
// Request Body: CreateEventRequest
// Response: 201 Created with LedgerEvent
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *LedgerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateEventRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateEvent(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	event, err := h.ledgerService.CreateEvent(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnknownRecordType) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrUnknownRecordType.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateEvent.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, event)
}

// DeleteEvent handles DELETE requests to remove a ledger event.
//
// Endpoint: DELETE /api/ledger/event/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the event does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *LedgerHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "uuid")

	if err := h.ledgerService.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrEventNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteEvent.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// UploadResponse reports the outcome of a screenshot batch.
type UploadResponse struct {
	Results []service.UploadResult `json:"results"`
	Created int                    `json:"created"`
	Failed  int                    `json:"failed"`
}

// Upload handles POST requests with one or more brokerage screenshots.
// Each image is extracted and stored independently; a failing image is
// reported in its result and does not fail the request.
//
// Endpoint: POST /api/ledger/upload
// Request Body: multipart/form-data with one or more "images" parts
// Response: 200 OK with UploadResponse
// Error: 400 Bad Request if the form is invalid or carries no images
func (h *LedgerHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes*maxImagesPerUpload)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File[uploadField]
	if len(files) == 0 {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrNoImages.Error(), "")
		return
	}
	if len(files) > maxImagesPerUpload {
		response.RespondError(w, http.StatusBadRequest, "too many images",
			fmt.Sprintf("at most %d images per upload", maxImagesPerUpload))
		return
	}

	// Images rejected here keep their slot so results line up with the request.
	results := make([]service.UploadResult, len(files))
	images := make([]service.Image, 0, len(files))
	slots := make([]int, 0, len(files))
	for i, fh := range files {
		img, err := h.readImage(fh)
		if err != nil {
			results[i] = service.UploadResult{Filename: fh.Filename, Error: err.Error()}
			continue
		}
		images = append(images, img)
		slots = append(slots, i)
	}

	for j, res := range h.uploadService.ProcessImages(r.Context(), images) {
		results[slots[j]] = res
	}

	resp := UploadResponse{Results: results}
	for _, res := range results {
		if res.Event != nil {
			resp.Created++
		} else {
			resp.Failed++
		}
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

func (h *LedgerHandler) readImage(fh *multipart.FileHeader) (service.Image, error) {
	if fh.Size > h.maxUploadBytes {
		return service.Image{}, fmt.Errorf("image exceeds %d bytes", h.maxUploadBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return service.Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return service.Image{}, fmt.Errorf("failed to read image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !allowedImageTypes[mimeType] {
		// Sniffing does not know HEIC; trust the declared type for those.
		declared := fh.Header.Get("Content-Type")
		if declared != "image/heic" && declared != "image/heif" {
			return service.Image{}, fmt.Errorf("unsupported image type %q", mimeType)
		}
		mimeType = declared
	}

	return service.Image{Filename: fh.Filename, MIMEType: mimeType, Data: data}, nil
}
