package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/stvowns/portfolio-tracker/internal/api/request"
	"github.com/stvowns/portfolio-tracker/internal/api/response"
	"github.com/stvowns/portfolio-tracker/internal/apperrors"
	"github.com/stvowns/portfolio-tracker/internal/service"
)

// SettingsHandler handles HTTP requests for the key/value settings store.
// The whole namespace is API key protected; secret values are encrypted at
// rest by the service layer.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the provided service dependency.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSetting handles GET requests to retrieve one setting value.
//
// Endpoint: GET /api/settings/{key} (API key protected)
// Response: 200 OK with {key, value}
// Error: 404 Not Found if the key has never been set
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := h.settingsService.Get(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSettingNotFound.Error(), key)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve setting", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

// SetSetting handles PUT requests to store a setting value.
//
// Endpoint: PUT /api/settings (API key protected)
// Request Body: SetSettingRequest (key, value)
// Response: 204 No Content
// Error: 400 Bad Request if the request body is invalid or the key is empty
// Error: 500 Internal Server Error if storage fails
func (h *SettingsHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetSettingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Key) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "key is required")
		return
	}

	if err := h.settingsService.Set(r.Context(), req.Key, req.Value); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToStoreSetting.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
