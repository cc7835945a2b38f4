package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kriyahr/workforce-backend-go/internal/domain/setting"
	"github.com/kriyahr/workforce-backend-go/internal/handler/http/response"
	"github.com/kriyahr/workforce-backend-go/internal/service/settings"
)

// SettingHandler exposes the administrative settings store backing the
// compliance thresholds.
type SettingHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type settingHandlerImpl struct {
	provider *settings.Provider
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(provider *settings.Provider) SettingHandler {
	return &settingHandlerImpl{provider: provider}
}

type settingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSettingResponse(s setting.Setting) settingResponse {
	return settingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Type:      string(s.Type),
		UpdatedBy: s.UpdatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

// List returns every stored setting
func (h *settingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.provider.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]settingResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toSettingResponse(entry))
	}

	response.Success(w, result)
}

type upsertSettingRequest struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Upsert creates or updates the setting named in the URL; the value is
// validated against its declared type before it is stored. A body key, when
// present, must match the URL.
func (h *settingHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req upsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if req.Key != "" && req.Key != key {
		response.BadRequest(w, "Body key does not match URL", nil)
		return
	}

	var updatedBy *string
	if _, claims, err := jwtauth.FromContext(r.Context()); err == nil {
		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			updatedBy = &userID
		}
	}

	saved, err := h.provider.Set(r.Context(), setting.Setting{
		Key:       key,
		Value:     req.Value,
		Type:      setting.ValueType(req.Type),
		UpdatedBy: updatedBy,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting saved", toSettingResponse(saved))
}

// Delete removes a setting by key
func (h *settingHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.provider.Delete(r.Context(), key); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Setting deleted", nil)
}
