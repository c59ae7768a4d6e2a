package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gao4263/CineLearn-AI/internal/db"
)

// Settings keys recognized by the update endpoint. AI credentials live in
// the database so they can be changed without restarting the server; the
// matching environment variables only seed the initial values.
var allowedSettings = map[string]bool{
	"gemini_api_key": true,
	"gemini_model":   true,
	"openai_api_key": true,
}

var secretSettings = map[string]bool{
	"gemini_api_key": true,
	"openai_api_key": true,
}

type SettingsHandler struct {
	db *db.Database
}

func NewSettingsHandler(database *db.Database) *SettingsHandler {
	return &SettingsHandler{db: database}
}

// GetSettings returns all settings with secret values masked. A masked value
// only reports whether the secret is set.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetAllSettings()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	masked := make(map[string]string, len(settings))
	for key, value := range settings {
		if secretSettings[key] && value != "" {
			masked[key] = "********"
		} else {
			masked[key] = value
		}
	}
	jsonResponse(w, masked, http.StatusOK)
}

// UpdateSettings applies the provided key/value pairs. Unknown keys are
// rejected; the masked placeholder is ignored so a round-tripped settings
// form does not overwrite a secret with asterisks.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	for key, value := range updates {
		if !allowedSettings[key] {
			jsonError(w, "unknown setting: "+key, http.StatusBadRequest)
			return
		}
		if secretSettings[key] && value == "********" {
			continue
		}
		if err := h.db.SetSetting(key, value); err != nil {
			jsonError(w, "failed to save setting", http.StatusInternalServerError)
			return
		}
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}
