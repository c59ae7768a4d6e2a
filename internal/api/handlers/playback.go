package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gao4263/CineLearn-AI/internal/api/middleware"
	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/playback"
	"github.com/gao4263/CineLearn-AI/internal/subtitle"
)

type PlaybackHandler struct {
	db        *db.Database
	manager   *playback.Manager
	mediaPath string
}

func NewPlaybackHandler(database *db.Database, manager *playback.Manager, mediaPath string) *PlaybackHandler {
	return &PlaybackHandler{db: database, manager: manager, mediaPath: mediaPath}
}

type openSessionRequest struct {
	VideoID string `json:"video_id"`
}

type openSessionResponse struct {
	SessionID string  `json:"session_id"`
	VideoID   string  `json:"video_id"`
	CueCount  int     `json:"cue_count"`
	Resume    float64 `json:"resume_position"`
}

// OpenSession starts a synchronization session for a video, loading its
// subtitle document into a fresh session. Reopening with the same video just
// builds a new session; the old one is discarded wholesale.
func (h *PlaybackHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.VideoID == "" {
		jsonError(w, "video_id is required", http.StatusBadRequest)
		return
	}

	video, err := h.db.GetVideo(req.VideoID)
	if err != nil {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}

	var cues []subtitle.Cue
	if video.SubtitlePath != "" {
		raw, err := os.ReadFile(filepath.Join(h.mediaPath, video.SubtitlePath))
		if err == nil {
			cues = subtitle.Parse(string(raw))
		}
	}

	sessionID := uuid.New().String()
	ms := h.manager.Open(sessionID, video.ID)
	ms.Session.LoadDocument(cues)

	var resume float64
	if claims := middleware.GetClaims(r); claims != nil {
		resume, _ = h.db.GetWatchPosition(claims.UserID, video.ID)
	}

	jsonResponse(w, openSessionResponse{
		SessionID: sessionID,
		VideoID:   video.ID,
		CueCount:  len(cues),
		Resume:    resume,
	}, http.StatusCreated)
}

type timeUpdateRequest struct {
	Time float64 `json:"time"`
}

type timeUpdateResponse struct {
	playback.Update
	Commands []playback.Command `json:"commands,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// TimeUpdate feeds one clock value to the session and returns what to show,
// plus any seek/play commands the loop decided on. Called at the player's
// timeupdate cadence; evaluation is stateless in time, so dropped or
// reordered calls are harmless.
func (h *PlaybackHandler) TimeUpdate(w http.ResponseWriter, r *http.Request) {
	ms, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	var req timeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	update := ms.Session.OnTimeUpdate(req.Time)
	jsonResponse(w, timeUpdateResponse{
		Update:   update,
		Commands: ms.Commands.Drain(),
		Error:    ms.Session.Err(),
	}, http.StatusOK)
}

type loopRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *PlaybackHandler) SetLoop(w http.ResponseWriter, r *http.Request) {
	ms, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	var req loopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	ms.Session.SetLoop(req.Enabled)
	jsonResponse(w, map[string]bool{"loop": ms.Session.Looping()}, http.StatusOK)
}

type playerEventRequest struct {
	Event    string  `json:"event"` // loadedmetadata, ended, error
	Duration float64 `json:"duration,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// PlayerEvent relays lifecycle events from the playback element. Errors halt
// synchronization for the session until a new one is opened.
func (h *PlaybackHandler) PlayerEvent(w http.ResponseWriter, r *http.Request) {
	ms, err := h.manager.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}

	var req playerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	switch req.Event {
	case "loadedmetadata":
		ms.Session.OnLoadedMetadata(req.Duration)
	case "ended":
		ms.Session.OnEnded()
	case "error":
		reason := req.Reason
		if reason == "" {
			reason = "playback error"
		}
		ms.Session.OnError(reason)
	default:
		jsonError(w, "unknown event", http.StatusBadRequest)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"duration": ms.Session.Duration(),
		"ended":    ms.Session.Ended(),
		"error":    ms.Session.Err(),
	}, http.StatusOK)
}

func (h *PlaybackHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	h.manager.Close(chi.URLParam(r, "sessionID"))
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type progressRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

// SaveProgress stores the watch position for resume and updates the video's
// last-played marker.
func (h *PlaybackHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	videoID := chi.URLParam(r, "id")
	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.db.SaveWatchPosition(claims.UserID, videoID, req.Position, req.Duration); err != nil {
		jsonError(w, "failed to save position", http.StatusInternalServerError)
		return
	}
	if err := h.db.UpdateLastPlayed(videoID, req.Position); err != nil {
		jsonError(w, "failed to update video", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *PlaybackHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	position, err := h.db.GetWatchPosition(claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "failed to load position", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]float64{"position": position}, http.StatusOK)
}
