package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/subtitle"
)

type SubtitleHandler struct {
	db        *db.Database
	mediaPath string
}

func NewSubtitleHandler(database *db.Database, mediaPath string) *SubtitleHandler {
	return &SubtitleHandler{db: database, mediaPath: mediaPath}
}

type cuesResponse struct {
	VideoID  string         `json:"video_id"`
	Cues     []subtitle.Cue `json:"cues"`
	Duration float64        `json:"duration"`
}

// GetCues parses the video's attached subtitle file and returns the cue
// sequence. Parsing is tolerant: malformed blocks are dropped, so a partly
// damaged file still yields its intact cues.
func (h *SubtitleHandler) GetCues(w http.ResponseWriter, r *http.Request) {
	video, err := h.db.GetVideo(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}
	if video.SubtitlePath == "" {
		jsonError(w, "video has no subtitle file", http.StatusNotFound)
		return
	}

	raw, err := os.ReadFile(filepath.Join(h.mediaPath, video.SubtitlePath))
	if err != nil {
		jsonError(w, "failed to read subtitle file", http.StatusInternalServerError)
		return
	}

	cues := subtitle.Parse(string(raw))
	if cues == nil {
		cues = []subtitle.Cue{}
	}
	jsonResponse(w, cuesResponse{
		VideoID:  video.ID,
		Cues:     cues,
		Duration: subtitle.TotalDuration(cues),
	}, http.StatusOK)
}
