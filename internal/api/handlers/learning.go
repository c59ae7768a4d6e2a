package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/db/models"
	"github.com/gao4263/CineLearn-AI/internal/job"
)

type LearningHandler struct {
	db        *db.Database
	jobs      *job.JobQueue
	annotator *annotate.Service
}

func NewLearningHandler(database *db.Database, jobs *job.JobQueue, annotator *annotate.Service) *LearningHandler {
	return &LearningHandler{db: database, jobs: jobs, annotator: annotator}
}

type saveWordRequest struct {
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	Pronunciation   string `json:"pronunciation,omitempty"`
	ContextSentence string `json:"context_sentence"`
	VideoID         string `json:"video_id"`
	SubtitleID      string `json:"subtitle_id,omitempty"`
}

func (h *LearningHandler) SaveWord(w http.ResponseWriter, r *http.Request) {
	var req saveWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Word == "" {
		jsonError(w, "word is required", http.StatusBadRequest)
		return
	}

	word := &models.SavedWord{
		ID:              uuid.New().String(),
		Word:            req.Word,
		Translation:     req.Translation,
		Pronunciation:   req.Pronunciation,
		ContextSentence: req.ContextSentence,
		VideoID:         req.VideoID,
		SubtitleID:      req.SubtitleID,
		Timestamp:       time.Now().UnixMilli(),
	}
	if err := h.db.CreateSavedWord(word); err != nil {
		jsonError(w, "failed to save word", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, word, http.StatusCreated)
}

func (h *LearningHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.db.ListSavedWords()
	if err != nil {
		jsonError(w, "failed to list words", http.StatusInternalServerError)
		return
	}
	if words == nil {
		words = []*models.SavedWord{}
	}
	jsonResponse(w, words, http.StatusOK)
}

type masteredRequest struct {
	Mastered bool `json:"mastered"`
}

func (h *LearningHandler) SetWordMastered(w http.ResponseWriter, r *http.Request) {
	var req masteredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.db.SetWordMastered(chi.URLParam(r, "id"), req.Mastered); err != nil {
		jsonError(w, "failed to update word", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *LearningHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteSavedWord(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete word", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type saveSubtitleRequest struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	VideoID   string  `json:"video_id"`
}

func (h *LearningHandler) SaveSubtitle(w http.ResponseWriter, r *http.Request) {
	var req saveSubtitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	sub := &models.SavedSubtitle{
		ID:        uuid.New().String(),
		Text:      req.Text,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		VideoID:   req.VideoID,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := h.db.CreateSavedSubtitle(sub); err != nil {
		jsonError(w, "failed to save subtitle", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, sub, http.StatusCreated)
}

func (h *LearningHandler) ListSubtitles(w http.ResponseWriter, r *http.Request) {
	subs, err := h.db.ListSavedSubtitles()
	if err != nil {
		jsonError(w, "failed to list subtitles", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []*models.SavedSubtitle{}
	}
	jsonResponse(w, subs, http.StatusOK)
}

func (h *LearningHandler) DeleteSubtitle(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteSavedSubtitle(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete subtitle", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

type annotateRequest struct {
	SubtitleID string `json:"subtitle_id"`
	LineText   string `json:"line_text"`
	Context    string `json:"context,omitempty"`
	Engine     string `json:"engine,omitempty"`
}

// Annotate enqueues a background job that asks the configured AI engine for
// learning points on a subtitle line and stores the results.
func (h *LearningHandler) Annotate(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "id")
	var req annotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SubtitleID == "" || req.LineText == "" {
		jsonError(w, "subtitle_id and line_text are required", http.StatusBadRequest)
		return
	}

	if _, err := h.db.GetVideo(videoID); err != nil {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}

	j, err := h.jobs.Enqueue(job.JobAnnotate, videoID, job.AnnotateParams{
		SubtitleID: req.SubtitleID,
		LineText:   req.LineText,
		Context:    req.Context,
		Engine:     req.Engine,
	})
	if err != nil {
		jsonError(w, "failed to enqueue annotation job", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, j, http.StatusAccepted)
}

// ListAnnotations returns the stored learning points for a video, optionally
// filtered to one subtitle line via ?subtitle_id=.
func (h *LearningHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	var (
		anns []annotate.Annotation
		err  error
	)
	if subtitleID := r.URL.Query().Get("subtitle_id"); subtitleID != "" {
		anns, err = h.db.AnnotationsForSubtitle(subtitleID)
	} else {
		anns, err = h.db.ListAnnotations(chi.URLParam(r, "id"))
	}
	if err != nil {
		jsonError(w, "failed to list annotations", http.StatusInternalServerError)
		return
	}
	if anns == nil {
		anns = []annotate.Annotation{}
	}
	jsonResponse(w, anns, http.StatusOK)
}

func (h *LearningHandler) DeleteAnnotation(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteAnnotation(chi.URLParam(r, "annotationID")); err != nil {
		jsonError(w, "failed to delete annotation", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Engines lists the AI annotation engines that have credentials configured.
func (h *LearningHandler) Engines(w http.ResponseWriter, r *http.Request) {
	engines := h.annotator.Engines()
	if engines == nil {
		engines = []string{}
	}
	jsonResponse(w, engines, http.StatusOK)
}
