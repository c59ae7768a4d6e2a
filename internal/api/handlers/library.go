package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gao4263/CineLearn-AI/internal/db"
	"github.com/gao4263/CineLearn-AI/internal/db/models"
	"github.com/gao4263/CineLearn-AI/internal/ffmpeg"
	"github.com/gao4263/CineLearn-AI/internal/job"
	"github.com/gao4263/CineLearn-AI/internal/metadata"
	"github.com/gao4263/CineLearn-AI/internal/storage"
)

type LibraryHandler struct {
	db            *db.Database
	jobs          *job.JobQueue
	mediaPath     string
	thumbnailPath string
}

func NewLibraryHandler(database *db.Database, jobs *job.JobQueue, mediaPath, thumbnailPath string) *LibraryHandler {
	return &LibraryHandler{db: database, jobs: jobs, mediaPath: mediaPath, thumbnailPath: thumbnailPath}
}

type importRequest struct {
	Path string `json:"path"`           // video path relative to the media root
	Name string `json:"name,omitempty"` // display name, defaults to the file name
}

type importResponse struct {
	Video        *models.Video `json:"video"`
	ConvertJobID string        `json:"convert_job_id,omitempty"`
}

// Import registers a media file as a library video: extracts show/season/
// episode hints from the name, routes the video into the matching folders
// (creating them as needed), attaches the sibling subtitle file, probes the
// duration and, for containers the player cannot decode, enqueues a
// conversion job.
func (h *LibraryHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return
	}

	fullPath := filepath.Join(h.mediaPath, req.Path)
	if _, err := os.Stat(fullPath); err != nil {
		jsonError(w, "video file not found", http.StatusNotFound)
		return
	}
	if !storage.IsVideoFile(req.Path) {
		jsonError(w, "not a video file", http.StatusBadRequest)
		return
	}

	name := req.Name
	if name == "" {
		name = filepath.Base(req.Path)
	}
	meta := metadata.Parse(name)

	parentID, err := h.routeToFolder(meta)
	if err != nil {
		jsonError(w, "failed to create folders", http.StatusInternalServerError)
		return
	}

	video := &models.Video{
		ID:           uuid.New().String(),
		Name:         name,
		Path:         req.Path,
		SubtitlePath: storage.FindSubtitleFor(h.mediaPath, req.Path),
		Season:       meta.Season,
		Episode:      meta.Episode,
		ParentID:     parentID,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if info, err := ffmpeg.Probe(fullPath); err == nil {
		video.Duration = info.Duration
	} else {
		log.Printf("[library] probe failed for %s: %v", req.Path, err)
	}

	if err := h.db.UpsertVideo(video); err != nil {
		jsonError(w, "failed to save video", http.StatusInternalServerError)
		return
	}

	resp := importResponse{Video: video}

	if storage.NeedsConversion(req.Path) {
		j, err := h.jobs.Enqueue(job.JobConvert, video.ID, job.ConvertParams{SourcePath: req.Path})
		if err != nil {
			log.Printf("[library] failed to enqueue conversion for %s: %v", req.Path, err)
		} else {
			resp.ConvertJobID = j.ID
		}
	}

	jsonResponse(w, resp, http.StatusCreated)
}

// routeToFolder finds or creates the show folder and season subfolder for
// the parsed metadata, returning the id of the deepest folder. Names without
// episodic metadata stay at the library root.
func (h *LibraryHandler) routeToFolder(meta metadata.Meta) (string, error) {
	if meta.ShowName == "" || meta.Season == "" {
		return "", nil
	}

	show, err := h.db.FindFolder(meta.ShowName, "")
	if err != nil {
		return "", err
	}
	if show == nil {
		show = &models.Folder{
			ID:        uuid.New().String(),
			Name:      meta.ShowName,
			CreatedAt: time.Now().UnixMilli(),
		}
		if err := h.db.CreateFolder(show); err != nil {
			return "", err
		}
	}

	season, err := h.db.FindFolder(meta.Season, show.ID)
	if err != nil {
		return "", err
	}
	if season == nil {
		season = &models.Folder{
			ID:        uuid.New().String(),
			Name:      meta.Season,
			ParentID:  show.ID,
			CreatedAt: time.Now().UnixMilli(),
		}
		if err := h.db.CreateFolder(season); err != nil {
			return "", err
		}
	}
	return season.ID, nil
}

func (h *LibraryHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.db.ListVideos()
	if err != nil {
		jsonError(w, "failed to list videos", http.StatusInternalServerError)
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	jsonResponse(w, videos, http.StatusOK)
}

func (h *LibraryHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := h.db.GetVideo(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, video, http.StatusOK)
}

func (h *LibraryHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteVideo(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete video", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// GetThumbnail serves (and lazily generates) the video's thumbnail.
func (h *LibraryHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	video, err := h.db.GetVideo(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}

	outDir := filepath.Join(h.thumbnailPath, video.ID)
	thumbPath, err := ffmpeg.GenerateThumbnail(filepath.Join(h.mediaPath, video.Path), outDir)
	if err != nil {
		jsonError(w, "thumbnail generation failed", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, thumbPath)
}

func (h *LibraryHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.db.ListFolders()
	if err != nil {
		jsonError(w, "failed to list folders", http.StatusInternalServerError)
		return
	}
	if folders == nil {
		folders = []*models.Folder{}
	}
	jsonResponse(w, folders, http.StatusOK)
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

func (h *LibraryHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		jsonError(w, "folder name is required", http.StatusBadRequest)
		return
	}

	folder := &models.Folder{
		ID:        uuid.New().String(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := h.db.CreateFolder(folder); err != nil {
		jsonError(w, "failed to create folder", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, folder, http.StatusCreated)
}

func (h *LibraryHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.db.DeleteFolder(chi.URLParam(r, "id")); err != nil {
		jsonError(w, "failed to delete folder", http.StatusInternalServerError)
		return
	}
	jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Browse lists importable files under a media subdirectory.
func (h *LibraryHandler) Browse(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	entries, err := storage.ListDirectory(h.mediaPath, rel)
	if err != nil {
		jsonError(w, "failed to list directory", http.StatusNotFound)
		return
	}
	if entries == nil {
		entries = []*storage.FileEntry{}
	}
	jsonResponse(w, entries, http.StatusOK)
}

// Search finds media files by name under the media root.
func (h *LibraryHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}
	results, err := storage.Search(h.mediaPath, query, 50)
	if err != nil {
		jsonError(w, "search failed", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []*storage.FileEntry{}
	}
	jsonResponse(w, results, http.StatusOK)
}
