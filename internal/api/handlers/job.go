package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gao4263/CineLearn-AI/internal/job"
)

type JobHandler struct {
	jobs *job.JobQueue
}

func NewJobHandler(jobs *job.JobQueue) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.ListJobs()
	if err != nil {
		jsonError(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []*job.Job{}
	}
	jsonResponse(w, jobs, http.StatusOK)
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobs.GetJob(chi.URLParam(r, "id"))
	if err != nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	jsonResponse(w, j, http.StatusOK)
}

func (h *JobHandler) CancelJob(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.CancelJob(chi.URLParam(r, "id")); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	jsonResponse(w, map[string]string{"status": "cancelled"}, http.StatusOK)
}
