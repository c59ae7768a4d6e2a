package job

import (
	"context"
	"encoding/json"
	"time"
)

// JobType represents the kind of job
type JobType string

const (
	JobAnnotate JobType = "annotate"
	JobConvert  JobType = "convert"
)

// JobStatus represents the current state of a job
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusCancelled JobStatus = "cancelled"
)

// Job represents a queued task (annotation generation or video conversion)
type Job struct {
	ID          string          `json:"id"`
	Type        JobType         `json:"type"`
	Status      JobStatus       `json:"status"`
	VideoID     string          `json:"video_id"`
	Params      json.RawMessage `json:"params"`
	Progress    float64         `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// AnnotateParams are parameters for an annotation generation job. The job
// is scoped to one subtitle line; a failure stays scoped to that line and
// the same line can safely be re-submitted.
type AnnotateParams struct {
	SubtitleID string `json:"subtitle_id"` // stable cue id the points attach to
	LineText   string `json:"line_text"`   // the cue text to analyze
	Context    string `json:"context"`     // e.g. show name or "General conversation"
	Engine     string `json:"engine"`      // "gemini", "openai"
}

// ConvertParams are parameters for a video conversion job
type ConvertParams struct {
	SourcePath string `json:"source_path"` // relative to the media root
}

// AnnotateResult is the output of a successful annotation job
type AnnotateResult struct {
	Count int `json:"count"` // learning points produced
}

// ConvertResult is the output of a successful conversion
type ConvertResult struct {
	OutputPath string  `json:"output_path"` // relative path to the playable MP4
	Duration   float64 `json:"duration"`    // processing time in seconds
}

// JobHandler processes a job. Implementations are provided by the annotate
// and ffmpeg packages.
type JobHandler func(ctx context.Context, job *Job, updateProgress func(float64)) error
