package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // admin, viewer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Video is one imported library entry. Season/Episode come from the
// filename metadata extractor at import time.
type Video struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Path         string  `json:"path"`          // media file path, relative to the media root
	SubtitlePath string  `json:"subtitle_path"` // SRT path, empty when none attached
	Season       string  `json:"season,omitempty"`
	Episode      string  `json:"episode,omitempty"`
	ParentID     string  `json:"parent_id,omitempty"` // containing folder
	Duration     float64 `json:"duration"`
	LastPlayed   float64 `json:"last_played_time"`
	CreatedAt    int64   `json:"created_at"`
}

// Folder is a node of the library hierarchy (show folder, season folder).
type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ParentID  string `json:"parent_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// SavedWord is a word the user saved from a subtitle line.
type SavedWord struct {
	ID              string `json:"id"`
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	Pronunciation   string `json:"pronunciation,omitempty"` // IPA
	ContextSentence string `json:"context_sentence"`
	VideoID         string `json:"video_id"`
	SubtitleID      string `json:"subtitle_id,omitempty"` // stable cue id
	Mastered        bool   `json:"mastered"`
	Timestamp       int64  `json:"timestamp"`
}

// SavedSubtitle is a whole subtitle line the user bookmarked.
type SavedSubtitle struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	VideoID   string  `json:"video_id"`
	Timestamp int64   `json:"timestamp"`
}
