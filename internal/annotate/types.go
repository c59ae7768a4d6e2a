package annotate

import "context"

// Category classifies a learning point. It only drives presentation
// styling; matching never looks at it.
type Category string

const (
	CategoryVocabulary Category = "vocabulary"
	CategoryGrammar    Category = "grammar"
	CategoryCulture    Category = "culture"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryVocabulary, CategoryGrammar, CategoryCulture:
		return true
	}
	return false
}

// Annotation is one AI-derived learning point attached to a subtitle cue.
// Anchor is the exact substring of the cue text the point explains; an
// annotation whose anchor does not occur in the displayed text is inert
// (it produces no highlight) but stays valid data.
type Annotation struct {
	ID         string   `json:"id"`
	VideoID    string   `json:"video_id"`
	SubtitleID string   `json:"subtitle_id"`
	Category   Category `json:"type"`
	Content    string   `json:"content"`
	Anchor     string   `json:"anchor,omitempty"`
	Timestamp  int64    `json:"timestamp"`
}

// GenerateOptions configures annotation generation for one subtitle line.
type GenerateOptions struct {
	Context string `json:"context"` // e.g. "General conversation" or show name
}

// Generator is the common interface for all annotation engines. Engines
// return raw learning points; ids and cue references are filled in by the
// service that owns the request.
type Generator interface {
	// Generate produces learning points for one subtitle line.
	Generate(ctx context.Context, lineText string, opts GenerateOptions) ([]Annotation, error)
	// Name returns the engine name.
	Name() string
	// Ready reports whether the engine has credentials configured.
	Ready() bool
}

// Normalize applies the defensive boundary rules for externally produced
// annotations: an unknown category falls back to culture (presentation
// default), a missing anchor is kept as a non-matchable annotation.
func Normalize(a Annotation) Annotation {
	if !ValidCategory(a.Category) {
		a.Category = CategoryCulture
	}
	return a
}
