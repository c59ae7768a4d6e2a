package playback

import (
	"strings"
	"sync"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/subtitle"
)

// loopMargin is how early before a cue's end the sentence loop re-seeks.
// 100ms masks seek latency so playback never visibly overshoots into the
// next cue.
const loopMargin = 0.1

// Player is the boundary to the external playback element. Seek and Play
// are fire-and-forget from the session's perspective; any asynchrony they
// involve belongs to the player.
type Player interface {
	Seek(target float64)
	Play()
}

// AnnotationSource supplies the annotations attached to a cue. It is
// queried fresh on every evaluation because annotations are appended by an
// independent generation process and may grow between calls.
type AnnotationSource interface {
	ForSubtitle(subtitleID string) []annotate.Annotation
}

// Line is one language layer of the active cue with its resolved
// highlight spans.
type Line struct {
	Text  string          `json:"text"`
	Spans []annotate.Span `json:"spans,omitempty"`
}

// Update is the result of one clock evaluation.
type Update struct {
	// Active is nil when the clock falls in a gap between cues.
	Active *subtitle.Cue `json:"active,omitempty"`
	// Lines carries the active cue's display lines with highlights.
	Lines []Line `json:"lines,omitempty"`
	// Changed is set when the active cue differs from the previous
	// evaluation; the presentation layer resets transient per-line UI
	// state (expanded cards etc.) when it sees it.
	Changed bool `json:"changed"`
	// Looped is set when a sentence-loop seek was issued this update.
	Looped bool `json:"looped"`
}

// Session is the playback synchronization loop for one loaded video. It
// holds no accumulated time state: every evaluation is a pure function of
// the reported clock value and the loaded cue sequence, so out-of-order or
// backward clock jumps cannot desynchronize it.
type Session struct {
	mu          sync.Mutex
	player      Player
	annotations AnnotationSource

	cues     []subtitle.Cue
	activeID string
	loop     bool
	duration float64
	ended    bool
	errMsg   string
}

func NewSession(player Player, annotations AnnotationSource) *Session {
	return &Session{player: player, annotations: annotations}
}

// LoadDocument replaces the cue sequence wholesale and resets all per-video
// state, so a stale clock value is never matched against the previous
// document's cues.
func (s *Session) LoadDocument(cues []subtitle.Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cues = cues
	s.activeID = ""
	s.loop = false
	s.duration = 0
	s.ended = false
	s.errMsg = ""
}

// SetLoop toggles sentence looping. Takes effect on the next clock update;
// nothing is queued or cancelled because the loop decision is recomputed
// fresh every evaluation.
func (s *Session) SetLoop(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = enabled
}

// Looping reports whether sentence looping is enabled.
func (s *Session) Looping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// OnTimeUpdate evaluates one clock tick and returns what the presentation
// layer should show. After a playback error it does nothing until a new
// document is loaded.
func (s *Session) OnTimeUpdate(t float64) Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errMsg != "" {
		return Update{}
	}

	cue := subtitle.FindActive(s.cues, t)

	var update Update
	if cue == nil {
		update.Changed = s.activeID != ""
		s.activeID = ""
		// While looping, a gap means no action: the loop never force-seeks
		// to the nearest cue.
		return update
	}

	update.Active = cue
	update.Changed = cue.ID != s.activeID
	s.activeID = cue.ID

	anns := s.annotations.ForSubtitle(cue.ID)
	for _, text := range strings.Split(cue.Text, "\n") {
		update.Lines = append(update.Lines, Line{
			Text:  text,
			Spans: annotate.ResolveSpans(text, anns),
		})
	}

	if s.loop && t >= cue.End-loopMargin {
		s.player.Seek(cue.Start)
		s.player.Play() // the seek may have paused the element
		update.Looped = true
	}

	return update
}

// OnLoadedMetadata records the media duration reported by the player.
func (s *Session) OnLoadedMetadata(duration float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = duration
}

// Duration returns the reported media duration, falling back to the last
// cue's end time when the container did not report one.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duration > 0 {
		return s.duration
	}
	return subtitle.TotalDuration(s.cues)
}

// OnEnded marks natural end of playback.
func (s *Session) OnEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.activeID = ""
}

// Ended reports whether playback reached its natural end. Cleared when a new
// document is loaded.
func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

// OnError puts the session into its failed state: synchronization halts
// (no active cue, no looping) until a new document is loaded. Playback
// errors are not locally recoverable, so they are surfaced instead of
// retried.
func (s *Session) OnError(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = reason
	s.activeID = ""
	s.loop = false
}

// Err returns the surfaced playback error, empty when healthy.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
