package playback

import (
	"testing"

	"github.com/gao4263/CineLearn-AI/internal/annotate"
	"github.com/gao4263/CineLearn-AI/internal/subtitle"
)

type fakePlayer struct {
	seeks []float64
	plays int
}

func (p *fakePlayer) Seek(target float64) { p.seeks = append(p.seeks, target) }
func (p *fakePlayer) Play()               { p.plays++ }

// memorySource is a mutable annotation store; tests grow it between calls
// the way the generation job does in production.
type memorySource struct {
	items []annotate.Annotation
}

func (s *memorySource) ForSubtitle(subtitleID string) []annotate.Annotation {
	var out []annotate.Annotation
	for _, a := range s.items {
		if a.SubtitleID == subtitleID {
			out = append(out, a)
		}
	}
	return out
}

func testCues() []subtitle.Cue {
	return []subtitle.Cue{
		{ID: "sub-0_5", Index: 1, Start: 5.0, End: 8.0, Text: "Hello there\n你好"},
		{ID: "sub-1_10", Index: 2, Start: 10.0, End: 12.0, Text: "Bye"},
	}
}

func newTestSession(src AnnotationSource) (*Session, *fakePlayer) {
	player := &fakePlayer{}
	if src == nil {
		src = &memorySource{}
	}
	s := NewSession(player, src)
	s.LoadDocument(testCues())
	return s, player
}

func TestOnTimeUpdate_ActiveCueAndChange(t *testing.T) {
	s, _ := newTestSession(nil)

	u := s.OnTimeUpdate(6.0)
	if u.Active == nil || u.Active.ID != "sub-0_5" {
		t.Fatalf("t=6.0 should activate first cue, got %+v", u.Active)
	}
	if !u.Changed {
		t.Error("first activation must report Changed")
	}
	if len(u.Lines) != 2 {
		t.Errorf("expected 2 display lines, got %d", len(u.Lines))
	}

	// Same cue again: no change signal.
	u = s.OnTimeUpdate(7.0)
	if u.Changed {
		t.Error("same cue should not report Changed")
	}

	// Into the gap: active clears, change fires once.
	u = s.OnTimeUpdate(9.0)
	if u.Active != nil {
		t.Errorf("t=9.0 is a gap, got active %+v", u.Active)
	}
	if !u.Changed {
		t.Error("leaving a cue must report Changed")
	}
	if u = s.OnTimeUpdate(9.5); u.Changed {
		t.Error("staying in the gap should not report Changed")
	}
}

func TestOnTimeUpdate_LoopReseek(t *testing.T) {
	s, player := newTestSession(nil)
	s.SetLoop(true)

	// Inside the cue but before the margin: no seek.
	u := s.OnTimeUpdate(7.0)
	if u.Looped || len(player.seeks) != 0 {
		t.Fatalf("t=7.0 must not trigger a loop seek, got seeks=%v", player.seeks)
	}

	// Within 100ms of the end: seek back to the cue start and keep playing.
	u = s.OnTimeUpdate(7.95)
	if !u.Looped {
		t.Fatal("t=7.95 should trigger the loop seek")
	}
	if len(player.seeks) != 1 || player.seeks[0] != 5.0 {
		t.Errorf("expected seek to 5.0, got %v", player.seeks)
	}
	if player.plays != 1 {
		t.Errorf("loop seek must request playback resume, got %d play calls", player.plays)
	}
}

func TestOnTimeUpdate_LoopInGapDoesNothing(t *testing.T) {
	s, player := newTestSession(nil)
	s.SetLoop(true)

	s.OnTimeUpdate(9.0)
	if len(player.seeks) != 0 || player.plays != 0 {
		t.Errorf("looping in a gap must not force-seek, got seeks=%v plays=%d", player.seeks, player.plays)
	}
}

func TestOnTimeUpdate_LoopToggleOff(t *testing.T) {
	s, player := newTestSession(nil)
	s.SetLoop(true)
	s.SetLoop(false)

	if u := s.OnTimeUpdate(7.95); u.Looped || len(player.seeks) != 0 {
		t.Error("loop disabled before the update must not seek")
	}
}

func TestOnTimeUpdate_BackwardJumpIsSafe(t *testing.T) {
	s, _ := newTestSession(nil)

	s.OnTimeUpdate(11.0)
	u := s.OnTimeUpdate(6.0) // user seeked backwards
	if u.Active == nil || u.Active.ID != "sub-0_5" {
		t.Fatalf("backward jump should re-match the earlier cue, got %+v", u.Active)
	}
	if !u.Changed {
		t.Error("cue change across a backward jump must be reported")
	}
}

func TestOnTimeUpdate_GrowingAnnotations(t *testing.T) {
	src := &memorySource{}
	s, _ := newTestSession(src)

	u := s.OnTimeUpdate(6.0)
	if len(u.Lines[0].Spans) != 0 {
		t.Fatalf("no annotations yet, got spans %+v", u.Lines[0].Spans)
	}

	// Generation finishes between clock ticks.
	src.items = append(src.items, annotate.Annotation{
		SubtitleID: "sub-0_5",
		Anchor:     "Hello",
		Category:   annotate.CategoryVocabulary,
	})

	u = s.OnTimeUpdate(6.5)
	if len(u.Lines[0].Spans) != 1 {
		t.Fatalf("expected new annotation to be picked up, got %+v", u.Lines[0].Spans)
	}
	if u.Lines[0].Spans[0].Start != 0 || u.Lines[0].Spans[0].End != 5 {
		t.Errorf("span = %+v, want [0, 5)", u.Lines[0].Spans[0])
	}
	// Second line is the other language layer: anchor not present, no span.
	if len(u.Lines[1].Spans) != 0 {
		t.Errorf("anchor must not match the other language line, got %+v", u.Lines[1].Spans)
	}
}

func TestOnError_HaltsUntilNewDocument(t *testing.T) {
	s, player := newTestSession(nil)
	s.SetLoop(true)
	s.OnError("decode failure")

	if s.Err() != "decode failure" {
		t.Fatalf("Err() = %q, want surfaced reason", s.Err())
	}
	u := s.OnTimeUpdate(7.95)
	if u.Active != nil || u.Looped || len(player.seeks) != 0 {
		t.Error("failed session must not sync or loop")
	}
	if s.Looping() {
		t.Error("error must disable looping")
	}

	// Loading a new document clears the failure.
	s.LoadDocument(testCues())
	if s.Err() != "" {
		t.Error("LoadDocument must clear the error state")
	}
	if u := s.OnTimeUpdate(6.0); u.Active == nil {
		t.Error("session must sync again after a new document is loaded")
	}
}

func TestOnEnded_FlagAndReset(t *testing.T) {
	s, _ := newTestSession(nil)

	s.OnTimeUpdate(6.0)
	s.OnEnded()
	if !s.Ended() {
		t.Fatal("Ended() should report true after OnEnded")
	}

	// The active cue is dropped so the next tick reports a change.
	u := s.OnTimeUpdate(6.0)
	if !u.Changed {
		t.Error("tick after OnEnded should report Changed")
	}

	s.LoadDocument(testCues())
	if s.Ended() {
		t.Error("loading a new document must clear the ended flag")
	}
}

func TestLoadDocument_AtomicReplace(t *testing.T) {
	s, _ := newTestSession(nil)
	s.OnTimeUpdate(6.0)

	s.LoadDocument([]subtitle.Cue{{ID: "sub-0_100", Start: 100.0, End: 105.0, Text: "new"}})

	// Stale clock value from the old video: matches nothing in the new
	// document, and the active-reset means Changed is not spuriously set.
	u := s.OnTimeUpdate(6.0)
	if u.Active != nil {
		t.Errorf("stale clock must not match the new document, got %+v", u.Active)
	}
	if u.Changed {
		t.Error("active record was reset on load; no change to report")
	}
}

func TestDuration_FallsBackToCues(t *testing.T) {
	s, _ := newTestSession(nil)
	if d := s.Duration(); d != 12.0 {
		t.Errorf("duration fallback = %v, want last cue end 12.0", d)
	}
	s.OnLoadedMetadata(600.0)
	if d := s.Duration(); d != 600.0 {
		t.Errorf("duration = %v, want reported 600.0", d)
	}
}

func TestManager_OpenGetClose(t *testing.T) {
	m := NewManager(&memorySource{})

	ms := m.Open("sess1", "vid1")
	ms.Session.LoadDocument(testCues())
	ms.Session.SetLoop(true)
	ms.Session.OnTimeUpdate(7.95)

	got, err := m.Get("sess1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	cmds := got.Commands.Drain()
	if len(cmds) != 2 || cmds[0].Type != "seek" || cmds[0].Target != 5.0 || cmds[1].Type != "play" {
		t.Errorf("expected seek+play commands, got %+v", cmds)
	}
	if len(got.Commands.Drain()) != 0 {
		t.Error("drain must clear pending commands")
	}

	m.Close("sess1")
	if _, err := m.Get("sess1"); err == nil {
		t.Error("closed session must not be found")
	}
}
