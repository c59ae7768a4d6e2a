package subtitle

import "testing"

func TestFindActive_InclusiveBounds(t *testing.T) {
	cues := []Cue{{ID: "sub-0_10", Start: 10.0, End: 12.0, Text: "hi"}}

	if c := FindActive(cues, 10.0); c == nil || c.ID != "sub-0_10" {
		t.Errorf("t=10.0 (start boundary) should match, got %v", c)
	}
	if c := FindActive(cues, 12.0); c == nil || c.ID != "sub-0_10" {
		t.Errorf("t=12.0 (end boundary) should match, got %v", c)
	}
	if c := FindActive(cues, 9.999); c != nil {
		t.Errorf("t=9.999 should not match, got %v", c)
	}
	if c := FindActive(cues, 12.001); c != nil {
		t.Errorf("t=12.001 should not match, got %v", c)
	}
}

func TestFindActive_GapsAndOrder(t *testing.T) {
	cues := Parse(twoCueSRT)

	if c := FindActive(cues, 2.0); c == nil || c.Index != 1 {
		t.Errorf("t=2.0 should hit first cue, got %v", c)
	}
	if c := FindActive(cues, 4.0); c != nil {
		t.Errorf("t=4.0 falls in the gap, got %v", c)
	}
	if c := FindActive(cues, 6.0); c == nil || c.Index != 2 {
		t.Errorf("t=6.0 should hit second cue, got %v", c)
	}
}

func TestFindActive_OverlapFirstWins(t *testing.T) {
	cues := []Cue{
		{ID: "a", Start: 1.0, End: 5.0},
		{ID: "b", Start: 3.0, End: 7.0},
	}
	if c := FindActive(cues, 4.0); c == nil || c.ID != "a" {
		t.Errorf("overlap tie-break should pick first cue, got %v", c)
	}
}

func TestFindActive_Empty(t *testing.T) {
	if c := FindActive(nil, 1.0); c != nil {
		t.Errorf("empty cue list should return nil, got %v", c)
	}
}

func TestTotalDuration(t *testing.T) {
	if d := TotalDuration(nil); d != 0 {
		t.Errorf("TotalDuration(nil) = %v, want 0", d)
	}
	if d := TotalDuration(Parse(twoCueSRT)); d != 7.0 {
		t.Errorf("TotalDuration = %v, want 7", d)
	}
}
