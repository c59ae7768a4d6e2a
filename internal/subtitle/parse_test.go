package subtitle

import (
	"testing"
)

const twoCueSRT = "1\n00:00:01,000 --> 00:00:03,000\nHello\n你好\n\n2\n00:00:05,000 --> 00:00:07,000\nBye\n"

func TestParse_TwoCues(t *testing.T) {
	cues := Parse(twoCueSRT)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}

	first := cues[0]
	if first.Start != 1.0 || first.End != 3.0 {
		t.Errorf("first cue timing = [%v, %v], want [1, 3]", first.Start, first.End)
	}
	if first.Text != "Hello\n你好" {
		t.Errorf("first cue text = %q, want both language lines joined by newline", first.Text)
	}
	if first.Index != 1 {
		t.Errorf("first cue index = %d, want 1", first.Index)
	}

	second := cues[1]
	if second.Start != 5.0 || second.End != 7.0 {
		t.Errorf("second cue timing = [%v, %v], want [5, 7]", second.Start, second.End)
	}
	if second.Text != "Bye" {
		t.Errorf("second cue text = %q, want 'Bye'", second.Text)
	}
}

func TestParse_StableIDs(t *testing.T) {
	cues := Parse(twoCueSRT)
	if cues[0].ID != "sub-0_1" {
		t.Errorf("first cue id = %q, want 'sub-0_1'", cues[0].ID)
	}
	if cues[1].ID != "sub-1_5" {
		t.Errorf("second cue id = %q, want 'sub-1_5'", cues[1].ID)
	}

	// Fractional start times use '-' in place of the decimal point.
	cues = Parse("1\n00:00:01,500 --> 00:00:03,000\nHi\n")
	if cues[0].ID != "sub-0_1-5" {
		t.Errorf("fractional start id = %q, want 'sub-0_1-5'", cues[0].ID)
	}
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse(twoCueSRT)
	b := Parse(twoCueSRT)
	if len(a) != len(b) {
		t.Fatalf("decode counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("cue %d differs between decodes: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParse_DropsMalformedBlock(t *testing.T) {
	// Middle block has no timecode line; it must be dropped without
	// disturbing the ids of the surviving cues.
	doc := "1\n00:00:01,000 --> 00:00:03,000\nFirst\n\n" +
		"2\nnot a timecode\nBroken\n\n" +
		"3\n00:00:05,000 --> 00:00:07,000\nThird\n"

	cues := Parse(doc)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues after dropping malformed block, got %d", len(cues))
	}
	if cues[0].ID != "sub-0_1" {
		t.Errorf("first cue id = %q, want 'sub-0_1'", cues[0].ID)
	}
	// Id derives from the source block position, so the third block keeps
	// index 2 even though only two cues survived.
	if cues[1].ID != "sub-2_5" {
		t.Errorf("surviving cue id = %q, want 'sub-2_5'", cues[1].ID)
	}
}

func TestParse_TagStripping(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:03,000\n{\\an8}Hello <i>world</i>\n"
	cues := Parse(doc)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Hello world" {
		t.Errorf("text = %q, want 'Hello world'", cues[0].Text)
	}
}

func TestParse_DropsCueEmptyAfterCleaning(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:03,000\n{\\pos(1,2)}<i></i>\n\n" +
		"2\n00:00:05,000 --> 00:00:07,000\nKept\n"
	cues := Parse(doc)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Kept" {
		t.Errorf("surviving cue text = %q, want 'Kept'", cues[0].Text)
	}
}

func TestParse_CollapsesWhitespace(t *testing.T) {
	doc := "1\n00:00:01,000 --> 00:00:03,000\n  Hello    there \n"
	cues := Parse(doc)
	if len(cues) != 1 || cues[0].Text != "Hello there" {
		t.Fatalf("got %+v, want single cue with text 'Hello there'", cues)
	}
}

func TestParse_LineEndings(t *testing.T) {
	crlf := "1\r\n00:00:01,000 --> 00:00:03,000\r\nHello\r\n\r\n2\r\n00:00:05,000 --> 00:00:07,000\r\nBye\r\n"
	cr := "1\r00:00:01,000 --> 00:00:03,000\rHello\r\r2\r00:00:05,000 --> 00:00:07,000\rBye\r"

	for name, doc := range map[string]string{"crlf": crlf, "cr": cr} {
		cues := Parse(doc)
		if len(cues) != 2 {
			t.Errorf("%s: expected 2 cues, got %d", name, len(cues))
		}
	}
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	cues := Parse("\uFEFF" + twoCueSRT)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues from BOM-prefixed document, got %d", len(cues))
	}
	if cues[0].ID != "sub-0_1" {
		t.Errorf("first cue id = %q, want 'sub-0_1'", cues[0].ID)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "\n\n\n", "garbage"} {
		if cues := Parse(doc); len(cues) != 0 {
			t.Errorf("Parse(%q) = %d cues, want 0", doc, len(cues))
		}
	}
}

func TestTimecodeToSeconds(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"00:00:00,000", 0},
		{"00:00:01,500", 1.5},
		{"00:01:00,000", 60},
		{"01:02:03,450", 3723.45},
	}
	for _, c := range cases {
		if got := timecodeToSeconds(c.in); got != c.want {
			t.Errorf("timecodeToSeconds(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
