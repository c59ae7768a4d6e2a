package annotate

import "testing"

func TestParsePoints_CleanArray(t *testing.T) {
	points, err := parsePoints(`[
		{"type": "vocabulary", "anchor": "grab a bite", "content": "Informal phrase meaning to eat something quickly."},
		{"type": "grammar", "anchor": "gonna", "content": "Contraction of 'going to', common in speech."}
	]`)
	if err != nil {
		t.Fatalf("parsePoints: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Category != CategoryVocabulary || points[0].Anchor != "grab a bite" {
		t.Errorf("unexpected first point: %+v", points[0])
	}
}

func TestParsePoints_ProseWrappedArray(t *testing.T) {
	points, err := parsePoints("Here are the learning points:\n" +
		`[{"type": "culture", "anchor": "", "content": "A common greeting."}]` +
		"\nHope that helps!")
	if err != nil {
		t.Fatalf("parsePoints: %v", err)
	}
	if len(points) != 1 || points[0].Category != CategoryCulture {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestParsePoints_SkipsEmptyContent(t *testing.T) {
	points, err := parsePoints(`[
		{"type": "vocabulary", "anchor": "hello", "content": "  "},
		{"type": "grammar", "anchor": "there", "content": "Real explanation."}
	]`)
	if err != nil {
		t.Fatalf("parsePoints: %v", err)
	}
	if len(points) != 1 || points[0].Anchor != "there" {
		t.Fatalf("unexpected points: %+v", points)
	}
}

func TestParsePoints_NormalizesUnknownCategory(t *testing.T) {
	points, err := parsePoints(`[{"type": "idiom", "anchor": "a", "content": "b"}]`)
	if err != nil {
		t.Fatalf("parsePoints: %v", err)
	}
	if points[0].Category != CategoryCulture {
		t.Errorf("got category %q, want culture fallback", points[0].Category)
	}
}

func TestParsePoints_NotJSON(t *testing.T) {
	if _, err := parsePoints("I cannot help with that."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
