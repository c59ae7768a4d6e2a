package annotate

import "testing"

func TestResolveSpans_Basic(t *testing.T) {
	spans := ResolveSpans("I kicked the bucket yesterday", []Annotation{
		{Anchor: "kicked the bucket", Category: CategoryVocabulary},
	})
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 2 || spans[0].End != 19 {
		t.Errorf("span = [%d, %d), want [2, 19)", spans[0].Start, spans[0].End)
	}
	if spans[0].Category != CategoryVocabulary {
		t.Errorf("span category = %q, want vocabulary", spans[0].Category)
	}
}

func TestResolveSpans_OverlapKeepsEarlier(t *testing.T) {
	spans := ResolveSpans("I kicked the bucket yesterday", []Annotation{
		{Anchor: "kicked the bucket", Category: CategoryVocabulary},
		{Anchor: "the bucket", Category: CategoryGrammar},
	})
	if len(spans) != 1 {
		t.Fatalf("expected overlapping anchor to be discarded, got %d spans", len(spans))
	}
	if spans[0].Category != CategoryVocabulary {
		t.Errorf("kept span category = %q, want the earlier-starting vocabulary span", spans[0].Category)
	}
}

func TestResolveSpans_DisjointSorted(t *testing.T) {
	// Annotations arrive in arbitrary order; spans return left to right.
	spans := ResolveSpans("the quick brown fox", []Annotation{
		{Anchor: "fox", Category: CategoryCulture},
		{Anchor: "quick", Category: CategoryVocabulary},
	})
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Start != 4 || spans[0].End != 9 {
		t.Errorf("first span = [%d, %d), want [4, 9)", spans[0].Start, spans[0].End)
	}
	if spans[1].Start != 16 || spans[1].End != 19 {
		t.Errorf("second span = [%d, %d), want [16, 19)", spans[1].Start, spans[1].End)
	}
}

func TestResolveSpans_CaseInsensitive(t *testing.T) {
	spans := ResolveSpans("Hello World", []Annotation{{Anchor: "hello world", Category: CategoryGrammar}})
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != 11 {
		t.Fatalf("case-insensitive match failed, got %+v", spans)
	}
}

func TestResolveSpans_AnchorNotFound(t *testing.T) {
	spans := ResolveSpans("你好世界", []Annotation{
		{Anchor: "hello", Category: CategoryVocabulary},
		{Anchor: "", Category: CategoryGrammar},
	})
	if len(spans) != 0 {
		t.Errorf("missing anchors must yield no spans, got %+v", spans)
	}
}

func TestResolveSpans_FirstOccurrenceOnly(t *testing.T) {
	spans := ResolveSpans("go go go", []Annotation{{Anchor: "go", Category: CategoryVocabulary}})
	if len(spans) != 1 {
		t.Fatalf("expected only the first occurrence, got %d spans", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != 2 {
		t.Errorf("span = [%d, %d), want [0, 2)", spans[0].Start, spans[0].End)
	}
}

func TestResolveSpans_UTF16Offsets(t *testing.T) {
	// "𝄞" is outside the BMP: two UTF-16 code units.
	spans := ResolveSpans("𝄞 music", []Annotation{{Anchor: "music", Category: CategoryCulture}})
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 3 || spans[0].End != 8 {
		t.Errorf("span = [%d, %d), want UTF-16 offsets [3, 8)", spans[0].Start, spans[0].End)
	}
}

func TestNormalize(t *testing.T) {
	a := Normalize(Annotation{Category: "weird"})
	if a.Category != CategoryCulture {
		t.Errorf("unknown category should fall back to culture, got %q", a.Category)
	}
	b := Normalize(Annotation{Category: CategoryGrammar})
	if b.Category != CategoryGrammar {
		t.Errorf("valid category must pass through, got %q", b.Category)
	}
}
