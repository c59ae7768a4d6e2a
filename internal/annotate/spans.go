package annotate

import (
	"sort"
	"unicode"
	"unicode/utf16"
)

// Span is a highlighted range within a subtitle line, in UTF-16 code unit
// offsets (the unit the frontend's string indexing uses). End is exclusive.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"type"`
}

// ResolveSpans computes the non-overlapping highlight spans for one
// displayed subtitle line. For each annotation the anchor is searched
// case-insensitively; only its first occurrence counts. Candidates are then
// sorted by start offset and kept greedily: a span survives only if it
// starts at or after the end of the previously kept one, so nested or
// overlapping anchors resolve to the earlier-starting span and the collider
// is discarded outright.
//
// Anchors that do not occur in the line (for instance because the line is
// the other language layer than the anchor was generated against) are
// skipped silently.
func ResolveSpans(lineText string, annotations []Annotation) []Span {
	lineRunes := []rune(lineText)

	var candidates []Span
	for _, a := range annotations {
		if a.Anchor == "" {
			continue
		}
		start, end, ok := foldIndex(lineRunes, []rune(a.Anchor))
		if !ok {
			continue
		}
		candidates = append(candidates, Span{Start: start, End: end, Category: a.Category})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Start < candidates[j].Start
	})

	var kept []Span
	lastEnd := 0
	for _, c := range candidates {
		if c.Start >= lastEnd {
			kept = append(kept, c)
			lastEnd = c.End
		}
	}
	return kept
}

// foldIndex finds the first case-insensitive occurrence of needle in
// haystack and returns its bounds in UTF-16 code units. Matching is done
// rune-wise so offsets stay exact even when case conversion would change a
// rune's encoded length.
func foldIndex(haystack, needle []rune) (start, end int, ok bool) {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0, 0, false
	}

	offset := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if foldEqual(haystack[i:i+len(needle)], needle) {
			return offset, offset + utf16Len(needle), true
		}
		offset += utf16RuneLen(haystack[i])
	}
	return 0, 0, false
}

func foldEqual(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}

func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += utf16RuneLen(r)
	}
	return n
}

// utf16RuneLen reports the number of 16-bit code units needed to encode r
// (utf16.RuneLen is unavailable before Go 1.23).
func utf16RuneLen(r rune) int {
	return len(utf16.Encode([]rune{r}))
}
