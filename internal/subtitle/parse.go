package subtitle

import (
	"regexp"
	"strconv"
	"strings"
)

// Cue is a single subtitle entry with timing. Cues are created in one batch
// by Parse and never mutated afterwards.
type Cue struct {
	ID    string  `json:"id"`
	Index int     `json:"index"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
	Text  string  `json:"text"`
}

var (
	timecodeRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2},\d{3}) --> (\d{2}:\d{2}:\d{2},\d{3})`)
	blockSepRe = regexp.MustCompile(`\n\n+`)
	braceTagRe = regexp.MustCompile(`\{[^}]*\}`)
	angleTagRe = regexp.MustCompile(`<[^>]*>`)
	spaceRunRe = regexp.MustCompile(`\s+`)
)

// Parse decodes SRT content into cues. Malformed blocks (missing or bad
// timecode line, no text left after cleaning) are dropped, not reported:
// subtitle files in the wild are frequently slightly broken and one bad cue
// must not take down the whole document. An empty or unparseable document
// yields no cues and no error.
func Parse(raw string) []Cue {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimPrefix(normalized, "\uFEFF")

	blocks := blockSepRe.Split(strings.TrimSpace(normalized), -1)

	var cues []Cue
	for i, block := range blocks {
		lines := strings.Split(block, "\n")
		// Need at least index line, timecode line and one text line.
		// The source-provided index is not trusted; position decides.
		if len(lines) < 3 {
			continue
		}

		m := timecodeRe.FindStringSubmatch(lines[1])
		if m == nil {
			continue
		}

		var textLines []string
		for _, line := range lines[2:] {
			if cleaned := cleanText(line); cleaned != "" {
				textLines = append(textLines, cleaned)
			}
		}
		if len(textLines) == 0 {
			continue
		}

		start := timecodeToSeconds(m[1])
		cues = append(cues, Cue{
			// Derived from the source block position and start time so that
			// re-parsing the same file yields identical ids across restarts.
			// Saved words and corpus items reference cues by this id.
			ID:    stableID(i, start),
			Index: i + 1,
			Start: start,
			End:   timecodeToSeconds(m[2]),
			// One line per language layer, original order kept.
			Text: strings.Join(textLines, "\n"),
		})
	}

	return cues
}

// cleanText strips SSA/ASS style directives like {\an8}, HTML-ish tags like
// <i>, and collapses whitespace runs.
func cleanText(line string) string {
	line = braceTagRe.ReplaceAllString(line, "")
	line = angleTagRe.ReplaceAllString(line, "")
	line = spaceRunRe.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// stableID builds the deterministic cue id: "sub-" + zero-based source block
// index + "_" + start seconds with the decimal point replaced by '-'.
func stableID(blockIndex int, start float64) string {
	s := strconv.FormatFloat(start, 'f', -1, 64)
	return "sub-" + strconv.Itoa(blockIndex) + "_" + strings.Replace(s, ".", "-", 1)
}

// timecodeToSeconds converts "HH:MM:SS,mmm" to seconds. Callers only pass
// strings already matched by timecodeRe.
func timecodeToSeconds(ts string) float64 {
	parts := strings.Split(ts, ":")
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	secParts := strings.Split(parts[2], ",")
	s, _ := strconv.Atoi(secParts[0])
	ms, _ := strconv.Atoi(secParts[1])
	return float64(h*3600+m*60+s) + float64(ms)/1000.0
}
