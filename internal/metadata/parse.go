package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Meta carries show/season/episode hints parsed from a display name.
// Used at import time to route a video into its show and season folders.
type Meta struct {
	ShowName string `json:"show_name"`
	Season   string `json:"season,omitempty"`  // normalized "S01"
	Episode  string `json:"episode,omitempty"` // normalized "E01"
}

var (
	extensionRe = regexp.MustCompile(`\.[^/.]+$`)
	// "Show.Name.S01E01" and looser "Show S1 01" variants
	seasonEpisodeRe = regexp.MustCompile(`(?i)(.*?)[ ._]S(\d+)E?\s*(\d+)`)
	// fallback "Show.1x01"
	crossRe    = regexp.MustCompile(`(?i)(.*?)[ ._](\d+)x(\d+)`)
	separators = strings.NewReplacer(".", " ", "_", " ")
)

// Parse extracts show name, season and episode from a display name. It is a
// best-effort classifier, not a validator: names that match neither pattern
// come back as show name only.
func Parse(displayName string) Meta {
	cleanName := extensionRe.ReplaceAllString(displayName, "")

	if m := seasonEpisodeRe.FindStringSubmatch(cleanName); m != nil {
		return Meta{
			ShowName: strings.TrimSpace(separators.Replace(m[1])),
			Season:   "S" + pad2(m[2]),
			Episode:  "E" + pad2(m[3]),
		}
	}

	if m := crossRe.FindStringSubmatch(cleanName); m != nil {
		return Meta{
			ShowName: strings.TrimSpace(separators.Replace(m[1])),
			Season:   "S" + pad2(m[2]),
			Episode:  "E" + pad2(m[3]),
		}
	}

	return Meta{ShowName: cleanName}
}

func pad2(digits string) string {
	n, _ := strconv.Atoi(strings.TrimSpace(digits))
	return fmt.Sprintf("%02d", n)
}
