package subtitle

// FindActive returns the cue whose interval contains t, or nil if the time
// falls in a gap, before the first cue or after the last. Both interval
// bounds are inclusive; loop boundaries and annotation display depend on
// that. If intervals overlap (malformed source), the first cue in sequence
// order wins.
func FindActive(cues []Cue, t float64) *Cue {
	for i := range cues {
		if t >= cues[i].Start && t <= cues[i].End {
			return &cues[i]
		}
	}
	return nil
}

// TotalDuration returns the end time of the last cue, or 0 for an empty
// document. Used as a fallback when the media container reports no duration.
func TotalDuration(cues []Cue) float64 {
	if len(cues) == 0 {
		return 0
	}
	return cues[len(cues)-1].End
}
