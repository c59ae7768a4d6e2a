package metadata

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Meta
	}{
		{
			name: "tight SxxEyy",
			in:   "Breaking.Bad.S01E01.mkv",
			want: Meta{ShowName: "Breaking Bad", Season: "S01", Episode: "E01"},
		},
		{
			name: "spaced season episode",
			in:   "MDJT S01E03.srt",
			want: Meta{ShowName: "MDJT", Season: "S01", Episode: "E03"},
		},
		{
			name: "season without E marker",
			in:   "The_Office_S2 05.mp4",
			want: Meta{ShowName: "The Office", Season: "S02", Episode: "E05"},
		},
		{
			name: "NxNN fallback",
			in:   "Friends.1x01.avi",
			want: Meta{ShowName: "Friends", Season: "S01", Episode: "E01"},
		},
		{
			name: "no pattern",
			in:   "Some Documentary.mp4",
			want: Meta{ShowName: "Some Documentary"},
		},
		{
			name: "no extension",
			in:   "Show S03E12",
			want: Meta{ShowName: "Show", Season: "S03", Episode: "E12"},
		},
		{
			name: "lowercase marker",
			in:   "show.s01e04.mkv",
			want: Meta{ShowName: "show", Season: "S01", Episode: "E04"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Parse(c.in)
			if got != c.want {
				t.Errorf("Parse(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}
