package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNeedsConversion(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"show.mkv", true},
		{"show.MKV", true},
		{"clip.avi", true},
		{"old.wmv", true},
		{"flash.flv", true},
		{"movie.mp4", false},
		{"movie.webm", false},
		{"notes.txt", false},
	}
	for _, tt := range tests {
		if got := NeedsConversion(tt.name); got != tt.want {
			t.Errorf("NeedsConversion(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFindSubtitleFor(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "show.mkv")
	touch(t, dir, "show.srt")
	touch(t, dir, "show.en.srt")
	touch(t, dir, "other.srt")
	touch(t, dir, "orphan.mkv")
	touch(t, dir, "prefixed.mp4")
	touch(t, dir, "prefixed.zh.srt")

	if got := FindSubtitleFor(dir, "show.mkv"); got != "show.srt" {
		t.Errorf("exact match: got %q, want show.srt", got)
	}
	if got := FindSubtitleFor(dir, "prefixed.mp4"); got != "prefixed.zh.srt" {
		t.Errorf("prefix fallback: got %q, want prefixed.zh.srt", got)
	}
	if got := FindSubtitleFor(dir, "orphan.mkv"); got != "" {
		t.Errorf("no sibling: got %q, want empty", got)
	}
}

func TestListDirectoryRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	if _, err := ListDirectory(dir, "../.."); err == nil {
		t.Fatal("expected error for path traversal, got nil")
	}
}

func TestListDirectoryFiltersEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mp4")
	touch(t, dir, "movie.srt")
	touch(t, dir, "readme.txt")
	touch(t, dir, ".hidden.mp4")
	if err := os.Mkdir(filepath.Join(dir, "season1"), 0755); err != nil {
		t.Fatal(err)
	}

	entries, err := ListDirectory(dir, "")
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}

	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name] = true
	}
	for _, want := range []string{"movie.mp4", "movie.srt", "season1"} {
		if !names[want] {
			t.Errorf("missing entry %q in %v", want, names)
		}
	}
	if names["readme.txt"] || names[".hidden.mp4"] {
		t.Errorf("unexpected entries in %v", names)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}
