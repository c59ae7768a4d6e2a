package storage

import (
	"os"
	"path/filepath"
	"strings"
)

type FileEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size,omitempty"`
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true,
	".wmv": true, ".flv": true, ".webm": true, ".m4v": true,
}

var subtitleExtensions = map[string]bool{
	".srt": true,
}

func IsVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

func IsSubtitleFile(name string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(name))]
}

// NeedsConversion reports whether the container must be remuxed before the
// playback element can decode it.
func NeedsConversion(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".mkv" || ext == ".avi" || ext == ".wmv" || ext == ".flv"
}

// ListDirectory lists importable entries (directories, videos, subtitles)
// under basePath/relativePath.
func ListDirectory(basePath, relativePath string) ([]*FileEntry, error) {
	fullPath := filepath.Join(basePath, relativePath)

	// Prevent path traversal
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	absFull, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(absFull, absBase) {
		return nil, os.ErrPermission
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, err
	}

	var result []*FileEntry
	for _, entry := range entries {
		// Skip hidden files
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !entry.IsDir() && !IsVideoFile(entry.Name()) && !IsSubtitleFile(entry.Name()) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		fe := &FileEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(relativePath, entry.Name()),
			IsDir: entry.IsDir(),
		}
		if !entry.IsDir() {
			fe.Size = info.Size()
		}
		result = append(result, fe)
	}
	return result, nil
}

// FindSubtitleFor returns the sibling subtitle file for a video, preferring
// an exact basename match ("show.mkv" -> "show.srt") and falling back to
// any subtitle sharing the basename prefix ("show.en.srt"). Empty when the
// video has no sibling subtitle.
func FindSubtitleFor(basePath, videoRelPath string) string {
	fullPath := filepath.Join(basePath, videoRelPath)
	videoDir := filepath.Dir(fullPath)
	videoBase := strings.TrimSuffix(filepath.Base(fullPath), filepath.Ext(fullPath))

	entries, err := os.ReadDir(videoDir)
	if err != nil {
		return ""
	}

	var fallback string
	for _, entry := range entries {
		if entry.IsDir() || !IsSubtitleFile(entry.Name()) {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		rel := filepath.Join(filepath.Dir(videoRelPath), entry.Name())
		if base == videoBase {
			return rel
		}
		if fallback == "" && strings.HasPrefix(base, videoBase) {
			fallback = rel
		}
	}
	return fallback
}
