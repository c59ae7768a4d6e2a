package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// GenerateThumbnail creates a library thumbnail for a video file.
// Seeks to 10% of the video duration for a more representative frame.
func GenerateThumbnail(inputPath, outputDir string) (string, error) {
	os.MkdirAll(outputDir, 0755)
	outputPath := filepath.Join(outputDir, "thumb.jpg")

	// Return cached thumbnail if it exists
	if _, err := os.Stat(outputPath); err == nil {
		return outputPath, nil
	}

	seekTime := "5" // fallback: 5 seconds
	info, err := Probe(inputPath)
	if err == nil && info.Duration > 0 {
		seekTo := info.Duration * 0.10
		// Clamp: at least 1s, at most 5 minutes
		if seekTo < 1 {
			seekTo = 1
		}
		if seekTo > 300 {
			seekTo = 300
		}
		seekTime = fmt.Sprintf("%.2f", seekTo)
	}

	cmd := exec.Command("ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-ss", seekTime,
		"-i", inputPath,
		"-vframes", "1",
		"-vf", "scale=320:-1",
		"-y",
		outputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, string(output))
	}
	return outputPath, nil
}
