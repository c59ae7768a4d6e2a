package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gao4263/CineLearn-AI/internal/job"
)

// VideoPathUpdater points a library video at its converted file. Satisfied
// by the db package.
type VideoPathUpdater interface {
	UpdateVideoPath(id, path string) error
}

// Converter remuxes containers the playback element cannot decode (MKV and
// friends) into MP4. Video is stream-copied, only the audio track is
// re-encoded, so conversion is close to I/O bound.
type Converter struct {
	mediaPath string
	store     VideoPathUpdater
}

func NewConverter(mediaPath string, store VideoPathUpdater) *Converter {
	return &Converter{mediaPath: mediaPath, store: store}
}

// HandleJob processes a conversion job from the queue.
func (c *Converter) HandleJob(ctx context.Context, j *job.Job, updateProgress func(float64)) error {
	var params job.ConvertParams
	if err := json.Unmarshal(j.Params, &params); err != nil {
		return fmt.Errorf("unmarshal params: %w", err)
	}

	inputPath := filepath.Join(c.mediaPath, params.SourcePath)
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("source video: %w", err)
	}

	outputRel := strings.TrimSuffix(params.SourcePath, filepath.Ext(params.SourcePath)) + ".mp4"
	outputPath := filepath.Join(c.mediaPath, outputRel)

	log.Printf("[convert] remuxing %s -> %s", params.SourcePath, outputRel)
	updateProgress(0.1)
	started := time.Now()

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", inputPath,
		"-c:v", "copy", // video pass-through
		"-c:a", "aac",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outputPath) // do not leave a truncated file behind
		return fmt.Errorf("ffmpeg remux: %w: %s", err, string(output))
	}

	elapsed := time.Since(started)
	log.Printf("[convert] remux complete: %s (%.1fs)", outputRel, elapsed.Seconds())

	if c.store != nil && j.VideoID != "" {
		if err := c.store.UpdateVideoPath(j.VideoID, outputRel); err != nil {
			return fmt.Errorf("update video path: %w", err)
		}
	}

	resultJSON, _ := json.Marshal(job.ConvertResult{
		OutputPath: outputRel,
		Duration:   elapsed.Seconds(),
	})
	j.Result = resultJSON

	updateProgress(1.0)
	return nil
}
