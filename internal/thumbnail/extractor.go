// Package thumbnail turns the first readable frame of an uploaded video into
// a fixed-size JPEG still.
package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"

	"github.com/disintegration/imaging"
)

// Thumbnails are rendered onto a fixed canvas; frames are stretched to fit.
const (
	Width  = 320
	Height = 240
)

// Extractor produces the first readable frame of a video stream.
type Extractor interface {
	ExtractFirstFrame(ctx context.Context, video io.Reader) (image.Image, error)
}

// FFmpegExtractor shells out to ffmpeg to decode frame 0.
type FFmpegExtractor struct {
	ffmpegPath string
}

// NewFFmpegExtractor builds an extractor using the given ffmpeg binary.
func NewFFmpegExtractor(ffmpegPath string) *FFmpegExtractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &FFmpegExtractor{ffmpegPath: ffmpegPath}
}

// ExtractFirstFrame decodes the first frame of the video as a PNG image.
func (e *FFmpegExtractor) ExtractFirstFrame(ctx context.Context, video io.Reader) (image.Image, error) {
	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.ffmpegPath,
		"-i", "pipe:0",
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	)
	cmd.Stdin = video
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w (%s)", err, firstLine(stderr.String()))
	}
	if out.Len() == 0 {
		return nil, errors.New("no readable frame")
	}
	frame, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return frame, nil
}

// Render stretches a frame onto the fixed canvas and encodes it as JPEG.
func Render(frame image.Image) ([]byte, error) {
	thumb := imaging.Resize(frame, Width, Height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
