package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"cliptube/internal/thumbnail"
	"cliptube/pkg/domain"
)

const thumbnailPrefix = "thumbnail_"

// UploadInput carries the multipart form fields of an upload request.
// Category is expected to be one of the fixed categories but is not
// validated.
type UploadInput struct {
	Title       string
	Description string
	Category    string
	Filename    string // original filename as sent by the client
	File        io.Reader
}

// UploadVideo stores the raw file, extracts a first-frame thumbnail and
// persists the video record.
//
// The file write, thumbnail write and record insert are three separate
// non-transactional steps: a failure after the file write leaves the file in
// place with no record.
func (a *App) UploadVideo(ctx context.Context, user domain.User, in UploadInput) (domain.Video, error) {
	if user.Username == "" {
		return domain.Video{}, ErrUnauthenticated
	}
	filename := generateFilename(in.Filename)

	// The filename embeds a timestamp and a random suffix, so this lookup
	// is expected to miss; it rejects the residual collision case outright.
	dup, err := a.store.HasVideoFilename(user.Username, filename)
	if err != nil {
		return domain.Video{}, fmt.Errorf("check filename: %w", err)
	}
	if dup {
		return domain.Video{}, ErrDuplicateUpload
	}

	if err := a.blobs.Save(ctx, filename, in.File); err != nil {
		return domain.Video{}, fmt.Errorf("save video file: %w", err)
	}

	thumbnailFilename, err := a.writeThumbnail(ctx, filename)
	if err != nil {
		// The stored video file is intentionally left in place.
		return domain.Video{}, err
	}

	video := domain.Video{
		ID:                uuid.NewString(),
		Title:             in.Title,
		Description:       in.Description,
		Category:          in.Category,
		Filename:          filename,
		ThumbnailFilename: thumbnailFilename,
		Owner:             user.Username,
		Views:             0,
		UploadedAt:        time.Now().UTC(),
	}
	if err := a.store.SaveVideo(video); err != nil {
		return domain.Video{}, fmt.Errorf("save video record: %w", err)
	}
	return video, nil
}

// writeThumbnail reads the stored video back, grabs its first frame and
// stores the rendered 320x240 JPEG next to it.
func (a *App) writeThumbnail(ctx context.Context, videoFilename string) (string, error) {
	rc, err := a.blobs.Open(ctx, videoFilename)
	if err != nil {
		return "", fmt.Errorf("reopen video file: %w", err)
	}
	defer rc.Close()

	frame, err := a.extractor.ExtractFirstFrame(ctx, rc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrThumbnailExtraction, err)
	}
	jpg, err := thumbnail.Render(frame)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrThumbnailExtraction, err)
	}
	name := thumbnailPrefix + videoFilename + ".jpg"
	if err := a.blobs.Save(ctx, name, bytes.NewReader(jpg)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}
	return name, nil
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateFilename combines the current Unix timestamp, an 8-character
// random alphanumeric suffix and the original filename.
func generateFilename(original string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return ts + "_" + randomSuffix(8) + "_" + filepath.Base(original)
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.IntN(len(suffixAlphabet))]
	}
	return string(b)
}
