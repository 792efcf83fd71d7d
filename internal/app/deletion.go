package app

import (
	"context"
	"fmt"
	"log/slog"

	"cliptube/pkg/domain"
)

// DeleteVideo removes a video's backing files and record, only for its
// owner. Callers cannot tell "not found" apart from "owned by someone
// else"; the distinction is logged for audit, not surfaced.
func (a *App) DeleteVideo(ctx context.Context, id string, user domain.User) error {
	if user.Username == "" {
		return ErrUnauthenticated
	}
	video, ok, err := a.store.GetVideo(id)
	if err != nil {
		return fmt.Errorf("fetch video: %w", err)
	}
	if !ok {
		slog.Debug("delete video rejected", "video_id", id, "user", user.Username, "reason", "not_found")
		return ErrNotFoundOrForbidden
	}
	if video.Owner != user.Username {
		slog.Debug("delete video rejected", "video_id", id, "user", user.Username, "reason", "forbidden")
		return ErrNotFoundOrForbidden
	}

	// Best-effort file removal: only delete what is currently present.
	for _, name := range []string{video.Filename, video.ThumbnailFilename} {
		exists, err := a.blobs.Exists(ctx, name)
		if err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if !exists {
			continue
		}
		if err := a.blobs.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	if err := a.store.DeleteVideo(id); err != nil {
		return fmt.Errorf("delete video record: %w", err)
	}
	return nil
}

// DeleteComment removes a comment, only for its author (not the video
// owner), and returns the parent video's filename so the caller can
// redirect back to the right detail page. The filename is empty if the
// parent video no longer exists.
func (a *App) DeleteComment(id string, user domain.User) (string, error) {
	if user.Username == "" {
		return "", ErrUnauthenticated
	}
	comment, ok, err := a.store.GetComment(id)
	if err != nil {
		return "", fmt.Errorf("fetch comment: %w", err)
	}
	if !ok {
		slog.Debug("delete comment rejected", "comment_id", id, "user", user.Username, "reason", "not_found")
		return "", ErrNotFoundOrForbidden
	}
	if comment.Author != user.Username {
		slog.Debug("delete comment rejected", "comment_id", id, "user", user.Username, "reason", "forbidden")
		return "", ErrNotFoundOrForbidden
	}
	video, _, err := a.store.GetVideo(comment.VideoID)
	if err != nil {
		return "", fmt.Errorf("fetch parent video: %w", err)
	}
	if err := a.store.DeleteComment(id); err != nil {
		return "", fmt.Errorf("delete comment record: %w", err)
	}
	return video.Filename, nil
}
