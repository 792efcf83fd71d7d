package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cliptube/pkg/domain"
)

// ViewVideo looks up a video by filename and counts the view. Every detail
// read counts, including the uploader's own and repeated reloads.
//
// The increment is a read-modify-write; concurrent views can under-count.
func (a *App) ViewVideo(filename string) (domain.Video, error) {
	video, ok, err := a.store.GetVideoByFilename(filename)
	if err != nil {
		return domain.Video{}, fmt.Errorf("fetch video: %w", err)
	}
	if !ok {
		return domain.Video{}, ErrNotFound
	}
	video.Views++
	if err := a.store.SaveVideo(video); err != nil {
		return domain.Video{}, fmt.Errorf("persist view count: %w", err)
	}
	return video, nil
}

// AddComment attaches a comment to the video stored under filename.
func (a *App) AddComment(filename, content string, user domain.User) (domain.Comment, error) {
	if user.Username == "" {
		return domain.Comment{}, ErrUnauthenticated
	}
	video, ok, err := a.store.GetVideoByFilename(filename)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("fetch video: %w", err)
	}
	if !ok {
		return domain.Comment{}, ErrNotFound
	}
	comment := domain.Comment{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		Author:    user.Username,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveComment(comment); err != nil {
		return domain.Comment{}, fmt.Errorf("save comment: %w", err)
	}
	return comment, nil
}

// Comments returns a video's comments in creation order.
func (a *App) Comments(videoID string) ([]domain.Comment, error) {
	return a.store.ListCommentsForVideo(videoID)
}
