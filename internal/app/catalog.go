package app

import (
	"fmt"

	"cliptube/pkg/domain"
)

// ListVideos returns all videos in the store's natural order.
func (a *App) ListVideos() ([]domain.Video, error) {
	return a.store.ListVideos()
}

// SearchVideos returns videos whose title contains the query substring.
// An empty query is equivalent to ListVideos.
func (a *App) SearchVideos(query string) ([]domain.Video, error) {
	if query == "" {
		return a.store.ListVideos()
	}
	return a.store.SearchVideos(query)
}

// VideosByCategory returns videos whose category matches exactly. Unknown
// categories yield an empty result, not an error.
func (a *App) VideosByCategory(category string) ([]domain.Video, error) {
	return a.store.ListVideosByCategory(category)
}

// VideosByUser returns the given user's uploads.
func (a *App) VideosByUser(username string) ([]domain.Video, error) {
	exists, err := a.store.HasUsername(username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}
	return a.store.ListVideosByOwner(username)
}
