package store

import "cliptube/pkg/domain"

// Store defines persistence operations for users, videos, and comments.
//
// Users are keyed by unique username (the session identity), videos carry a
// second unique lookup key in their generated filename (the detail-page
// identity). The two keys are deliberately independent.
type Store interface {
	// users
	SaveUser(domain.User) error
	HasUsername(username string) (bool, error)
	GetUserByUsername(username string) (domain.User, bool, error)

	// videos
	SaveVideo(domain.Video) error
	GetVideo(id string) (domain.Video, bool, error)
	GetVideoByFilename(filename string) (domain.Video, bool, error)
	HasVideoFilename(owner, filename string) (bool, error)
	ListVideos() ([]domain.Video, error)
	SearchVideos(titleQuery string) ([]domain.Video, error)
	ListVideosByCategory(category string) ([]domain.Video, error)
	ListVideosByOwner(owner string) ([]domain.Video, error)
	DeleteVideo(id string) error

	// comments
	SaveComment(domain.Comment) error
	GetComment(id string) (domain.Comment, bool, error)
	ListCommentsForVideo(videoID string) ([]domain.Comment, error)
	DeleteComment(id string) error
}

// SessionStore persists session tokens. A token resolves back to the
// username it was issued for.
type SessionStore interface {
	NewSession(username string) (string, error)
	GetUsernameByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
