package app

import "errors"

// Workflow failures surfaced to the presentation layer. All are recoverable;
// handlers map them to a status code and user-visible message.
var (
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnauthenticated     = errors.New("login required")
	ErrDuplicateUpload     = errors.New("a video with the same filename already exists")
	ErrThumbnailExtraction = errors.New("failed to read the video frame")
	ErrNotFound            = errors.New("video not found")
	ErrNotFoundOrForbidden = errors.New("not found or you are not authorized")
	ErrUserNotFound        = errors.New("user not found")
)
