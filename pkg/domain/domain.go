package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

type Video struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Filename          string    `json:"filename"`
	ThumbnailFilename string    `json:"thumbnailFilename"`
	Owner             string    `json:"owner"`
	Views             int       `json:"views"`
	UploadedAt        time.Time `json:"uploadedAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultCategories is the fixed category set used for navigation and
// category filtering. Deployments may override it via configuration.
var DefaultCategories = []string{
	"Animation", "Memes", "Gaming", "Music",
	"Sports", "News", "Science", "Art", "Nature",
}
