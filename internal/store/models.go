package store

import "time"

// GORM models used for persistence.
type UserModel struct {
	ID        string    `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type VideoModel struct {
	ID                string `gorm:"primaryKey"`
	Title             string `gorm:"not null"`
	Description       string
	Category          string    `gorm:"not null;index"`
	Filename          string    `gorm:"uniqueIndex;not null"`
	ThumbnailFilename string    `gorm:"not null"`
	Owner             string    `gorm:"not null;index"`
	Views             int       `gorm:"not null;default:0"`
	UploadedAt        time.Time `gorm:"not null"`
}

type CommentModel struct {
	ID        string    `gorm:"primaryKey"`
	VideoID   string    `gorm:"not null;index"`
	Author    string    `gorm:"not null;index"`
	Content   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}
