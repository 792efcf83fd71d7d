package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cliptube/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &VideoModel{}, &CommentModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveUser inserts a user record. Usernames never change after creation.
func (s *GormStore) SaveUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Create(&model).Error
}

// HasUsername checks if a username is already taken.
func (s *GormStore) HasUsername(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByUsername looks up a user by username.
func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// SaveVideo stores or updates a video record.
func (s *GormStore) SaveVideo(v domain.Video) error {
	model := videoToModel(v)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "thumbnail_filename", "owner", "views", "uploaded_at"}),
	}).Create(&model).Error
}

// GetVideo retrieves a video by ID.
func (s *GormStore) GetVideo(id string) (domain.Video, bool, error) {
	var model VideoModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Video{}, false, nil
		}
		return domain.Video{}, false, err
	}
	return videoFromModel(model), true, nil
}

// GetVideoByFilename retrieves a video by its generated storage filename.
func (s *GormStore) GetVideoByFilename(filename string) (domain.Video, bool, error) {
	var model VideoModel
	if err := s.db.First(&model, "filename = ?", filename).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Video{}, false, nil
		}
		return domain.Video{}, false, err
	}
	return videoFromModel(model), true, nil
}

// HasVideoFilename checks whether the owner already has a video stored under
// the given generated filename.
func (s *GormStore) HasVideoFilename(owner, filename string) (bool, error) {
	var count int64
	if err := s.db.Model(&VideoModel{}).Where("owner = ? AND filename = ?", owner, filename).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListVideos returns all videos ordered by upload time.
func (s *GormStore) ListVideos() ([]domain.Video, error) {
	return s.listVideos()
}

// SearchVideos returns videos whose title contains the query substring.
// Case sensitivity follows the database collation.
func (s *GormStore) SearchVideos(titleQuery string) ([]domain.Video, error) {
	return s.listVideos("title LIKE ?", "%"+titleQuery+"%")
}

// ListVideosByCategory returns videos matching the category exactly.
func (s *GormStore) ListVideosByCategory(category string) ([]domain.Video, error) {
	return s.listVideos("category = ?", category)
}

// ListVideosByOwner returns videos uploaded by the given user.
func (s *GormStore) ListVideosByOwner(owner string) ([]domain.Video, error) {
	return s.listVideos("owner = ?", owner)
}

func (s *GormStore) listVideos(conds ...any) ([]domain.Video, error) {
	var models []VideoModel
	tx := s.db.Order("uploaded_at ASC")
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Video, 0, len(models))
	for _, m := range models {
		res = append(res, videoFromModel(m))
	}
	return res, nil
}

// DeleteVideo removes the video record. Comments are left in place; there is
// no cascade anywhere in this schema.
func (s *GormStore) DeleteVideo(id string) error {
	return s.db.Delete(&VideoModel{}, "id = ?", id).Error
}

// SaveComment inserts a comment record.
func (s *GormStore) SaveComment(c domain.Comment) error {
	model := commentToModel(c)
	return s.db.Create(&model).Error
}

// GetComment retrieves a comment by ID.
func (s *GormStore) GetComment(id string) (domain.Comment, bool, error) {
	var model CommentModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Comment{}, false, nil
		}
		return domain.Comment{}, false, err
	}
	return commentFromModel(model), true, nil
}

// ListCommentsForVideo returns a video's comments ordered by creation time.
func (s *GormStore) ListCommentsForVideo(videoID string) ([]domain.Comment, error) {
	var models []CommentModel
	if err := s.db.Order("created_at ASC").Where("video_id = ?", videoID).Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Comment, 0, len(models))
	for _, m := range models {
		res = append(res, commentFromModel(m))
	}
	return res, nil
}

// DeleteComment removes a comment record.
func (s *GormStore) DeleteComment(id string) error {
	return s.db.Delete(&CommentModel{}, "id = ?", id).Error
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:        m.ID,
		Username:  m.Username,
		Password:  m.Password,
		CreatedAt: m.CreatedAt,
	}
}

func videoToModel(v domain.Video) VideoModel {
	return VideoModel{
		ID:                v.ID,
		Title:             v.Title,
		Description:       v.Description,
		Category:          v.Category,
		Filename:          v.Filename,
		ThumbnailFilename: v.ThumbnailFilename,
		Owner:             v.Owner,
		Views:             v.Views,
		UploadedAt:        v.UploadedAt,
	}
}

func videoFromModel(m VideoModel) domain.Video {
	return domain.Video{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		Category:          m.Category,
		Filename:          m.Filename,
		ThumbnailFilename: m.ThumbnailFilename,
		Owner:             m.Owner,
		Views:             m.Views,
		UploadedAt:        m.UploadedAt,
	}
}

func commentToModel(c domain.Comment) CommentModel {
	return CommentModel{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Author:    c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func commentFromModel(m CommentModel) domain.Comment {
	return domain.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		Author:    m.Author,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
