package store

import (
	"strings"
	"sync"

	"cliptube/pkg/domain"
)

// MemoryStore keeps records in-process. Used in tests and local development.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]domain.User    // key: username
	videos   map[string]domain.Video   // key: video ID
	byFile   map[string]string         // filename -> video ID
	comments map[string]domain.Comment // key: comment ID
	order    []string                  // video IDs in insertion order
	corder   []string                  // comment IDs in insertion order
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]domain.User),
		videos:   make(map[string]domain.Video),
		byFile:   make(map[string]string),
		comments: make(map[string]domain.Comment),
	}
}

// SaveUser registers a user.
func (m *MemoryStore) SaveUser(u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Username] = u
	return nil
}

// HasUsername checks if a username is already taken.
func (m *MemoryStore) HasUsername(username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[username]
	return ok, nil
}

// GetUserByUsername looks up a user by username.
func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	return u, ok, nil
}

// SaveVideo stores or replaces a video record and tracks insertion order.
func (m *MemoryStore) SaveVideo(v domain.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.videos[v.ID]; !exists {
		m.order = append(m.order, v.ID)
	}
	m.videos[v.ID] = v
	m.byFile[v.Filename] = v.ID
	return nil
}

// GetVideo retrieves a video by ID.
func (m *MemoryStore) GetVideo(id string) (domain.Video, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.videos[id]
	return v, ok, nil
}

// GetVideoByFilename retrieves a video by its generated storage filename.
func (m *MemoryStore) GetVideoByFilename(filename string) (domain.Video, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byFile[filename]
	if !ok {
		return domain.Video{}, false, nil
	}
	v, ok := m.videos[id]
	return v, ok, nil
}

// HasVideoFilename checks whether the owner already has a video stored under
// the given generated filename.
func (m *MemoryStore) HasVideoFilename(owner, filename string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byFile[filename]
	if !ok {
		return false, nil
	}
	v, ok := m.videos[id]
	return ok && v.Owner == owner, nil
}

// ListVideos returns videos in insertion order.
func (m *MemoryStore) ListVideos() ([]domain.Video, error) {
	return m.filterVideos(func(domain.Video) bool { return true })
}

// SearchVideos returns videos whose title contains the query substring.
// Matching is case sensitive, like the default database collation.
func (m *MemoryStore) SearchVideos(titleQuery string) ([]domain.Video, error) {
	return m.filterVideos(func(v domain.Video) bool {
		return strings.Contains(v.Title, titleQuery)
	})
}

// ListVideosByCategory returns videos matching the category exactly.
func (m *MemoryStore) ListVideosByCategory(category string) ([]domain.Video, error) {
	return m.filterVideos(func(v domain.Video) bool {
		return v.Category == category
	})
}

// ListVideosByOwner returns videos uploaded by the given user.
func (m *MemoryStore) ListVideosByOwner(owner string) ([]domain.Video, error) {
	return m.filterVideos(func(v domain.Video) bool {
		return v.Owner == owner
	})
}

func (m *MemoryStore) filterVideos(keep func(domain.Video) bool) ([]domain.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Video, 0, len(m.order))
	for _, id := range m.order {
		if v, ok := m.videos[id]; ok && keep(v) {
			res = append(res, v)
		}
	}
	return res, nil
}

// DeleteVideo removes the video record. Comments are left in place.
func (m *MemoryStore) DeleteVideo(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.videos[id]; ok {
		delete(m.byFile, v.Filename)
	}
	delete(m.videos, id)
	filtered := m.order[:0]
	for _, item := range m.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.order = filtered
	return nil
}

// SaveComment records a comment.
func (m *MemoryStore) SaveComment(c domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.comments[c.ID]; !exists {
		m.corder = append(m.corder, c.ID)
	}
	m.comments[c.ID] = c
	return nil
}

// GetComment retrieves a comment by ID.
func (m *MemoryStore) GetComment(id string) (domain.Comment, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.comments[id]
	return c, ok, nil
}

// ListCommentsForVideo returns a video's comments in insertion order.
func (m *MemoryStore) ListCommentsForVideo(videoID string) ([]domain.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Comment, 0, len(m.corder))
	for _, id := range m.corder {
		if c, ok := m.comments[id]; ok && c.VideoID == videoID {
			res = append(res, c)
		}
	}
	return res, nil
}

// DeleteComment removes a comment record.
func (m *MemoryStore) DeleteComment(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.comments, id)
	filtered := m.corder[:0]
	for _, item := range m.corder {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	m.corder = filtered
	return nil
}
