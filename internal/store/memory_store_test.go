package store

import (
	"testing"
	"time"

	"cliptube/pkg/domain"
)

func seedVideo(t *testing.T, s *MemoryStore, id, title, category, owner string) domain.Video {
	t.Helper()
	v := domain.Video{
		ID:         id,
		Title:      title,
		Category:   category,
		Filename:   id + ".mp4",
		Owner:      owner,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.SaveVideo(v); err != nil {
		t.Fatalf("save video %s: %v", id, err)
	}
	return v
}

func TestMemoryStoreVideoLookupKeys(t *testing.T) {
	s := NewMemoryStore()
	v := seedVideo(t, s, "v1", "Sunrise", "Nature", "alice")

	byID, ok, err := s.GetVideo("v1")
	if err != nil || !ok {
		t.Fatalf("get by id: ok=%v err=%v", ok, err)
	}
	if byID.Title != "Sunrise" {
		t.Fatalf("unexpected title %q", byID.Title)
	}

	byFile, ok, err := s.GetVideoByFilename(v.Filename)
	if err != nil || !ok {
		t.Fatalf("get by filename: ok=%v err=%v", ok, err)
	}
	if byFile.ID != "v1" {
		t.Fatalf("filename lookup resolved to %q", byFile.ID)
	}

	if _, ok, _ := s.GetVideoByFilename("nope.mp4"); ok {
		t.Fatalf("unknown filename should not resolve")
	}
}

func TestMemoryStoreSearchIsCaseSensitiveSubstring(t *testing.T) {
	s := NewMemoryStore()
	seedVideo(t, s, "v1", "Sunset over the bay", "Nature", "alice")
	seedVideo(t, s, "v2", "sunset timelapse", "Nature", "alice")
	seedVideo(t, s, "v3", "Mountain hike", "Nature", "alice")

	res, err := s.SearchVideos("Sunset")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].ID != "v1" {
		t.Fatalf("expected only the capitalised match, got %d results", len(res))
	}

	res, err = s.SearchVideos("t")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("substring search expected 3 matches, got %d", len(res))
	}
}

func TestMemoryStoreCategoryAndOwnerFilters(t *testing.T) {
	s := NewMemoryStore()
	seedVideo(t, s, "v1", "One", "Music", "alice")
	seedVideo(t, s, "v2", "Two", "Music", "bob")
	seedVideo(t, s, "v3", "Three", "Gaming", "alice")

	music, err := s.ListVideosByCategory("Music")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if len(music) != 2 {
		t.Fatalf("expected 2 Music videos, got %d", len(music))
	}

	none, err := s.ListVideosByCategory("music")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("category match is exact; got %d results for wrong case", len(none))
	}

	mine, err := s.ListVideosByOwner("alice")
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != "v1" || mine[1].ID != "v3" {
		t.Fatalf("owner filter should keep insertion order, got %+v", mine)
	}
}

func TestMemoryStoreHasVideoFilenameScopedToOwner(t *testing.T) {
	s := NewMemoryStore()
	v := seedVideo(t, s, "v1", "One", "Music", "alice")

	if ok, _ := s.HasVideoFilename("alice", v.Filename); !ok {
		t.Fatalf("expected alice's filename to be present")
	}
	if ok, _ := s.HasVideoFilename("bob", v.Filename); ok {
		t.Fatalf("bob does not own this filename")
	}
}

func TestMemoryStoreDeleteVideoLeavesComments(t *testing.T) {
	s := NewMemoryStore()
	v := seedVideo(t, s, "v1", "One", "Music", "alice")
	if err := s.SaveComment(domain.Comment{ID: "c1", VideoID: v.ID, Author: "bob", Content: "hi"}); err != nil {
		t.Fatalf("save comment: %v", err)
	}

	if err := s.DeleteVideo(v.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}
	if _, ok, _ := s.GetVideo(v.ID); ok {
		t.Fatalf("video should be gone")
	}
	if _, ok, _ := s.GetVideoByFilename(v.Filename); ok {
		t.Fatalf("filename index should be gone")
	}
	// No cascade: the comment record stays.
	comments, err := s.ListCommentsForVideo(v.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected orphaned comment to remain, got %d", len(comments))
	}
}

func TestMemoryStoreCommentsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	v := seedVideo(t, s, "v1", "One", "Music", "alice")
	for _, id := range []string{"c1", "c2", "c3"} {
		if err := s.SaveComment(domain.Comment{ID: id, VideoID: v.ID, Author: "bob", Content: id}); err != nil {
			t.Fatalf("save comment %s: %v", id, err)
		}
	}
	if err := s.DeleteComment("c2"); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	comments, err := s.ListCommentsForVideo(v.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != "c1" || comments[1].ID != "c3" {
		t.Fatalf("unexpected comment order: %+v", comments)
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	s := NewMemoryStore()
	if err := s.SaveUser(domain.User{ID: "u1", Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("save user: %v", err)
	}
	if ok, _ := s.HasUsername("alice"); !ok {
		t.Fatalf("expected alice to exist")
	}
	if ok, _ := s.HasUsername("bob"); ok {
		t.Fatalf("bob should not exist")
	}
	u, ok, err := s.GetUserByUsername("alice")
	if err != nil || !ok {
		t.Fatalf("get user: ok=%v err=%v", ok, err)
	}
	if u.Password != "pw" {
		t.Fatalf("password stored verbatim, got %q", u.Password)
	}
}
