package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"cliptube/internal/app"
	"cliptube/internal/storage"
	"cliptube/internal/store"
	"cliptube/pkg/domain"
)

type stubExtractor struct{}

func (stubExtractor) ExtractFirstFrame(_ context.Context, _ io.Reader) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	blobs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	a, err := app.New(app.Config{
		Store:     store.NewMemoryStore(),
		Sessions:  store.NewMemorySessionStore(),
		Blobs:     blobs,
		Extractor: stubExtractor{},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	srv := httptest.NewServer(New(Config{App: a}).Router())
	t.Cleanup(srv.Close)
	return srv
}

// newClient returns an http client with its own cookie jar, i.e. one browser.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerClient(t *testing.T, client *http.Client, baseURL, username string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/register", map[string]string{
		"username": username,
		"password": username + "-pass",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
}

func uploadClip(t *testing.T, client *http.Client, baseURL, title, category string) domain.Video {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"title":       title,
		"description": "about " + title,
		"category":    category,
	} {
		if err := mw.WriteField(field, value); err != nil {
			t.Fatalf("write field %s: %v", field, err)
		}
	}
	fw, err := mw.CreateFormFile("file", "clip.mp4")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("fake video bytes")); err != nil {
		t.Fatalf("write file part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	resp, err := client.Post(baseURL+"/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("upload status %d: %s", resp.StatusCode, body)
	}
	var out struct {
		Video domain.Video `json:"video"`
	}
	decodeBody(t, resp, &out)
	return out.Video
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)

	registerClient(t, client, srv.URL, "alice")

	// Registering starts a session, so an authenticated route works at once.
	video := uploadClip(t, client, srv.URL, "Hello", "Music")
	if video.Owner != "alice" {
		t.Fatalf("uploaded video owner = %q", video.Owner)
	}

	resp := postJSON(t, client, srv.URL+"/logout", map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status %d", resp.StatusCode)
	}

	// Session is gone; uploads now fail.
	resp = postJSON(t, client, srv.URL+"/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status %d, want 401", resp.StatusCode)
	}

	resp = postJSON(t, client, srv.URL+"/login", map[string]string{
		"username": "alice",
		"password": "alice-pass",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}
}

func TestDuplicateRegisterConflict(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerClient(t, client, srv.URL, "alice")

	resp := postJSON(t, newClient(t), srv.URL+"/register", map[string]string{
		"username": "alice",
		"password": "other",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status %d, want 409", resp.StatusCode)
	}
}

func TestUploadRequiresSession(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/upload", "multipart/form-data", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous upload status %d, want 401", resp.StatusCode)
	}
}

func TestIndexSearchAndCategory(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerClient(t, client, srv.URL, "alice")
	sunset := uploadClip(t, client, srv.URL, "Sunset", "Nature")
	uploadClip(t, client, srv.URL, "Arcade", "Gaming")

	var listing struct {
		Videos     []domain.Video `json:"videos"`
		Categories []string       `json:"categories"`
	}

	resp, err := client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Videos) != 2 {
		t.Fatalf("index expected 2 videos, got %d", len(listing.Videos))
	}
	if len(listing.Categories) != 9 {
		t.Fatalf("index expected 9 categories, got %d", len(listing.Categories))
	}

	resp, err = client.Get(srv.URL + "/?search_query=Sun")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Videos) != 1 || listing.Videos[0].ID != sunset.ID {
		t.Fatalf("search expected only the Sunset video, got %d", len(listing.Videos))
	}

	resp, err = client.Get(srv.URL + "/category/Nature")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Videos) != 1 || listing.Videos[0].ID != sunset.ID {
		t.Fatalf("category Nature expected only the Sunset video, got %d", len(listing.Videos))
	}

	resp, err = client.Get(srv.URL + "/category/Sports")
	if err != nil {
		t.Fatalf("category: %v", err)
	}
	decodeBody(t, resp, &listing)
	if len(listing.Videos) != 0 {
		t.Fatalf("category Sports expected no videos, got %d", len(listing.Videos))
	}
}

func TestVideoDetailCountsViews(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerClient(t, client, srv.URL, "alice")
	video := uploadClip(t, client, srv.URL, "Counted", "Memes")

	var detail struct {
		Video    domain.Video     `json:"video"`
		Comments []domain.Comment `json:"comments"`
	}
	for i := 1; i <= 3; i++ {
		resp, err := client.Get(srv.URL + "/video/" + video.Filename)
		if err != nil {
			t.Fatalf("detail %d: %v", i, err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("detail %d status %d", i, resp.StatusCode)
		}
		decodeBody(t, resp, &detail)
		if detail.Video.Views != i {
			t.Fatalf("view %d reported %d views", i, detail.Video.Views)
		}
	}

	resp, err := client.Get(srv.URL + "/video/missing.mp4")
	if err != nil {
		t.Fatalf("missing detail: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing video status %d, want 404", resp.StatusCode)
	}
}

func TestCommentLifecycleAndOwnership(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t)
	bob := newClient(t)
	registerClient(t, alice, srv.URL, "alice")
	registerClient(t, bob, srv.URL, "bob")
	video := uploadClip(t, alice, srv.URL, "Discussed", "Music")

	resp := postJSON(t, alice, srv.URL+"/video/"+video.Filename+"/comments", map[string]string{
		"content": "nice clip",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add comment status %d", resp.StatusCode)
	}
	var created struct {
		Comment domain.Comment `json:"comment"`
	}
	decodeBody(t, resp, &created)

	// bob is not the author.
	resp = postJSON(t, bob, srv.URL+"/comment/delete/"+created.Comment.ID, map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("non-author comment delete status %d, want 404", resp.StatusCode)
	}

	resp = postJSON(t, alice, srv.URL+"/comment/delete/"+created.Comment.ID, map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("author comment delete status %d", resp.StatusCode)
	}
	var deleted struct {
		Redirect string `json:"redirect"`
	}
	decodeBody(t, resp, &deleted)
	if deleted.Redirect != "/video/"+video.Filename {
		t.Fatalf("comment delete redirect %q", deleted.Redirect)
	}
}

func TestDeleteVideoOwnership(t *testing.T) {
	srv := newTestServer(t)
	alice := newClient(t)
	bob := newClient(t)
	registerClient(t, alice, srv.URL, "alice")
	registerClient(t, bob, srv.URL, "bob")
	video := uploadClip(t, alice, srv.URL, "Keeper", "Sports")

	resp := postJSON(t, bob, srv.URL+"/delete-video/"+video.ID, map[string]string{})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("non-owner delete status %d, want 404", resp.StatusCode)
	}

	resp = postJSON(t, alice, srv.URL+"/delete-video/"+video.ID, map[string]string{})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner delete status %d", resp.StatusCode)
	}
	var deleted struct {
		Redirect string `json:"redirect"`
	}
	decodeBody(t, resp, &deleted)
	if deleted.Redirect != "/user/alice" {
		t.Fatalf("video delete redirect %q", deleted.Redirect)
	}

	resp, err := alice.Get(srv.URL + "/video/" + video.Filename)
	if err != nil {
		t.Fatalf("detail after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("detail after delete status %d, want 404", resp.StatusCode)
	}
}

func TestUserProfile(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	registerClient(t, client, srv.URL, "alice")
	uploadClip(t, client, srv.URL, "Mine", "Art")

	var profile struct {
		Username string         `json:"username"`
		Videos   []domain.Video `json:"videos"`
	}
	resp, err := client.Get(srv.URL + "/user/alice")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	decodeBody(t, resp, &profile)
	if profile.Username != "alice" || len(profile.Videos) != 1 {
		t.Fatalf("profile %+v", profile)
	}

	resp, err = client.Get(srv.URL + "/user/nobody")
	if err != nil {
		t.Fatalf("unknown profile: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown profile status %d, want 404", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatalf("expected a generated X-Request-Id header")
	}
}
