// Package server exposes the workflow core over HTTP. Each route maps to
// one operation; responses are JSON and the session token travels in a
// cookie set by register/login.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"cliptube/internal/app"
	"cliptube/internal/util"
	"cliptube/pkg/domain"
)

const sessionCookieName = "session"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	MaxUploadBytes int64
}

// Server exposes HTTP endpoints for the application.
type Server struct {
	app            *app.App
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:            cfg.App,
		mux:            http.NewServeMux(),
		maxUploadBytes: normalizeMaxBytes(cfg.MaxUploadBytes),
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in request middleware.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	// catalog
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /category/{category}", s.handleCategory)
	s.mux.HandleFunc("GET /user/{username}", s.handleUserProfile)

	// identity
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	// uploads & engagement
	s.mux.Handle("POST /upload", s.authenticated(s.handleUpload))
	s.mux.HandleFunc("GET /video/{filename}", s.handleVideo)
	s.mux.Handle("POST /video/{filename}/comments", s.authenticated(s.handleAddComment))
	s.mux.Handle("POST /delete-video/{id}", s.authenticated(s.handleDeleteVideo))
	s.mux.Handle("POST /comment/delete/{id}", s.authenticated(s.handleDeleteComment))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// session plumbing

type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.currentUser(r)
		if !ok {
			slog.Warn("security_event", "event", "authorize", "outcome", "fail", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, app.ErrUnauthenticated.Error())
			return
		}
		next(w, r, user)
	})
}

func (s *Server) currentUser(r *http.Request) (domain.User, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return domain.User{}, false
	}
	return s.app.CurrentUser(cookie.Value)
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// identity handlers

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Register(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrDuplicateUsername) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.fail(w, r, "register", err)
		return
	}
	setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			slog.Warn("security_event", "event", "login", "outcome", "fail", "username", req.Username)
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.fail(w, r, "login", err)
		return
	}
	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := s.app.Logout(cookie.Value); err != nil {
			s.fail(w, r, "logout", err)
			return
		}
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// catalog handlers

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("search_query")
	videos, err := s.app.SearchVideos(query)
	if err != nil {
		s.fail(w, r, "list videos", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"videos":     videos,
		"categories": s.app.Categories(),
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	videos, err := s.app.VideosByCategory(category)
	if err != nil {
		s.fail(w, r, "list category", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":   category,
		"videos":     videos,
		"categories": s.app.Categories(),
	})
}

func (s *Server) handleUserProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	videos, err := s.app.VideosByUser(username)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.fail(w, r, "list user videos", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": username,
		"videos":   videos,
	})
}

// upload & engagement handlers

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request, user domain.User) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "video file not found in form data")
		return
	}
	defer file.Close()

	video, err := s.app.UploadVideo(r.Context(), user, app.UploadInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Filename:    header.Filename,
		File:        file,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDuplicateUpload):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, app.ErrThumbnailExtraction):
			writeError(w, http.StatusUnprocessableEntity, app.ErrThumbnailExtraction.Error())
		default:
			s.fail(w, r, "upload", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"video": video})
}

func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	video, err := s.app.ViewVideo(filename)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.fail(w, r, "view video", err)
		return
	}
	comments, err := s.app.Comments(video.ID)
	if err != nil {
		s.fail(w, r, "list comments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"video":    video,
		"comments": comments,
	})
}

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req commentRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	filename := r.PathValue("filename")
	comment, err := s.app.AddComment(filename, req.Content, user)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.fail(w, r, "add comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"comment":  comment,
		"redirect": "/video/" + filename,
	})
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := r.PathValue("id")
	if err := s.app.DeleteVideo(r.Context(), id, user); err != nil {
		if errors.Is(err, app.ErrNotFoundOrForbidden) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.fail(w, r, "delete video", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "deleted",
		"redirect": "/user/" + user.Username,
	})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := r.PathValue("id")
	filename, err := s.app.DeleteComment(id, user)
	if err != nil {
		if errors.Is(err, app.ErrNotFoundOrForbidden) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.fail(w, r, "delete comment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "deleted",
		"redirect": "/video/" + filename,
	})
}

// helpers

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("request failed", "op", op, "path", r.URL.Path, "request_id", util.RequestIDFromRequest(r), "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func normalizeMaxBytes(value int64) int64 {
	if value <= 0 {
		return 500 * 1024 * 1024
	}
	return value
}
