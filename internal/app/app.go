// Package app is the workflow core of the application: identity and
// sessions, the video catalog, uploads with thumbnail extraction, view and
// comment engagement, and ownership-gated deletion. It is wired with
// explicit store, session and blob-storage dependencies; there are no
// ambient singletons.
package app

import (
	"fmt"

	"cliptube/internal/storage"
	"cliptube/internal/store"
	"cliptube/internal/thumbnail"
	"cliptube/pkg/domain"
)

// Config holds the dependencies of the workflow core.
type Config struct {
	Store      store.Store
	Sessions   store.SessionStore
	Blobs      storage.BlobStore
	Extractor  thumbnail.Extractor
	Categories []string
}

// App wires persistence, sessions, blob storage and thumbnail extraction
// behind the operation surface consumed by the HTTP layer.
type App struct {
	store      store.Store
	sessions   store.SessionStore
	blobs      storage.BlobStore
	extractor  thumbnail.Extractor
	categories []string
}

// New constructs the application core.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if cfg.Extractor == nil {
		return nil, fmt.Errorf("thumbnail extractor is required")
	}
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = domain.DefaultCategories
	}
	return &App{
		store:      cfg.Store,
		sessions:   cfg.Sessions,
		blobs:      cfg.Blobs,
		extractor:  cfg.Extractor,
		categories: categories,
	}, nil
}

// Categories returns the fixed category set shown in navigation.
func (a *App) Categories() []string {
	return a.categories
}
