package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"cliptube/internal/app"
	"cliptube/internal/config"
	"cliptube/internal/server"
	"cliptube/internal/storage"
	"cliptube/internal/store"
	"cliptube/internal/thumbnail"
	"cliptube/internal/util"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	dataStore, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init postgres store: %v", err)
	}

	var sessions store.SessionStore
	switch cfg.SessionBackend {
	case "jwt":
		sessions = store.NewJWTSessionStore(cfg.SessionSecret, sessionTTL)
	default:
		sessions = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, sessionTTL)
	}

	var blobs storage.BlobStore
	switch cfg.StorageBackend {
	case "minio":
		blobs, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		blobs, err = storage.NewFileStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("failed to init blob storage: %v", err)
	}

	appCore, err := app.New(app.Config{
		Store:      dataStore,
		Sessions:   sessions,
		Blobs:      blobs,
		Extractor:  thumbnail.NewFFmpegExtractor(cfg.FFmpegPath),
		Categories: cfg.Categories,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer := server.New(server.Config{
		App:            appCore,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("server listening", "addr", addr, "storage", cfg.StorageBackend, "sessions", cfg.SessionBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
