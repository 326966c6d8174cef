package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/api"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/config"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/importer"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/notify"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/observability"
	"github.com/nikmatRMT/proyek-hargapangan-sub000/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router   *gin.Engine
	store    *store.Store
	notifier notify.Notifier
	api      *api.Handler
}

// NewServer wires the store, notifier and API handlers from config.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	sqliteStore, err := store.New(config.DBPath(cfg, dataDir))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Notify.RedisURL != "" {
		pub, err := notify.NewRedisPublisher(cfg.Notify.RedisURL, cfg.Notify.Channel)
		if err != nil {
			log.Printf("redis notifier disabled: %v", err)
		} else {
			notifier = pub
		}
	}

	gate := importer.Gate{
		MinPlausible: cfg.Import.MinPlausiblePrice,
		MaxPlausible: cfg.Import.MaxPlausiblePrice,
	}

	observability.Register()

	s := &Server{
		router:   gin.Default(),
		store:    sqliteStore,
		notifier: notifier,
		api:      api.NewHandler(sqliteStore, notifier, gate, dataDir),
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes registers middleware and routes.
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store and notifier.
func (s *Server) Close() error {
	if closer, ok := s.notifier.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
