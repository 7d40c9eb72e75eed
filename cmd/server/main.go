package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/iSadist/chronos/internal"
	"github.com/iSadist/chronos/internal/api"
	"github.com/iSadist/chronos/internal/auth"
	"github.com/iSadist/chronos/internal/config"
	"github.com/iSadist/chronos/internal/storage"
)

type application struct {
	logger  internal.Logger
	entries storage.TimeEntryRepository
	cfg     *config.Config
}

func (a *application) Logger() internal.Logger              { return a.logger }
func (a *application) Entries() storage.TimeEntryRepository { return a.entries }
func (a *application) StrictClients() bool                  { return a.cfg.StrictClients }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := internal.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var repo storage.TimeEntryRepository
	switch cfg.DBType {
	case "postgres":
		repo, err = storage.NewPostgresRepository(cfg.DBDSN, logger)
	default:
		if dir := filepath.Dir(cfg.FileData); dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		repo, err = storage.NewFileRepository(cfg.FileData, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthURL, logger)
	}

	app := &application{logger: logger, entries: repo, cfg: cfg}

	r := gin.Default()
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))

	r.GET("/clients", api.GetClients(app))
	r.POST("/clients", api.PostClient(app))
	r.DELETE("/clients", api.DeleteClient(app))
	r.POST("/entries", api.PostEntries(app))
	r.DELETE("/entries", api.DeleteEntry(app))
	r.GET("/entries", api.GetEntries(app))

	go func() {
		logger.Infof("Server running on %s", cfg.Addr)
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Flush pending writes before exit.
	if closer, ok := repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Errorf("failed to close storage: %v", err)
		}
	}
}
