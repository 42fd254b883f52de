package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/JWT-WWIT/modern-web-app/internal/db"
	apphttp "github.com/JWT-WWIT/modern-web-app/internal/http"
	"github.com/JWT-WWIT/modern-web-app/internal/lifecycle"
	"github.com/JWT-WWIT/modern-web-app/internal/observability"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/resolver"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Registry *lifecycle.Registry
	Chain    *resolver.Chain
	Server   *apphttp.Server

	clients      Clients
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	conn := pg.DB()

	registry := lifecycle.NewRegistry()

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(conn, log)
	serviceset, err := wireServices(log, cfg, reposet, clients, registry)
	if err != nil {
		log.Sync()
		return nil, err
	}

	chain := wireChain(log, cfg)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, chain, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           conn,
		Cfg:          cfg,
		Registry:     registry,
		Chain:        chain,
		Server:       server,
		clients:      clients,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.clients.NoteCache != nil {
		_ = a.clients.NoteCache.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
