package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/auth"
	"github.com/MrSnakeDoc/stash/internal/config"
	"github.com/MrSnakeDoc/stash/internal/httpserver"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/redis"
	"github.com/MrSnakeDoc/stash/internal/sources/seed"
	"github.com/MrSnakeDoc/stash/internal/store/cache"
	"github.com/MrSnakeDoc/stash/internal/store/kv"
	"github.com/MrSnakeDoc/stash/internal/store/local"
	"github.com/MrSnakeDoc/stash/internal/store/remote"
	"github.com/MrSnakeDoc/stash/internal/syncer"
	"github.com/MrSnakeDoc/stash/internal/version"
)

// The device stores live in separate directories so the quota-limited
// sync store cannot be inflated by backup or preference data.
const (
	syncStoreDir   = "sync"
	backupStoreDir = "backup"
	cacheStoreDir  = "cache"
	prefsStoreDir  = "prefs"
	// Unconstrained stores still get a sane cap against runaway writes.
	looseQuotaBytes = 10 << 20
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	controller  *syncer.Controller
	redisClient *goredis.Client
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Device stores. The sync store carries the browser sync quota; the
	// backup store mirrors it without the constraint.
	syncStore, err := kv.NewFile(filepath.Join(cfg.DataDir, syncStoreDir), cfg.SyncQuotaBytes)
	if err != nil {
		loggerClient.Errorf("Failed to open sync store: %v", err)
		os.Exit(1)
	}
	backupStore, err := kv.NewFile(filepath.Join(cfg.DataDir, backupStoreDir), looseQuotaBytes)
	if err != nil {
		loggerClient.Errorf("Failed to open backup store: %v", err)
		os.Exit(1)
	}
	cacheStore, err := kv.NewFile(filepath.Join(cfg.DataDir, cacheStoreDir), looseQuotaBytes)
	if err != nil {
		loggerClient.Errorf("Failed to open cache store: %v", err)
		os.Exit(1)
	}
	prefsStore, err := kv.NewFile(filepath.Join(cfg.DataDir, prefsStoreDir), looseQuotaBytes)
	if err != nil {
		loggerClient.Errorf("Failed to open prefs store: %v", err)
		os.Exit(1)
	}

	localStore := local.New(syncStore, backupStore, loggerClient)
	cacheMirror := cache.New(cacheStore, loggerClient)

	// Remote backend is optional: no Redis address means the daemon runs
	// local-only and every sync path degrades to the local store.
	var redisClient *goredis.Client
	var remoteStore syncer.Remote
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		remoteStore = remote.NewStore(redisClient, loggerClient)
	} else {
		loggerClient.Info("no Redis address configured, running local-only")
	}

	session := auth.NewSession()
	controller := syncer.New(localStore, cacheMirror, prefsStore, remoteStore, session,
		loggerClient, syncer.Options{DebounceDelay: cfg.DebounceInterval})

	if cfg.SeedFile != "" {
		seedIfEmpty(context.Background(), cfg.SeedFile, localStore, loggerClient)
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Controller:     controller,
		Session:        session,
		AllowedOrigins: cfg.AllowedOrigins,
		RemoteEnabled:  remoteStore != nil,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		controller:  controller,
		redisClient: redisClient,
	}
}

// seedIfEmpty imports the YAML seed file into a pristine local store.
// A store that already holds sections is never overwritten.
func seedIfEmpty(ctx context.Context, seedFile string, store *local.Store, log logger.Logger) {
	cfg, err := store.LoadConfig(ctx)
	if err != nil || len(cfg.Sections) > 0 {
		return
	}

	seedCfg, err := seed.NewLoader(seedFile).Load()
	if err != nil {
		log.Warn("failed to load seed file", logger.String("file", seedFile), logger.Error(err))
		return
	}
	mapped, err := seed.NewMapper().MapConfig(seedCfg)
	if err != nil {
		log.Warn("failed to map seed file", logger.String("file", seedFile), logger.Error(err))
		return
	}
	if _, err := store.SaveConfig(ctx, mapped); err != nil {
		log.Warn("failed to persist seed config", logger.Error(err))
		return
	}
	log.Info("seeded local store",
		logger.String("file", seedFile),
		logger.Int("sections", len(mapped.Sections)))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Stash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Stash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.controller.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.controller.Stop()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Stash stopped cleanly")
	return nil
}
