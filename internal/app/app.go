package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/barback/internal/catalog"
	"github.com/MrSnakeDoc/barback/internal/config"
	"github.com/MrSnakeDoc/barback/internal/httpserver"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/recipes"
	"github.com/MrSnakeDoc/barback/internal/redis"
	"github.com/MrSnakeDoc/barback/internal/scheduler"
	"github.com/MrSnakeDoc/barback/internal/sources/cocktaildb"
	redisstore "github.com/MrSnakeDoc/barback/internal/store/redis"
	"github.com/MrSnakeDoc/barback/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader
	syncer      *scheduler.RecipeSyncer
}

// New wires every component. Redis is optional: without an address the
// catalog lives in a CSV file and recipes in memory only.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	var (
		redisClient *goredis.Client
		store       *redisstore.Store
		backing     catalog.Backing
		persister   recipes.Persister
	)

	if cfg.RedisEnabled() {
		// fail fast if configured but unreachable
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient.Named("redis"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		store = redisstore.NewStore(client)
		backing = store.Catalog()
		persister = store
	} else {
		loggerClient.Info("redis not configured, using csv catalog file",
			logger.String("file", cfg.CatalogFile))
		backing = catalog.NewCSVFile(cfg.CatalogFile)
	}

	remote, err := cocktaildb.New(cocktaildb.Options{
		BaseURL: cfg.CocktailDBURL,
		Timeout: cfg.RemoteTimeout,
		RPS:     cfg.RemoteRPS,
		Burst:   cfg.RemoteBurst,
	}, loggerClient.Named("cocktaildb"))
	if err != nil {
		return nil, fmt.Errorf("failed to create cocktaildb client: %w", err)
	}

	catalogStore := catalog.New(backing, loggerClient.Named("catalog"), catalog.Options{
		Concurrency:   cfg.RefreshConcurrency,
		LetterTimeout: cfg.LetterTimeout,
	})

	repo := recipes.New(catalogStore, remote, persister, loggerClient.Named("recipes"))
	categories := recipes.NewCategoryIndex(repo, remote, loggerClient.Named("categories"))

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		catalogStore,
		remote.FetchByLetter,
		loggerClient.Named("reloader"),
		cfg.CatalogRefreshInterval,
		reloadTrigger,
	)
	syncer := scheduler.NewRecipeSyncer(persister, repo, cfg.SeedFile, loggerClient.Named("recipes"))

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		Catalog:       catalogStore,
		Recipes:       repo,
		Categories:    categories,
		RedisStore:    store,
		ReloadTrigger: reloadTrigger,
		RateBurst:     cfg.RateLimitBurst,
		RatePerMinute: cfg.RateLimitPerMinute,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		reloader:    reloader,
		syncer:      syncer,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🍸 Starting barback %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info(version.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.syncer.Sync(ctx); err != nil {
		return fmt.Errorf("failed to restore recipes: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// The first load may fan out to the remote API, /readyz answers 503 meanwhile.
	go func() {
		a.reloader.Start(ctx)
		a.logger.Info("catalog reloader started",
			logger.Duration("interval", a.cfg.CatalogRefreshInterval))
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ barback stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
