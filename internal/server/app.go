// Package server initializes and runs the GiftBox backend: the gRPC gift
// API and the public HTTP reveal endpoint, sharing one gift service.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis/v8"

	"github.com/dmitrijs2005/giftbox/internal/common"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/dmitrijs2005/giftbox/internal/server/cache"
	"github.com/dmitrijs2005/giftbox/internal/server/config"
	"github.com/dmitrijs2005/giftbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/giftbox/internal/server/services"
	"github.com/dmitrijs2005/giftbox/internal/server/web"
	"github.com/dmitrijs2005/giftbox/internal/telemetry"

	gs "github.com/dmitrijs2005/giftbox/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	redis       *redis.Client
	giftService *services.GiftService
	shutdown    telemetry.Shutdown
}

// Seams for tests.
var (
	sqlOpen        = sql.Open
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, out)
	if err != nil {
		return nil, err
	}

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(ctx, "no secret key configured, using an ephemeral one; issued API keys will not survive a restart")
	}

	shutdown, err := telemetry.Setup(ctx, c.OTelEndpoint, common.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepoManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, shutdown: shutdown}

	var gc cache.GiftCache = cache.Nop{}
	if c.RedisAddr != "" {
		rc, client := cache.NewRedisCache(c.RedisAddr, c.CacheTTL, logger)
		gc, app.redis = rc, client
		logger.Info(ctx, "gift cache enabled", "address", c.RedisAddr)
	}

	app.giftService = services.NewGiftService(db, rm, gc, c, logger)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.giftService, app.config.SecretKey)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := web.NewServer(app.config.HTTPAddr, app.config.RevealPath, app.giftService, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or either server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err)
	}
	if err := app.shutdown(ctx); err != nil {
		app.logger.Warn(ctx, "telemetry shutdown", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
