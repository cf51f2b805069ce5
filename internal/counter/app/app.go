package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-sharded-counter/internal/counter/adapter/inbound/http"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/adapter/outbound/redis_node"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/config"
	"github.com/anthanhphan/go-sharded-counter/internal/counter/service"
	"github.com/anthanhphan/go-sharded-counter/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	cfg    *config.Config
	server *httpHandler.Server
	store  *service.CounterStore
	router *redis_node.Router
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Backend nodes and router
	nodes, err := cfg.Backend.ShardNodes()
	if err != nil {
		return nil, fmt.Errorf("invalid backend nodes: %w", err)
	}

	factory := redis_node.NewRedisBackendFactory(redis_node.BackendOptions{
		Password:     cfg.Backend.Password,
		DB:           cfg.Backend.DB,
		DialTimeout:  millis(cfg.Backend.DialTimeoutMS),
		ReadTimeout:  millis(cfg.Backend.ReadTimeoutMS),
		WriteTimeout: millis(cfg.Backend.WriteTimeoutMS),
		PoolSize:     cfg.Backend.PoolSize,
	})

	retry := resilience.DefaultRetryPolicy()
	if cfg.Retry.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.Retry.MaxAttempts
	}
	if cfg.Retry.BackoffMS > 0 {
		retry.Backoff = millis(cfg.Retry.BackoffMS)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	router, err := redis_node.NewRouter(ctx, nodes, redis_node.RouterConfig{
		VNodesPerNode: cfg.Counter.VirtualNodes,
		Retry:         retry,
		Breaker: resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			OpenTimeout:      millis(cfg.Breaker.OpenTimeoutMS),
		},
	}, factory)
	if err != nil {
		return nil, fmt.Errorf("failed to init node router: %w", err)
	}

	// Unreachable nodes are tolerated at startup; their keys fail until they recover.
	for id, pingErr := range router.Ping(ctx) {
		if pingErr != nil {
			logger.Warnw("Backend node unreachable at startup", "node", id, "error", pingErr.Error())
		}
	}

	// 4. Counter store
	store := service.NewCounterStore(cfg, router)

	// 5. HTTP Server
	httpServer := httpHandler.NewServer(cfg, store)

	return &App{
		cfg:    cfg,
		server: httpServer,
		store:  store,
		router: router,
	}, nil
}

func (a *App) Run() error {
	a.store.Start()

	logger.Infow("Counter service starting", "addr", a.cfg.Server.Addr, "nodes", len(a.router.Nodes()))
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("Counter server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down counter service")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	// The server no longer accepts requests, so the final drain sees every increment.
	if err := a.store.Shutdown(ctx); err != nil {
		logger.Errorw("Counter store shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}

	if err := a.router.Close(); err != nil {
		logger.Errorw("Closing backend connections failed", "error", err.Error())
	}

	return runErr
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
