package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/async"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/common"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/export"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/images"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/llm/openai"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/pipeline"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/repository"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/server"
	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := common.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := repository.NewJobRepository(pool, logger)

	var cache images.Cache
	if cfg.Store.CachePath != "" {
		sqliteCache, err := images.OpenSQLiteCache(cfg.Store.CachePath, logger)
		if err != nil {
			logger.Error("open image cache", "path", cfg.Store.CachePath, "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := sqliteCache.Close(); cerr != nil {
				logger.Warn("close image cache", "error", cerr)
			}
		}()
		cache = sqliteCache
	} else {
		cache = images.NewMemoryCache()
	}

	store := storage.NewRetryingStore(storage.NewFSStore(cfg.Store.RootDir), logger)
	resolver := images.NewResolver(store, cache, logger)

	invokers := make([]llm.Invoker, 0, len(cfg.LLM.Models))
	for _, model := range cfg.LLM.Models {
		invokers = append(invokers, openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger))
	}
	cascade := llm.NewCascade(invokers, logger)

	pipe := pipeline.New(repo, resolver, cascade, logger)
	queue := async.NewQueue(pipe, logger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithJobTimeout(cfg.Pipeline.JobTimeout),
	)

	api := server.NewAPI(repo, queue, export.NewService(repo, logger), logger)
	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http listening", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			stop()
		}
	}()

	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	reflection.Register(grpcSrv)

	go func() {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			logger.Error("grpc listen", "addr", cfg.Server.GRPCAddr, "error", err)
			stop()
			return
		}
		logger.Info("grpc listening", "addr", cfg.Server.GRPCAddr)
		healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		if err := grpcSrv.Serve(lis); err != nil {
			logger.Error("grpc server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	grpcSrv.GracefulStop()
	queue.Shutdown(shutdownCtx)

	logger.Info("bye")
}
