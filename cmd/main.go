package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc/health"

	grpcRouter "github.com/dtroode/basebackend-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/basebackend-server/internal/api/grpc/server"
	restctx "github.com/dtroode/basebackend-server/internal/api/rest/context"
	restRouter "github.com/dtroode/basebackend-server/internal/api/rest/router"
	restServer "github.com/dtroode/basebackend-server/internal/api/rest/server"
	"github.com/dtroode/basebackend-server/internal/config"
	healthcheck "github.com/dtroode/basebackend-server/internal/health"
	"github.com/dtroode/basebackend-server/internal/logger"
	"github.com/dtroode/basebackend-server/internal/model"
	"github.com/dtroode/basebackend-server/internal/password"
	"github.com/dtroode/basebackend-server/internal/repository/postgres"
	"github.com/dtroode/basebackend-server/internal/server"
	"github.com/dtroode/basebackend-server/internal/service"
	"github.com/dtroode/basebackend-server/internal/storage/minio"
	"github.com/dtroode/basebackend-server/internal/storage/s3"
	"github.com/dtroode/basebackend-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	storageClient, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err, "backend", cfg.StorageBackend)
	}

	userRepo := postgres.NewUserRepository(db)
	itemRepo := postgres.NewItemRepository(db)
	fileRepo := postgres.NewFileRepository(db)

	hasher := password.NewBcrypt(cfg.Bcrypt.Cost)
	codec := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	authService := service.NewAuth(userRepo, hasher, codec, logger)
	itemService := service.NewItem(itemRepo, logger)
	fileService := service.NewFile(fileRepo, storageClient, logger)
	ctxMgr := restctx.NewManager()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthServer := health.NewServer()
	checker := healthcheck.NewChecker(map[string]healthcheck.Probe{
		"database": db,
		"storage":  storageClient,
	}, healthServer, cfg.HealthInterval, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		checker.Run(ctx)
	}()

	router := restRouter.New(authService, itemService, fileService, checker, ctxMgr, registry, cfg.HTTP.MaxUploadBytes, logger)
	httpServer := restServer.NewHTTPServer(router.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadTimeout, cfg.HTTP.WriteTimeout)
	opsServer := grpcServer.NewGRPCServer(grpcRouter.New(healthServer, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	startServer(&wg, logger, httpServer, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName))
	startServer(&wg, logger, opsServer, server.NewPlainListener())

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range []model.Server{httpServer, opsServer} {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newStorage(ctx context.Context, cfg *config.Config) (model.Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendS3:
		client, err := s3.New(ctx, s3.Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := minio.New(ctx, minio.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func startServer(wg *sync.WaitGroup, logger *logger.Logger, s model.Server, sl model.SecurityLayer) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err, "address", s.Address())
		}
	}()
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
