package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/auth"
	grpcAdapter "github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/grpc"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/handler"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/http/router"
	natsAdapter "github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/messaging/nats"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/repository/cache"
	mongoRepo "github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/repository/mongodb"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/storage/s3"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/mailer"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/tracer"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("INFO: .env file not loaded (%v), relying on OS environment variables.\n", err)
	}

	appLogger := logger.NewLogger()
	defer func() { _ = appLogger.Sync() }()

	cfg, err := config.LoadConfig(appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	appLogger.Info("Application starting", zap.String("service_name", cfg.ServiceName))

	tp := tracer.InitTracer(cfg.ServiceName, cfg.OTExporterOTLPEndpoint, appLogger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			appLogger.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	ctx := context.Background()
	mongoClient, err := mongoRepo.Connect(ctx, cfg.MongoURI, appLogger)
	if err != nil {
		appLogger.Fatal("MongoDB unavailable", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}()
	store := mongoRepo.NewStore(mongoClient, cfg.MongoDatabase, cfg.MongoUseTransactions, appLogger)
	if err := store.EnsureIndexes(ctx); err != nil {
		appLogger.Fatal("Failed to ensure indexes", zap.Error(err))
	}

	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, cfg.ServiceName)

	deps := usecase.Deps{
		Listings:   store.Listings,
		Accounts:   store.Accounts,
		Reports:    store.Reports,
		Categories: store.Categories,
		Tx:         store.Tx,
		Hasher:     auth.NewBcryptHasher(bcrypt.DefaultCost),
		Tokens:     tokens,
		Metrics:    metricsManager,
		Logger:     appLogger,
	}

	if rdb, err := cache.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, appLogger); err != nil {
		appLogger.Warn("Listing cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		deps.Cache = cache.NewListingCache(rdb, cfg.CacheTTL, appLogger)
	}

	natsPublisher, err := natsAdapter.NewPublisher(cfg.NATSURL, appLogger, cfg.ServiceName)
	if err != nil {
		appLogger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}
	defer natsPublisher.Close()
	deps.Events = natsPublisher

	storage, err := s3.NewS3Storage(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	deps.Files = storage

	if cfg.SMTPEnabled() {
		deps.Notifier = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword, appLogger)
	} else {
		appLogger.Info("SMTP not configured, moderation emails disabled")
	}

	listingUC := usecase.NewListingUsecase(deps)
	moderationUC := usecase.NewModerationUsecase(deps)
	reportUC := usecase.NewReportUsecase(deps)
	accountUC := usecase.NewAccountUsecase(deps)
	categoryUC := usecase.NewCategoryUsecase(deps)
	photoUC := usecase.NewPhotoUsecase(storage, cfg.UploadMaxBytes, cfg.AllowedExtensions(), appLogger)

	api := router.New(router.Handlers{
		Listings:   handler.NewListingHandler(listingUC, reportUC, appLogger),
		Admin:      handler.NewAdminHandler(moderationUC, reportUC, appLogger),
		Accounts:   handler.NewAccountHandler(accountUC, appLogger),
		Categories: handler.NewCategoryHandler(categoryUC, appLogger),
		Images:     handler.NewImageHandler(photoUC, cfg.UploadMaxBytes, appLogger),
	}, tokens, metricsManager, cfg.ServiceName, appLogger)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.HTTPPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	lis, err := net.Listen("tcp", ":"+cfg.GRPCHealthPort)
	if err != nil {
		appLogger.Fatal("Failed to listen for gRPC health", zap.String("port", cfg.GRPCHealthPort), zap.Error(err))
	}
	grpcSrv, healthServer, stopGRPC := grpcAdapter.NewHealthServer(appLogger, cfg.ServiceName)
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.GRPCHealthPort))
		if err := grpcSrv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			appLogger.Error("gRPC health server error", zap.Error(err))
		}
	}()

	if cfg.PrometheusMetricsPort != "" {
		go func() {
			if err := metrics.StartMetricsServer(cfg.PrometheusMetricsPort, appLogger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error("Prometheus metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	stopGRPC()
	appLogger.Info("Application shut down")
}
