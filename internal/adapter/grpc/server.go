package grpc

import (
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/grpc/middleware"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewHealthServer builds the gRPC server exposing the standard health
// service for orchestrators. serviceName is registered alongside the
// overall ("") status, both starting as SERVING.
func NewHealthServer(appLogger *logger.Logger, serviceName string) (*grpc.Server, *health.Server, func()) {
	server := grpc.NewServer(
		grpc.StatsHandler(middleware.TracingHandler()),
		grpc.ChainUnaryInterceptor(middleware.LoggingInterceptor(appLogger)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, hs)
	reflection.Register(server)

	appLogger.Info("gRPC health server configured", zap.String("service", serviceName))

	cleanup := func() {
		hs.Shutdown()
		server.GracefulStop()
		appLogger.Info("gRPC health server stopped")
	}
	return server, hs, cleanup
}
