package tracer

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// InitTracer installs a global tracer provider exporting over OTLP/gRPC.
// An empty endpoint, or any setup failure, yields a provider without exporters.
func InitTracer(serviceName, otlpEndpoint string, appLogger *logger.Logger) *sdktrace.TracerProvider {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if otlpEndpoint == "" {
		appLogger.Info("OpenTelemetry tracing is disabled: OTEL_EXPORTER_OTLP_ENDPOINT is not set")
		return sdktrace.NewTracerProvider()
	}

	appLogger.Info("Initializing OpenTelemetry tracer",
		zap.String("service_name", serviceName),
		zap.String("otlp_endpoint", otlpEndpoint),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := grpc.NewClient(otlpEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		appLogger.Error("Failed to create OTLP gRPC client", zap.Error(err), zap.String("endpoint", otlpEndpoint))
		return sdktrace.NewTracerProvider()
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		appLogger.Error("Failed to create OTLP trace exporter", zap.Error(err))
		_ = conn.Close()
		return sdktrace.NewTracerProvider()
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(semconv.ServiceNameKey.String(serviceName)),
	)
	if err != nil {
		appLogger.Warn("Failed to merge OpenTelemetry resource, using default", zap.Error(err))
		res = resource.Default()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	appLogger.Info("OpenTelemetry tracer initialized", zap.String("service_name", serviceName))
	return tp
}
