package middleware

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc/stats"
)

// TracingHandler records a span per RPC using the global tracer provider and propagator.
func TracingHandler() stats.Handler {
	return otelgrpc.NewServerHandler()
}
