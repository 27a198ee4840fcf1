package middleware

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	log = log.Named("grpc")
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("duration", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		}
		if err != nil {
			log.Warn("gRPC request failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("gRPC request completed", fields...)
		}
		return resp, err
	}
}
