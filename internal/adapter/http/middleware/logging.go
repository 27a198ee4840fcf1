package middleware

import (
	"net/http"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("http")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			}
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				log.Error("HTTP request failed", fields...)
			case ww.Status() >= http.StatusBadRequest:
				log.Warn("HTTP request rejected", fields...)
			default:
				log.Info("HTTP request", fields...)
			}
		})
	}
}
