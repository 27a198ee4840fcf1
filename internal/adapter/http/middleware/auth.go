package middleware

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/adapter/auth"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

// TokenParser turns a bearer token into a viewer.
type TokenParser interface {
	Parse(token string) (domain.Viewer, error)
}

// Viewer resolves the caller identity for every request. A missing or
// invalid token yields a guest; authorization happens in the usecases.
func Viewer(parser TokenParser, log *logger.Logger) func(http.Handler) http.Handler {
	log = log.Named("auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := domain.Guest()
			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := auth.BearerToken(header)
				if ok {
					v, err := parser.Parse(token)
					if err != nil {
						log.Debug("Ignoring invalid token", zap.String("path", r.URL.Path), zap.Error(err))
					} else {
						viewer = v
					}
				} else {
					log.Debug("Malformed authorization header", zap.String("path", r.URL.Path))
				}
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}
