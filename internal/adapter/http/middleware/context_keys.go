package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
)

// ContextKey is a private type for request context keys.
type ContextKey string

const ViewerCtxKey = ContextKey("viewer")

func WithViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, ViewerCtxKey, v)
}

// ViewerFrom returns the request viewer, or a guest if none was resolved.
func ViewerFrom(ctx context.Context) domain.Viewer {
	if v, ok := ctx.Value(ViewerCtxKey).(domain.Viewer); ok {
		return v
	}
	return domain.Guest()
}
