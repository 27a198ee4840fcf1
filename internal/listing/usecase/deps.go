package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/metrics"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("bookmarket-service/usecase")

// Event subjects published on NATS.
const (
	SubjectListingSubmitted = "listing.submitted"
	SubjectListingUpdated   = "listing.updated"
	SubjectListingSold      = "listing.sold"
	SubjectListingDeleted   = "listing.deleted"
	SubjectListingModerated = "listing.moderated"
	SubjectReportFiled      = "report.filed"
	SubjectReportResolved   = "report.resolved"
	SubjectAccountStatus    = "account.status_changed"
	SubjectAccountDeleted   = "account.deleted"
)

// Deps is the set of collaborators shared by the usecases. Cache, Events,
// Notifier and Metrics are optional; Tx falls back to running inline.
type Deps struct {
	Listings   domain.ListingRepository
	Accounts   domain.AccountRepository
	Reports    domain.ReportRepository
	Categories domain.CategoryRepository
	Tx         domain.TxManager
	Files      domain.FileStorage
	Cache      domain.ListingCache
	Events     domain.EventPublisher
	Notifier   domain.Notifier
	Hasher     domain.PasswordHasher
	Tokens     domain.TokenIssuer
	Metrics    *metrics.MetricsManager
	Logger     *logger.Logger
	Now        func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

func (d Deps) log() *logger.Logger {
	if d.Logger == nil {
		return logger.NewNop()
	}
	return d.Logger
}

func (d Deps) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if d.Tx == nil {
		return fn(ctx)
	}
	return d.Tx.WithinTransaction(ctx, fn)
}

// publish is fire-and-report: the mutation already happened, so failures are only logged.
func (d Deps) publish(ctx context.Context, log *logger.Logger, subject string, data map[string]interface{}) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Publish(ctx, subject, data); err != nil {
		log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}

// releaseImage frees a file reference. Failures are logged and absorbed.
func (d Deps) releaseImage(ctx context.Context, log *logger.Logger, ref string) {
	if ref == "" || d.Files == nil {
		return
	}
	ok, err := d.Files.Release(ctx, ref)
	if err != nil || !ok {
		log.Warn("Failed to release image", zap.String("ref", ref), zap.Bool("released", ok), zap.Error(err))
		if d.Metrics != nil {
			d.Metrics.ImageReleaseFailure.Inc()
		}
	}
}

func (d Deps) invalidate(ctx context.Context, log *logger.Logger, id string) {
	if d.Cache == nil {
		return
	}
	if err := d.Cache.DeleteListing(ctx, id); err != nil {
		log.Warn("Failed to invalidate cached listing", zap.String("listing_id", id), zap.Error(err))
	}
}

func (d Deps) observeTransition(t domain.Transition) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.ListingTransitions.WithLabelValues(string(t.From), string(t.To), t.Kind.String()).Inc()
}

// loadListing fetches a stored listing, mapping absence to ErrNotFound.
func (d Deps) loadListing(ctx context.Context, id string) (*domain.Listing, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	l, err := d.Listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// views resolves owners in one batch and applies the redaction policy.
func (d Deps) views(ctx context.Context, listings []*domain.Listing, reveal bool) ([]domain.ListingView, error) {
	owners := map[string]*domain.Account{}
	if reveal && len(listings) > 0 {
		ids := make([]string, 0, len(listings))
		seen := map[string]bool{}
		for _, l := range listings {
			if !seen[l.OwnerID] {
				seen[l.OwnerID] = true
				ids = append(ids, l.OwnerID)
			}
		}
		found, err := d.Accounts.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		owners = found
	}
	out := make([]domain.ListingView, 0, len(listings))
	for _, l := range listings {
		out = append(out, domain.NewListingView(l, owners[l.OwnerID], reveal))
	}
	return out, nil
}

func listingEvent(l *domain.Listing, actorID string, at time.Time) map[string]interface{} {
	return map[string]interface{}{
		"listing_id": l.ID,
		"owner_id":   l.OwnerID,
		"actor_id":   actorID,
		"status":     string(l.Status),
		"version":    l.Version,
		"at":         at.Format(time.RFC3339Nano),
	}
}
