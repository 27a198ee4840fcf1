package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ListingUsecase implements the owner-facing listing lifecycle and public reads.
type ListingUsecase struct {
	d      Deps
	logger *logger.Logger
}

func NewListingUsecase(d Deps) *ListingUsecase {
	return &ListingUsecase{d: d, logger: d.log().Named("ListingUsecase")}
}

// SubmitInput carries a new listing. CategoryIDs keeps the caller's order; the first is primary.
type SubmitInput struct {
	Book        domain.Book
	ContactInfo string
	CategoryIDs []string
}

// Submit creates a PENDING listing owned by the viewer. The account must be ACTIVE.
func (uc *ListingUsecase) Submit(ctx context.Context, viewer domain.Viewer, in SubmitInput) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Submit")
	defer span.End()

	if d := domain.AuthorizeRole(viewer, domain.RoleUser); d != domain.Allow {
		return nil, d.Err()
	}
	uc.logger.Info("Submitting listing", zap.String("owner_id", viewer.AccountID), zap.String("title", in.Book.Title))

	account, err := uc.d.Accounts.FindByID(ctx, viewer.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: owner account %s", domain.ErrNotFound, viewer.AccountID)
		}
		return nil, err
	}
	if !account.IsActive() {
		uc.logger.Warn("Listing submit blocked by account status", zap.String("owner_id", account.ID), zap.String("status", string(account.Status)))
		return nil, domain.ErrAccountNotActive
	}

	categories, err := uc.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	listing, err := domain.NewListing(account.ID, in.Book, in.ContactInfo, categories, uc.d.now())
	if err != nil {
		return nil, err
	}

	// The listing document and its category links commit together.
	err = uc.d.inTx(ctx, func(ctx context.Context) error {
		return uc.d.Listings.Create(ctx, listing)
	})
	if err != nil {
		uc.logger.Error("Failed to create listing", zap.Error(err), zap.String("owner_id", account.ID))
		return nil, err
	}
	span.SetAttributes(attribute.String("listing.id", listing.ID))

	if uc.d.Metrics != nil {
		uc.d.Metrics.ListingsSubmitted.Inc()
	}
	uc.d.publish(ctx, uc.logger, SubjectListingSubmitted, listingEvent(listing, viewer.AccountID, listing.CreatedAt))
	uc.logger.Info("Listing submitted", zap.String("listing_id", listing.ID))
	return listing, nil
}

func (uc *ListingUsecase) resolveCategories(ctx context.Context, ids []string) ([]domain.Category, error) {
	unique := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}
	categories, err := uc.d.Categories.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, fmt.Errorf("%w: unknown category in %v", domain.ErrInvalidInput, unique)
	}
	return categories, nil
}

// authorizeOwner runs the full guard sequence for owner-only mutations:
// authentication, role, existence, ownership.
func (uc *ListingUsecase) authorizeOwner(ctx context.Context, viewer domain.Viewer, id string) (*domain.Listing, error) {
	if d := domain.AuthorizeRole(viewer, domain.RoleUser); d != domain.Allow {
		return nil, d.Err()
	}
	listing, err := uc.d.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := domain.AuthorizeOwner(listing, viewer); d != domain.Allow {
		uc.logger.Warn("Viewer is not the listing owner",
			zap.String("listing_id", id),
			zap.String("owner_id", listing.OwnerID),
			zap.String("viewer_id", viewer.AccountID))
		return nil, d.Err()
	}
	return listing, nil
}

// EditContent applies a partial patch. A replaced image is released after the
// edit is stored; release failures never undo the edit.
func (uc *ListingUsecase) EditContent(ctx context.Context, viewer domain.Viewer, id string, patch domain.ContentPatch) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.EditContent")
	defer span.End()

	listing, err := uc.authorizeOwner(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	from := listing.Status
	expected := listing.Version
	res, err := listing.ApplyContentEdit(patch, uc.d.now())
	if err != nil {
		return nil, err
	}
	listing.Version = expected + 1

	if err := uc.d.Listings.Update(ctx, listing, expected); err != nil {
		uc.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", id))
		return nil, err
	}
	uc.d.invalidate(ctx, uc.logger, listing.ID)
	uc.d.releaseImage(ctx, uc.logger, res.ReleasedImage)

	if res.Resubmitted {
		uc.d.observeTransition(domain.Transition{Kind: domain.UserTransition, From: from, To: listing.Status})
	}
	uc.d.publish(ctx, uc.logger, SubjectListingUpdated, listingEvent(listing, viewer.AccountID, listing.UpdatedAt))
	uc.logger.Info("Listing content edited", zap.String("listing_id", id), zap.Bool("resubmitted", res.Resubmitted))
	return listing, nil
}

// MarkSold moves an APPROVED listing to SOLD.
func (uc *ListingUsecase) MarkSold(ctx context.Context, viewer domain.Viewer, id string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.MarkSold")
	defer span.End()

	listing, err := uc.authorizeOwner(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	t, err := listing.SoldTransition()
	if err != nil {
		return nil, err
	}
	expected := listing.Version
	if err := listing.Apply(t, uc.d.now()); err != nil {
		return nil, err
	}
	listing.Version = expected + 1

	if err := uc.d.Listings.Update(ctx, listing, expected); err != nil {
		uc.logger.Error("Failed to mark listing sold", zap.Error(err), zap.String("listing_id", id))
		return nil, err
	}
	uc.d.invalidate(ctx, uc.logger, listing.ID)
	uc.d.observeTransition(t)
	uc.d.publish(ctx, uc.logger, SubjectListingSold, listingEvent(listing, viewer.AccountID, listing.UpdatedAt))
	uc.logger.Info("Listing marked sold", zap.String("listing_id", id))
	return listing, nil
}

// Delete removes a listing that is not APPROVED, then releases its image.
func (uc *ListingUsecase) Delete(ctx context.Context, viewer domain.Viewer, id string) error {
	ctx, span := tracer.Start(ctx, "ListingUsecase.Delete")
	defer span.End()

	listing, err := uc.authorizeOwner(ctx, viewer, id)
	if err != nil {
		return err
	}
	if err := listing.CheckDeletable(); err != nil {
		return err
	}

	err = uc.d.inTx(ctx, func(ctx context.Context) error {
		return uc.d.Listings.Delete(ctx, listing.ID, listing.Version)
	})
	if err != nil {
		uc.logger.Error("Failed to delete listing", zap.Error(err), zap.String("listing_id", id))
		return err
	}
	uc.d.invalidate(ctx, uc.logger, listing.ID)
	uc.d.releaseImage(ctx, uc.logger, listing.Book.Image)

	if uc.d.Metrics != nil {
		uc.d.Metrics.ListingsDeleted.Inc()
	}
	uc.d.publish(ctx, uc.logger, SubjectListingDeleted, listingEvent(listing, viewer.AccountID, uc.d.now()))
	uc.logger.Info("Listing deleted", zap.String("listing_id", id), zap.String("status", string(listing.Status)))
	return nil
}

// GetListing returns the public detail of an APPROVED listing, redacted for guests.
func (uc *ListingUsecase) GetListing(ctx context.Context, viewer domain.Viewer, id string) (*domain.ListingView, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.GetListing")
	defer span.End()

	listing, err := uc.cachedListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsPubliclyVisible(listing) {
		return nil, domain.ErrNotFound
	}

	views, err := uc.d.views(ctx, []*domain.Listing{listing}, viewer.RevealSensitive())
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (uc *ListingUsecase) cachedListing(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.d.Cache != nil {
		cached, err := uc.d.Cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("Listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.d.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.d.Cache != nil {
		if err := uc.d.Cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("Listing cache write failed", zap.String("listing_id", id), zap.Error(err))
		}
	}
	return listing, nil
}

// SearchListings searches public listings. The status filter is always forced to APPROVED.
func (uc *ListingUsecase) SearchListings(ctx context.Context, viewer domain.Viewer, filter domain.ListingFilter) ([]domain.ListingView, int64, error) {
	ctx, span := tracer.Start(ctx, "ListingUsecase.SearchListings")
	defer span.End()

	f := domain.PublicFilter(filter)
	f.Normalize()
	uc.logger.Debug("Searching listings", zap.String("query", f.Query), zap.String("province", f.Province), zap.Int32("page", f.Page))

	listings, total, err := uc.d.Listings.FindByFilter(ctx, f)
	if err != nil {
		uc.logger.Error("Failed to search listings", zap.Error(err))
		return nil, 0, err
	}
	views, err := uc.d.views(ctx, listings, viewer.RevealSensitive())
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// ListByProvince is a public browse by location.
func (uc *ListingUsecase) ListByProvince(ctx context.Context, viewer domain.Viewer, province string, page domain.Page) ([]domain.ListingView, int64, error) {
	if province == "" {
		return nil, 0, fmt.Errorf("%w: province is required", domain.ErrInvalidInput)
	}
	return uc.SearchListings(ctx, viewer, domain.ListingFilter{Province: province, Page: page.Page, Limit: page.Limit})
}

// MyListings returns every listing the viewer owns, whatever its status.
func (uc *ListingUsecase) MyListings(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]domain.ListingView, int64, error) {
	if d := domain.AuthorizeRole(viewer, domain.RoleUser); d != domain.Allow {
		return nil, 0, d.Err()
	}
	f := domain.ListingFilter{OwnerID: viewer.AccountID, Page: page.Page, Limit: page.Limit}
	f.Normalize()

	listings, total, err := uc.d.Listings.FindByFilter(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views, err := uc.d.views(ctx, listings, true)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}
