package usecase

import (
	"context"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.uber.org/zap"
)

// ModerationUsecase holds the administrator operations on listings and accounts.
// Every method is gated on the ADMIN role only; ownership never applies.
type ModerationUsecase struct {
	d      Deps
	logger *logger.Logger
}

func NewModerationUsecase(d Deps) *ModerationUsecase {
	return &ModerationUsecase{d: d, logger: d.log().Named("ModerationUsecase")}
}

func requireAdmin(viewer domain.Viewer) error {
	return domain.AuthorizeRole(viewer, domain.RoleAdmin).Err()
}

// ListListings returns all listings, or those in one status. status is matched case-insensitively.
func (uc *ModerationUsecase) ListListings(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]domain.ListingView, int64, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	f := domain.ListingFilter{Page: page.Page, Limit: page.Limit}
	if status != "" {
		s, err := domain.ParseListingStatus(status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = &s
	}
	f.Normalize()

	listings, total, err := uc.d.Listings.FindByFilter(ctx, f)
	if err != nil {
		uc.logger.Error("Failed to list listings for moderation", zap.Error(err))
		return nil, 0, err
	}
	views, err := uc.d.views(ctx, listings, true)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Moderate force-sets a listing's status. The transition table is not consulted.
func (uc *ModerationUsecase) Moderate(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Listing, error) {
	ctx, span := tracer.Start(ctx, "ModerationUsecase.Moderate")
	defer span.End()

	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	to, err := domain.ParseListingStatus(target)
	if err != nil {
		return nil, err
	}
	listing, err := uc.d.loadListing(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := domain.NewAdminOverride(listing.Status, to)
	if err != nil {
		return nil, err
	}
	expected := listing.Version
	if err := listing.Apply(t, uc.d.now()); err != nil {
		return nil, err
	}
	listing.Version = expected + 1

	if err := uc.d.Listings.Update(ctx, listing, expected); err != nil {
		uc.logger.Error("Failed to store moderation decision", zap.Error(err), zap.String("listing_id", id))
		return nil, err
	}
	uc.d.invalidate(ctx, uc.logger, listing.ID)
	uc.d.observeTransition(t)

	event := listingEvent(listing, viewer.AccountID, listing.UpdatedAt)
	event["from_status"] = string(t.From)
	uc.d.publish(ctx, uc.logger, SubjectListingModerated, event)
	uc.notifyOwner(ctx, listing)

	uc.logger.Info("Listing moderated",
		zap.String("listing_id", id),
		zap.String("admin_id", viewer.AccountID),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)))
	return listing, nil
}

func (uc *ModerationUsecase) notifyOwner(ctx context.Context, listing *domain.Listing) {
	if uc.d.Notifier == nil {
		return
	}
	owner, err := uc.d.Accounts.FindByID(ctx, listing.OwnerID)
	if err != nil {
		uc.logger.Warn("Cannot notify owner, account lookup failed", zap.String("owner_id", listing.OwnerID), zap.Error(err))
		return
	}
	if err := uc.d.Notifier.ListingModerated(ctx, owner, listing); err != nil {
		uc.logger.Warn("Failed to notify owner about moderation", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}

func (uc *ModerationUsecase) ListAccounts(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]*domain.Account, int64, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, 0, err
	}
	page.Page, page.Limit = domain.NormalizePage(page.Page, page.Limit)
	return uc.d.Accounts.List(ctx, page)
}

func (uc *ModerationUsecase) GetAccount(ctx context.Context, viewer domain.Viewer, id string) (*domain.Account, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	return uc.d.Accounts.FindByID(ctx, id)
}

// SetAccountStatus force-sets an account status, matched case-insensitively.
func (uc *ModerationUsecase) SetAccountStatus(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Account, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	status, err := domain.ParseAccountStatus(target)
	if err != nil {
		return nil, err
	}
	account, err := uc.d.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	old := account.Status
	account.Status = status
	account.UpdatedAt = uc.d.now()
	if err := uc.d.Accounts.Update(ctx, account); err != nil {
		uc.logger.Error("Failed to update account status", zap.Error(err), zap.String("account_id", id))
		return nil, err
	}

	uc.d.publish(ctx, uc.logger, SubjectAccountStatus, map[string]interface{}{
		"account_id": account.ID,
		"admin_id":   viewer.AccountID,
		"old_status": string(old),
		"new_status": string(status),
		"at":         account.UpdatedAt.Format(time.RFC3339Nano),
	})
	uc.logger.Info("Account status changed", zap.String("account_id", id), zap.String("from", string(old)), zap.String("to", string(status)))
	return account, nil
}

// DeleteAccount hard-deletes an account together with its listings. Reports are kept.
func (uc *ModerationUsecase) DeleteAccount(ctx context.Context, viewer domain.Viewer, id string) error {
	ctx, span := tracer.Start(ctx, "ModerationUsecase.DeleteAccount")
	defer span.End()

	if err := requireAdmin(viewer); err != nil {
		return err
	}
	if _, err := uc.d.Accounts.FindByID(ctx, id); err != nil {
		return err
	}

	var removed []*domain.Listing
	err := uc.d.inTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = uc.d.Listings.DeleteByOwner(ctx, id)
		if err != nil {
			return err
		}
		return uc.d.Accounts.Delete(ctx, id)
	})
	if err != nil {
		uc.logger.Error("Failed to delete account", zap.Error(err), zap.String("account_id", id))
		return err
	}

	for _, l := range removed {
		uc.d.invalidate(ctx, uc.logger, l.ID)
		uc.d.releaseImage(ctx, uc.logger, l.Book.Image)
	}
	uc.d.publish(ctx, uc.logger, SubjectAccountDeleted, map[string]interface{}{
		"account_id":       id,
		"admin_id":         viewer.AccountID,
		"listings_removed": len(removed),
		"at":               uc.d.now().Format(time.RFC3339Nano),
	})
	uc.logger.Info("Account deleted", zap.String("account_id", id), zap.Int("listings_removed", len(removed)))
	return nil
}
