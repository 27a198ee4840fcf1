package handler

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
)

// The interfaces below are satisfied by the usecase types.

type ListingService interface {
	Submit(ctx context.Context, viewer domain.Viewer, in usecase.SubmitInput) (*domain.Listing, error)
	EditContent(ctx context.Context, viewer domain.Viewer, id string, patch domain.ContentPatch) (*domain.Listing, error)
	MarkSold(ctx context.Context, viewer domain.Viewer, id string) (*domain.Listing, error)
	Delete(ctx context.Context, viewer domain.Viewer, id string) error
	GetListing(ctx context.Context, viewer domain.Viewer, id string) (*domain.ListingView, error)
	SearchListings(ctx context.Context, viewer domain.Viewer, filter domain.ListingFilter) ([]domain.ListingView, int64, error)
	ListByProvince(ctx context.Context, viewer domain.Viewer, province string, page domain.Page) ([]domain.ListingView, int64, error)
	MyListings(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]domain.ListingView, int64, error)
}

type ReportService interface {
	FileReport(ctx context.Context, viewer domain.Viewer, listingID, reason string) (*domain.Report, error)
	ResolveReport(ctx context.Context, viewer domain.Viewer, reportID, target string) (*domain.Report, error)
	ListReports(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]*domain.Report, int64, error)
}

type ModerationService interface {
	ListListings(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]domain.ListingView, int64, error)
	Moderate(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Listing, error)
	ListAccounts(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]*domain.Account, int64, error)
	GetAccount(ctx context.Context, viewer domain.Viewer, id string) (*domain.Account, error)
	SetAccountStatus(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, viewer domain.Viewer, id string) error
}

type AccountService interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.Account, string, error)
	Login(ctx context.Context, email, password string) (*domain.Account, string, error)
	AdminLogin(ctx context.Context, email, password string) (*domain.Account, string, error)
	Profile(ctx context.Context, viewer domain.Viewer) (*domain.Account, error)
	UpdateProfile(ctx context.Context, viewer domain.Viewer, patch domain.ProfilePatch) (*domain.Account, error)
	ChangePassword(ctx context.Context, viewer domain.Viewer, oldPassword, newPassword string) error
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.CategoryCount, error)
	CreateCategory(ctx context.Context, viewer domain.Viewer, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, viewer domain.Viewer, id, name, description string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, viewer domain.Viewer, id string) error
}

type ImageService interface {
	UploadImage(ctx context.Context, viewer domain.Viewer, fileName, contentType string, data []byte) (string, error)
}
