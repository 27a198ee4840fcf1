package handler

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/usecase"
	"github.com/stretchr/testify/mock"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Submit(ctx context.Context, viewer domain.Viewer, in usecase.SubmitInput) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) EditContent(ctx context.Context, viewer domain.Viewer, id string, patch domain.ContentPatch) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) MarkSold(ctx context.Context, viewer domain.Viewer, id string) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, viewer domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

func (m *MockListingService) GetListing(ctx context.Context, viewer domain.Viewer, id string) (*domain.ListingView, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingView), args.Error(1)
}

func (m *MockListingService) SearchListings(ctx context.Context, viewer domain.Viewer, filter domain.ListingFilter) ([]domain.ListingView, int64, error) {
	args := m.Called(ctx, viewer, filter)
	return args.Get(0).([]domain.ListingView), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingService) ListByProvince(ctx context.Context, viewer domain.Viewer, province string, page domain.Page) ([]domain.ListingView, int64, error) {
	args := m.Called(ctx, viewer, province, page)
	return args.Get(0).([]domain.ListingView), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingService) MyListings(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]domain.ListingView, int64, error) {
	args := m.Called(ctx, viewer, page)
	return args.Get(0).([]domain.ListingView), args.Get(1).(int64), args.Error(2)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) FileReport(ctx context.Context, viewer domain.Viewer, listingID, reason string) (*domain.Report, error) {
	args := m.Called(ctx, viewer, listingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) ResolveReport(ctx context.Context, viewer domain.Viewer, reportID, target string) (*domain.Report, error) {
	args := m.Called(ctx, viewer, reportID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) ListReports(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]*domain.Report, int64, error) {
	args := m.Called(ctx, viewer, status, page)
	return args.Get(0).([]*domain.Report), args.Get(1).(int64), args.Error(2)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) ListListings(ctx context.Context, viewer domain.Viewer, status string, page domain.Page) ([]domain.ListingView, int64, error) {
	args := m.Called(ctx, viewer, status, page)
	return args.Get(0).([]domain.ListingView), args.Get(1).(int64), args.Error(2)
}

func (m *MockModerationService) Moderate(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Listing, error) {
	args := m.Called(ctx, viewer, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockModerationService) ListAccounts(ctx context.Context, viewer domain.Viewer, page domain.Page) ([]*domain.Account, int64, error) {
	args := m.Called(ctx, viewer, page)
	return args.Get(0).([]*domain.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockModerationService) GetAccount(ctx context.Context, viewer domain.Viewer, id string) (*domain.Account, error) {
	args := m.Called(ctx, viewer, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockModerationService) SetAccountStatus(ctx context.Context, viewer domain.Viewer, id, target string) (*domain.Account, error) {
	args := m.Called(ctx, viewer, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockModerationService) DeleteAccount(ctx context.Context, viewer domain.Viewer, id string) error {
	return m.Called(ctx, viewer, id).Error(0)
}

type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) UploadImage(ctx context.Context, viewer domain.Viewer, fileName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, viewer, fileName, contentType, data)
	return args.String(0), args.Error(1)
}
