package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportUsecase_FileReport(t *testing.T) {
	ctx := context.Background()

	t.Run("guest may report", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(alice, domain.StatusApproved)

		r, err := NewReportUsecase(f.deps).FileReport(ctx, domain.Guest(), seeded.ID, "  looks like a scam ")
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, domain.ReportOpen, r.Status)
		assert.Equal(t, "looks like a scam", r.Reason)
		assert.Empty(t, r.AdminID)
		assert.Nil(t, r.ResolvedAt)
		assert.Equal(t, 1, f.published(SubjectReportFiled))
	})

	t.Run("reason is required", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(alice, domain.StatusApproved)
		_, err := NewReportUsecase(f.deps).FileReport(ctx, viewerOf(bob), seeded.ID, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture()
		seeded := f.seed(alice, domain.StatusApproved)
		_, err := NewReportUsecase(f.deps).FileReport(ctx, viewerOf(bob), seeded.ID, strings.Repeat("x", maxReasonLength+1))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("listing must exist", func(t *testing.T) {
		f := newFixture()
		_, err := NewReportUsecase(f.deps).FileReport(ctx, viewerOf(bob), "nope", "spam")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, f.reports.byID)
	})
}

func TestReportUsecase_ResolveReport(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *domain.Report) {
		f := newFixture()
		seeded := f.seed(alice, domain.StatusApproved)
		r, err := NewReportUsecase(f.deps).FileReport(ctx, viewerOf(bob), seeded.ID, "offensive")
		require.NoError(t, err)
		return f, r
	}

	t.Run("resolve leaves the listing untouched", func(t *testing.T) {
		f, r := setup(t)
		resolved, err := NewReportUsecase(f.deps).ResolveReport(ctx, viewerOf(root), r.ID, "resolved")
		require.NoError(t, err)
		assert.Equal(t, domain.ReportResolved, resolved.Status)
		assert.Equal(t, root.ID, resolved.AdminID)
		require.NotNil(t, resolved.ResolvedAt)
		assert.Equal(t, testNow, *resolved.ResolvedAt)
		assert.Equal(t, domain.StatusApproved, f.listings.get(r.ListingID).Status)
		assert.Equal(t, 1, f.published(SubjectReportResolved))
	})

	t.Run("resolved report may be dismissed later", func(t *testing.T) {
		f, r := setup(t)
		uc := NewReportUsecase(f.deps)
		_, err := uc.ResolveReport(ctx, viewerOf(root), r.ID, "RESOLVED")
		require.NoError(t, err)
		again, err := uc.ResolveReport(ctx, viewerOf(root), r.ID, "DISMISSED")
		require.NoError(t, err)
		assert.Equal(t, domain.ReportDismissed, again.Status)
	})

	t.Run("open is not a resolution", func(t *testing.T) {
		f, r := setup(t)
		_, err := NewReportUsecase(f.deps).ResolveReport(ctx, viewerOf(root), r.ID, "OPEN")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("non admin is forbidden", func(t *testing.T) {
		f, r := setup(t)
		_, err := NewReportUsecase(f.deps).ResolveReport(ctx, viewerOf(alice), r.ID, "RESOLVED")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing report", func(t *testing.T) {
		f, _ := setup(t)
		_, err := NewReportUsecase(f.deps).ResolveReport(ctx, viewerOf(root), "nope", "RESOLVED")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReportUsecase_ListReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seeded := f.seed(alice, domain.StatusApproved)
	uc := NewReportUsecase(f.deps)
	for _, reason := range []string{"a", "b", "c"} {
		_, err := uc.FileReport(ctx, domain.Guest(), seeded.ID, reason)
		require.NoError(t, err)
	}
	_, err := uc.ResolveReport(ctx, viewerOf(root), "report-1", "DISMISSED")
	require.NoError(t, err)

	open, total, err := uc.ListReports(ctx, viewerOf(root), "open", domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, open, 2)

	_, total, err = uc.ListReports(ctx, viewerOf(root), "", domain.Page{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, _, err = uc.ListReports(ctx, viewerOf(root), "closed", domain.Page{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, _, err = uc.ListReports(ctx, domain.Guest(), "", domain.Page{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
