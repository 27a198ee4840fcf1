package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTestListing(status ListingStatus) *Listing {
	return &Listing{
		ID:          "l1",
		OwnerID:     "owner-1",
		Book:        Book{Title: "Dune", Author: "Herbert", Price: 10, Image: "photos/old.jpg"},
		ContactInfo: "0900",
		Status:      status,
		Version:     1,
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
}

func TestUserTransitions(t *testing.T) {
	all := []ListingStatus{StatusPending, StatusApproved, StatusDeclined, StatusSold}
	allowed := map[[2]ListingStatus]bool{
		{StatusPending, StatusApproved}: true,
		{StatusPending, StatusDeclined}: true,
		{StatusApproved, StatusSold}:    true,
		{StatusDeclined, StatusPending}: true,
	}
	for _, from := range all {
		for _, to := range all {
			tr, err := NewUserTransition(from, to)
			if allowed[[2]ListingStatus{from, to}] {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, UserTransition, tr.Kind)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestUserTransition_UnknownStatus(t *testing.T) {
	_, err := NewUserTransition(StatusPending, ListingStatus("ARCHIVED"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = NewUserTransition(ListingStatus(""), StatusApproved)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAdminOverride_AnyKnownTarget(t *testing.T) {
	tr, err := NewAdminOverride(StatusSold, StatusPending)
	require.NoError(t, err)
	assert.Equal(t, AdminOverride, tr.Kind)
	assert.Equal(t, "admin_override", tr.Kind.String())

	_, err = NewAdminOverride(StatusPending, ListingStatus("bogus"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApply_RejectsStaleTransition(t *testing.T) {
	l := newTestListing(StatusApproved)
	tr, err := NewUserTransition(StatusPending, StatusApproved)
	require.NoError(t, err)

	assert.ErrorIs(t, l.Apply(tr, t0), ErrConflict)
	assert.Equal(t, StatusApproved, l.Status)
}

func TestParseListingStatus(t *testing.T) {
	s, err := ParseListingStatus(" approved ")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, s)

	_, err = ParseListingStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewListing(t *testing.T) {
	l, err := NewListing("owner-1", Book{Title: "Dune", Author: "Herbert", Price: 5}, "0900", nil, t0)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, l.Status)
	assert.Equal(t, int64(1), l.Version)

	_, err = NewListing("owner-1", Book{Title: "Dune", Author: "Herbert"}, "", nil, t0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = NewListing("", Book{Title: "Dune", Author: "Herbert", Price: 5}, "", nil, t0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplyContentEdit(t *testing.T) {
	later := t0.Add(time.Hour)

	t.Run("sold is immutable", func(t *testing.T) {
		l := newTestListing(StatusSold)
		_, err := l.ApplyContentEdit(ContentPatch{Price: floatPtr(20)}, later)
		assert.ErrorIs(t, err, ErrImmutable)
		assert.Equal(t, 10.0, l.Book.Price)
	})

	t.Run("declined goes back to pending", func(t *testing.T) {
		l := newTestListing(StatusDeclined)
		res, err := l.ApplyContentEdit(ContentPatch{Description: strPtr("fixed")}, later)
		require.NoError(t, err)
		assert.True(t, res.Resubmitted)
		assert.Equal(t, StatusPending, l.Status)
		assert.Equal(t, later, l.UpdatedAt)
	})

	t.Run("approved keeps status", func(t *testing.T) {
		l := newTestListing(StatusApproved)
		res, err := l.ApplyContentEdit(ContentPatch{Price: floatPtr(8)}, later)
		require.NoError(t, err)
		assert.False(t, res.Resubmitted)
		assert.Equal(t, StatusApproved, l.Status)
		assert.Equal(t, 8.0, l.Book.Price)
	})

	t.Run("empty title and author are ignored", func(t *testing.T) {
		l := newTestListing(StatusPending)
		_, err := l.ApplyContentEdit(ContentPatch{Title: strPtr(""), Author: strPtr("")}, later)
		require.NoError(t, err)
		assert.Equal(t, "Dune", l.Book.Title)
		assert.Equal(t, "Herbert", l.Book.Author)
	})

	t.Run("new image releases the old one", func(t *testing.T) {
		l := newTestListing(StatusPending)
		res, err := l.ApplyContentEdit(ContentPatch{Image: strPtr("photos/new.jpg")}, later)
		require.NoError(t, err)
		assert.Equal(t, "photos/old.jpg", res.ReleasedImage)
		assert.Equal(t, "photos/new.jpg", l.Book.Image)
	})

	t.Run("same image releases nothing", func(t *testing.T) {
		l := newTestListing(StatusPending)
		res, err := l.ApplyContentEdit(ContentPatch{Image: strPtr("photos/old.jpg")}, later)
		require.NoError(t, err)
		assert.Empty(t, res.ReleasedImage)
	})

	t.Run("invalid result leaves listing untouched", func(t *testing.T) {
		l := newTestListing(StatusDeclined)
		_, err := l.ApplyContentEdit(ContentPatch{Price: floatPtr(0), ContactInfo: strPtr("new")}, later)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, StatusDeclined, l.Status)
		assert.Equal(t, "0900", l.ContactInfo)
		assert.Equal(t, 10.0, l.Book.Price)
	})
}

func TestSoldTransition(t *testing.T) {
	for _, s := range []ListingStatus{StatusPending, StatusDeclined, StatusSold} {
		_, err := newTestListing(s).SoldTransition()
		assert.ErrorIs(t, err, ErrInvalidTransition, s)
	}
	tr, err := newTestListing(StatusApproved).SoldTransition()
	require.NoError(t, err)
	assert.Equal(t, StatusSold, tr.To)
}

func TestCheckDeletable(t *testing.T) {
	assert.ErrorIs(t, newTestListing(StatusApproved).CheckDeletable(), ErrInvalidTransition)
	for _, s := range []ListingStatus{StatusPending, StatusDeclined, StatusSold} {
		assert.NoError(t, newTestListing(s).CheckDeletable(), s)
	}
}
