package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewListingView_Redacted(t *testing.T) {
	l := newTestListing(StatusApproved)
	l.Categories = []Category{{ID: "c1", Name: "Sci-fi"}, {ID: "c2", Name: "Classics"}}

	got := NewListingView(l, &Account{ID: "owner-1", Name: "Lan"}, false)
	want := ListingView{
		ID:          "l1",
		Book:        l.Book,
		ContactInfo: ContactHiddenSentinel,
		OwnerID:     nil,
		OwnerName:   OwnerHiddenSentinel,
		Status:      StatusApproved,
		Category:    &Category{ID: "c1", Name: "Sci-fi"},
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("redacted view mismatch (-want +got):\n%s", diff)
	}
}

func TestNewListingView_Revealed(t *testing.T) {
	l := newTestListing(StatusApproved)
	ownerID := "owner-1"

	got := NewListingView(l, &Account{ID: "owner-1", Name: "Lan"}, true)
	want := ListingView{
		ID:          "l1",
		Book:        l.Book,
		ContactInfo: "0900",
		OwnerID:     &ownerID,
		OwnerName:   "Lan",
		Status:      StatusApproved,
		CreatedAt:   t0,
		UpdatedAt:   t0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("revealed view mismatch (-want +got):\n%s", diff)
	}
}

func TestNewListingView_MissingOwner(t *testing.T) {
	v := NewListingView(newTestListing(StatusApproved), nil, true)
	assert.Empty(t, v.OwnerName)
	assert.Equal(t, "owner-1", *v.OwnerID)
}

func TestNewListingView_DoesNotAliasCategory(t *testing.T) {
	l := newTestListing(StatusApproved)
	l.Categories = []Category{{ID: "c1", Name: "Sci-fi"}}
	v := NewListingView(l, nil, false)
	l.Categories[0].Name = "changed"
	assert.Equal(t, "Sci-fi", v.Category.Name)
}

func TestPublicFilter(t *testing.T) {
	declined := StatusDeclined
	f := PublicFilter(ListingFilter{Status: &declined, OwnerID: "x", Query: "dune"})
	assert.Equal(t, StatusApproved, *f.Status)
	assert.Empty(t, f.OwnerID)
	assert.Equal(t, "dune", f.Query)
	assert.True(t, IsPubliclyVisible(newTestListing(StatusApproved)))
	assert.False(t, IsPubliclyVisible(newTestListing(StatusPending)))
}
