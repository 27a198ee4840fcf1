package domain

import "time"

const (
	ContactHiddenSentinel = "🔒 Log in to view contact information"
	OwnerHiddenSentinel   = "🔒 Log in to view"
)

// ListingView is the read-facing representation of a listing. It is built per
// request and never persisted.
type ListingView struct {
	ID          string
	Book        Book
	ContactInfo string
	OwnerID     *string
	OwnerName   string
	Status      ListingStatus
	Category    *Category // head of the ordered category sequence
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewListingView applies the redaction policy. owner may be nil if the account
// no longer exists; the view then carries an empty owner name.
func NewListingView(l *Listing, owner *Account, revealSensitive bool) ListingView {
	v := ListingView{
		ID:        l.ID,
		Book:      l.Book,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if c := l.PrimaryCategory(); c != nil {
		cat := *c
		v.Category = &cat
	}

	if !revealSensitive {
		v.ContactInfo = ContactHiddenSentinel
		v.OwnerID = nil
		v.OwnerName = OwnerHiddenSentinel
		return v
	}

	v.ContactInfo = l.ContactInfo
	ownerID := l.OwnerID
	v.OwnerID = &ownerID
	if owner != nil {
		v.OwnerName = owner.Name
	}
	return v
}

// IsPubliclyVisible reports whether a listing may appear in public collections or detail.
func IsPubliclyVisible(l *Listing) bool {
	return l.Status == StatusApproved
}

// PublicFilter forces the APPROVED status onto a caller-supplied filter.
func PublicFilter(f ListingFilter) ListingFilter {
	approved := StatusApproved
	f.Status = &approved
	f.OwnerID = ""
	return f
}
