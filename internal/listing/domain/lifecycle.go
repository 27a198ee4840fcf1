package domain

import (
	"fmt"
	"time"
)

// TransitionKind distinguishes owner-driven transitions, which must follow the
// state table, from administrator overrides, which may force any known status.
type TransitionKind int

const (
	UserTransition TransitionKind = iota
	AdminOverride
)

func (k TransitionKind) String() string {
	if k == AdminOverride {
		return "admin_override"
	}
	return "user"
}

// Transition is a validated status change. Build one with NewUserTransition or NewAdminOverride.
type Transition struct {
	Kind TransitionKind
	From ListingStatus
	To   ListingStatus
}

// userTransitions is the state table for owner-driven changes. SOLD is terminal.
var userTransitions = map[ListingStatus][]ListingStatus{
	StatusPending:  {StatusApproved, StatusDeclined},
	StatusApproved: {StatusSold},
	StatusDeclined: {StatusPending},
	StatusSold:     {},
}

// CanTransition reports whether to is reachable from from in the state table.
func CanTransition(from, to ListingStatus) bool {
	for _, next := range userTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func NewUserTransition(from, to ListingStatus) (Transition, error) {
	if !from.IsValid() || !to.IsValid() {
		return Transition{}, ErrInvalidStatus
	}
	if !CanTransition(from, to) {
		return Transition{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return Transition{Kind: UserTransition, From: from, To: to}, nil
}

// NewAdminOverride is not checked against the state table. Only the target must be known.
func NewAdminOverride(from, to ListingStatus) (Transition, error) {
	if !to.IsValid() {
		return Transition{}, ErrInvalidStatus
	}
	return Transition{Kind: AdminOverride, From: from, To: to}, nil
}

// Apply moves the listing to t.To. The transition must have been built from the current status.
func (l *Listing) Apply(t Transition, now time.Time) error {
	if t.From != l.Status {
		return fmt.Errorf("%w: transition built from %s but listing is %s", ErrConflict, t.From, l.Status)
	}
	l.Status = t.To
	l.UpdatedAt = now
	return nil
}

// NewListing creates a listing in the only valid initial state.
func NewListing(ownerID string, book Book, contact string, categories []Category, now time.Time) (*Listing, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := ValidateBook(book); err != nil {
		return nil, err
	}
	return &Listing{
		OwnerID:     ownerID,
		Book:        book,
		ContactInfo: contact,
		Status:      StatusPending,
		Categories:  categories,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func ValidateBook(b Book) error {
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if b.Author == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if b.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidInput)
	}
	return nil
}

// EditResult describes the side effects of a content edit.
type EditResult struct {
	// ReleasedImage is the previous image reference to free, empty if the image was not replaced.
	ReleasedImage string
	// Resubmitted is set when a DECLINED listing went back to PENDING.
	Resubmitted bool
}

// ApplyContentEdit patches book attributes in place. SOLD listings are immutable.
// A DECLINED listing returns to PENDING; APPROVED and PENDING keep their status.
func (l *Listing) ApplyContentEdit(p ContentPatch, now time.Time) (EditResult, error) {
	var res EditResult
	if l.Status == StatusSold {
		return res, ErrImmutable
	}

	b := l.Book
	if p.Title != nil && *p.Title != "" {
		b.Title = *p.Title
	}
	if p.Author != nil && *p.Author != "" {
		b.Author = *p.Author
	}
	if p.Condition != nil {
		b.Condition = *p.Condition
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Province != nil {
		b.Province = *p.Province
	}
	if p.District != nil {
		b.District = *p.District
	}
	if p.Image != nil && *p.Image != "" && *p.Image != b.Image {
		res.ReleasedImage = b.Image
		b.Image = *p.Image
	}
	if err := ValidateBook(b); err != nil {
		return EditResult{}, err
	}

	l.Book = b
	if p.ContactInfo != nil {
		l.ContactInfo = *p.ContactInfo
	}

	if l.Status == StatusDeclined {
		t, err := NewUserTransition(l.Status, StatusPending)
		if err != nil {
			return EditResult{}, err
		}
		if err := l.Apply(t, now); err != nil {
			return EditResult{}, err
		}
		res.Resubmitted = true
	}
	l.UpdatedAt = now
	return res, nil
}

// SoldTransition is the owner's mark-sold change; only APPROVED listings qualify.
func (l *Listing) SoldTransition() (Transition, error) {
	if l.Status != StatusApproved {
		return Transition{}, fmt.Errorf("%w: only approved listings can be marked sold, listing is %s", ErrInvalidTransition, l.Status)
	}
	return NewUserTransition(l.Status, StatusSold)
}

// CheckDeletable rejects owner deletion of APPROVED listings. PENDING, DECLINED and SOLD may be deleted.
func (l *Listing) CheckDeletable() error {
	if l.Status == StatusApproved {
		return fmt.Errorf("%w: approved listings cannot be deleted by the owner", ErrInvalidTransition)
	}
	return nil
}
