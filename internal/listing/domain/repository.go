package domain

import "context"

// ListingRepository persists listings and their ordered category links.
// Update and Delete are conditioned on Listing.Version and return ErrConflict
// when the stored version differs.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing, expectedVersion int64) error
	Delete(ctx context.Context, id string, expectedVersion int64) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter ListingFilter) ([]*Listing, int64, error)
	// DeleteByOwner removes all listings of an account and returns them.
	DeleteByOwner(ctx context.Context, ownerID string) ([]*Listing, error)
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Account, error)
	List(ctx context.Context, page Page) ([]*Account, int64, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	Update(ctx context.Context, report *Report) error
	FindByID(ctx context.Context, id string) (*Report, error)
	FindByFilter(ctx context.Context, filter ReportFilter) ([]*Report, int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Category, error)
	// FindByIDs returns categories in the order of ids, skipping unknown ones.
	FindByIDs(ctx context.Context, ids []string) ([]Category, error)
	// ListingIDs returns the ids of listings linked to the category, in any status.
	ListingIDs(ctx context.Context, id string) ([]string, error)
	ListWithCounts(ctx context.Context) ([]CategoryCount, error)
}

// TxManager runs fn in a single all-or-nothing storage unit.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// FileStorage holds uploaded images. Release failures are never fatal to callers.
type FileStorage interface {
	Store(ctx context.Context, fileName, contentType string, data []byte) (string, error)
	Release(ctx context.Context, ref string) (bool, error)
}

// ListingCache caches stored (never redacted) listings by id. SetListing must
// not overwrite an entry or a recent DeleteListing, so a fill racing a write
// cannot resurrect the old state.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*Listing, error)
	SetListing(ctx context.Context, listing *Listing) error
	DeleteListing(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Notifier tells owners about moderation decisions.
type Notifier interface {
	ListingModerated(ctx context.Context, to *Account, listing *Listing) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

type TokenIssuer interface {
	Issue(accountID string, role Role) (string, error)
}
