package domain

import (
	"strings"
	"time"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "PENDING"
	StatusApproved ListingStatus = "APPROVED"
	StatusDeclined ListingStatus = "DECLINED"
	StatusSold     ListingStatus = "SOLD"
)

// IsValid checks if the ListingStatus is one of the defined constants.
func (s ListingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDeclined, StatusSold:
		return true
	}
	return false
}

// ParseListingStatus matches raw case-insensitively against the four known statuses.
func ParseListingStatus(raw string) (ListingStatus, error) {
	s := ListingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Book is the descriptive payload owned exclusively by one Listing.
type Book struct {
	Title       string
	Author      string
	Condition   string
	Price       float64
	Description string
	Image       string // file storage reference
	Province    string
	District    string
}

type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryCount is a category with the number of approved listings linked to it.
type CategoryCount struct {
	Category
	Listings int64
}

type Listing struct {
	ID          string
	OwnerID     string
	Book        Book
	ContactInfo string
	Status      ListingStatus
	// Categories is ordered by link position. Summary views surface only the head.
	Categories []Category
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PrimaryCategory returns the first linked category, or nil when the listing has none.
// Treating the head as "primary" is a display convention, not a business rule.
func (l *Listing) PrimaryCategory() *Category {
	if len(l.Categories) == 0 {
		return nil
	}
	return &l.Categories[0]
}

// CategoryIDs returns the ordered category identities.
func (l *Listing) CategoryIDs() []string {
	ids := make([]string, 0, len(l.Categories))
	for _, c := range l.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ContentPatch is a partial update of a listing's book attributes. Nil fields are left as is.
type ContentPatch struct {
	Title       *string
	Author      *string
	Condition   *string
	Price       *float64
	Description *string
	Image       *string
	ContactInfo *string
	Province    *string
	District    *string
}

// ListingFilter holds parameters for querying listings.
type ListingFilter struct {
	Query      string // matched against title and author
	Author     string
	Province   string
	District   string
	CategoryID string
	MinPrice   float64
	MaxPrice   float64
	OwnerID    string
	Status     *ListingStatus
	Page       int32
	Limit      int32
}

const (
	DefaultPageLimit int32 = 10
	MaxPageLimit     int32 = 100
)

// Normalize clamps paging to page >= 1 and 1 <= limit <= MaxPageLimit.
func (f *ListingFilter) Normalize() {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)
}

func NormalizePage(page, limit int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Page is a generic paging request for collections without filters.
type Page struct {
	Page  int32
	Limit int32
}

type Role string

const (
	RoleGuest Role = "GUEST"
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleUser, RoleAdmin:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountBanned    AccountStatus = "BANNED"
	AccountDeleted   AccountStatus = "DELETED"
)

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountPending, AccountActive, AccountSuspended, AccountBanned, AccountDeleted:
		return true
	}
	return false
}

// ParseAccountStatus matches raw case-insensitively against the five known statuses.
func ParseAccountStatus(raw string) (AccountStatus, error) {
	s := AccountStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Province     string
	District     string
	Ward         string
	Role         Role
	Status       AccountStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the account may create listings and log in.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}

// ProfilePatch is a self-service profile update. Nil fields are left as is.
type ProfilePatch struct {
	Name     *string
	Phone    *string
	Province *string
	District *string
	Ward     *string
}

type ReportStatus string

const (
	ReportOpen      ReportStatus = "OPEN"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportOpen, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// ParseReportStatus matches raw case-insensitively against the three known statuses.
func ParseReportStatus(raw string) (ReportStatus, error) {
	s := ReportStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ParseResolution accepts only the two closing statuses.
func ParseResolution(raw string) (ReportStatus, error) {
	s, err := ParseReportStatus(raw)
	if err != nil {
		return "", err
	}
	if s == ReportOpen {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Report is an abuse flag against a listing. ListingID may dangle once the listing is deleted.
type Report struct {
	ID         string
	ListingID  string
	AdminID    string // set when resolved
	Reason     string
	Status     ReportStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// ReportFilter holds parameters for querying reports.
type ReportFilter struct {
	Status *ReportStatus
	Page   int32
	Limit  int32
}
