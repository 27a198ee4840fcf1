package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	listingsCollection     = "listings"
	accountsCollection     = "accounts"
	reportsCollection      = "reports"
	categoriesCollection   = "categories"
	listingLinksCollection = "listing_categories"
)

type bookDocument struct {
	Title       string  `bson:"title"`
	Author      string  `bson:"author"`
	Condition   string  `bson:"condition"`
	Price       float64 `bson:"price"`
	Description string  `bson:"description"`
	Image       string  `bson:"image,omitempty"`
	Province    string  `bson:"province"`
	District    string  `bson:"district"`
}

// listingDocument stores a listing. Categories live in listing_categories.
type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Book        bookDocument       `bson:"book"`
	ContactInfo string             `bson:"contact_info"`
	Status      string             `bson:"status"`
	Version     int64              `bson:"version"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// linkDocument is one row of the ordered listing/category association.
type linkDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ListingID  primitive.ObjectID `bson:"listing_id"`
	CategoryID primitive.ObjectID `bson:"category_id"`
	Position   int                `bson:"position"`
}

type accountDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Phone        string             `bson:"phone,omitempty"`
	Province     string             `bson:"province,omitempty"`
	District     string             `bson:"district,omitempty"`
	Ward         string             `bson:"ward,omitempty"`
	Role         string             `bson:"role"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type reportDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ListingID  string             `bson:"listing_id"`
	AdminID    string             `bson:"admin_id,omitempty"`
	Reason     string             `bson:"reason"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	ResolvedAt *time.Time         `bson:"resolved_at,omitempty"`
}

type categoryDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// objectID parses a hex id. An empty id yields NilObjectID so the driver generates one.
func objectID(id string) (primitive.ObjectID, error) {
	if id == "" {
		return primitive.NilObjectID, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id format %q: %w", id, err)
	}
	return oid, nil
}

// objectIDs parses ids, silently dropping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	oid, err := objectID(l.ID)
	if err != nil {
		return nil, err
	}
	return &listingDocument{
		ID:      oid,
		OwnerID: l.OwnerID,
		Book: bookDocument{
			Title:       l.Book.Title,
			Author:      l.Book.Author,
			Condition:   l.Book.Condition,
			Price:       l.Book.Price,
			Description: l.Book.Description,
			Image:       l.Book.Image,
			Province:    l.Book.Province,
			District:    l.Book.District,
		},
		ContactInfo: l.ContactInfo,
		Status:      string(l.Status),
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:      d.ID.Hex(),
		OwnerID: d.OwnerID,
		Book: domain.Book{
			Title:       d.Book.Title,
			Author:      d.Book.Author,
			Condition:   d.Book.Condition,
			Price:       d.Book.Price,
			Description: d.Book.Description,
			Image:       d.Book.Image,
			Province:    d.Book.Province,
			District:    d.Book.District,
		},
		ContactInfo: d.ContactInfo,
		Status:      domain.ListingStatus(d.Status),
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toAccountDocument(a *domain.Account) (*accountDocument, error) {
	oid, err := objectID(a.ID)
	if err != nil {
		return nil, err
	}
	return &accountDocument{
		ID:           oid,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Phone:        a.Phone,
		Province:     a.Province,
		District:     a.District,
		Ward:         a.Ward,
		Role:         string(a.Role),
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}

func (d *accountDocument) toDomain() *domain.Account {
	return &domain.Account{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Province:     d.Province,
		District:     d.District,
		Ward:         d.Ward,
		Role:         domain.Role(d.Role),
		Status:       domain.AccountStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toReportDocument(r *domain.Report) (*reportDocument, error) {
	oid, err := objectID(r.ID)
	if err != nil {
		return nil, err
	}
	return &reportDocument{
		ID:         oid,
		ListingID:  r.ListingID,
		AdminID:    r.AdminID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}, nil
}

func (d *reportDocument) toDomain() *domain.Report {
	return &domain.Report{
		ID:         d.ID.Hex(),
		ListingID:  d.ListingID,
		AdminID:    d.AdminID,
		Reason:     d.Reason,
		Status:     domain.ReportStatus(d.Status),
		CreatedAt:  d.CreatedAt,
		ResolvedAt: d.ResolvedAt,
	}
}

func (d *categoryDocument) toDomain() domain.Category {
	return domain.Category{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
