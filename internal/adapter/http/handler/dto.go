package handler

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
)

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Listings    *int64 `json:"listings,omitempty"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

type bookFields struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Condition   string  `json:"condition"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image,omitempty"`
	Province    string  `json:"province"`
	District    string  `json:"district"`
}

func toBookFields(b domain.Book) bookFields {
	return bookFields{
		Title:       b.Title,
		Author:      b.Author,
		Condition:   b.Condition,
		Price:       b.Price,
		Description: b.Description,
		Image:       b.Image,
		Province:    b.Province,
		District:    b.District,
	}
}

// listingViewResponse is the redacted public shape.
type listingViewResponse struct {
	ID string `json:"id"`
	bookFields
	ContactInfo string            `json:"contact_info"`
	OwnerID     *string           `json:"owner_id"`
	OwnerName   string            `json:"owner_name"`
	Status      string            `json:"status"`
	Category    *categoryResponse `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toListingViewResponse(v domain.ListingView) listingViewResponse {
	resp := listingViewResponse{
		ID:          v.ID,
		bookFields:  toBookFields(v.Book),
		ContactInfo: v.ContactInfo,
		OwnerID:     v.OwnerID,
		OwnerName:   v.OwnerName,
		Status:      string(v.Status),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.Category != nil {
		c := toCategoryResponse(*v.Category)
		resp.Category = &c
	}
	return resp
}

func toListingViewResponses(views []domain.ListingView) []listingViewResponse {
	out := make([]listingViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toListingViewResponse(v))
	}
	return out
}

// listingResponse is returned to the owner after a mutation.
type listingResponse struct {
	ID string `json:"id"`
	bookFields
	OwnerID     string             `json:"owner_id"`
	ContactInfo string             `json:"contact_info"`
	Status      string             `json:"status"`
	Categories  []categoryResponse `json:"categories"`
	Version     int64              `json:"version"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	cats := make([]categoryResponse, 0, len(l.Categories))
	for _, c := range l.Categories {
		cats = append(cats, toCategoryResponse(c))
	}
	return listingResponse{
		ID:          l.ID,
		bookFields:  toBookFields(l.Book),
		OwnerID:     l.OwnerID,
		ContactInfo: l.ContactInfo,
		Status:      string(l.Status),
		Categories:  cats,
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type submitListingRequest struct {
	bookFields
	ContactInfo string   `json:"contact_info"`
	CategoryIDs []string `json:"category_ids"`
}

type editListingRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Condition   *string  `json:"condition"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	ContactInfo *string  `json:"contact_info"`
	Province    *string  `json:"province"`
	District    *string  `json:"district"`
}

func (r editListingRequest) patch() domain.ContentPatch {
	return domain.ContentPatch{
		Title:       r.Title,
		Author:      r.Author,
		Condition:   r.Condition,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
		ContactInfo: r.ContactInfo,
		Province:    r.Province,
		District:    r.District,
	}
}

type accountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Province  string    `json:"province,omitempty"`
	District  string    `json:"district,omitempty"`
	Ward      string    `json:"ward,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Province:  a.Province,
		District:  a.District,
		Ward:      a.Ward,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type authResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Province *string `json:"province"`
	District *string `json:"district"`
	Ward     *string `json:"ward"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

type reportResponse struct {
	ID         string     `json:"id"`
	ListingID  string     `json:"listing_id"`
	AdminID    string     `json:"admin_id,omitempty"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:         r.ID,
		ListingID:  r.ListingID,
		AdminID:    r.AdminID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type imageResponse struct {
	URL string `json:"url"`
}
