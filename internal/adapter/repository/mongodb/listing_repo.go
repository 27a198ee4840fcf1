package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListingRepository implements domain.ListingRepository. Category links are
// written alongside the listing; callers wrap multi-document writes in a transaction.
type ListingRepository struct {
	collection *mongo.Collection
	categories *mongo.Collection
	links      *linkStore
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection(listingsCollection),
		categories: db.Collection(categoriesCollection),
		links:      newLinkStore(db, log),
		logger:     log.Named("ListingRepository"),
	}
}

func (r *ListingRepository) indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "book.province", Value: 1}, {Key: "book.district", Value: 1}}},
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("%w: insert listing: %v", domain.ErrRepository, err)
	}
	if err := r.links.replace(ctx, doc.ID, listing.CategoryIDs()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	listing.ID = doc.ID.Hex()
	r.logger.Debug("Listing inserted", zap.String("listing_id", listing.ID))
	return nil
}

// Update replaces the mutable fields if the stored version equals expectedVersion.
func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing, expectedVersion int64) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return domain.ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"book":         doc.Book,
		"contact_info": doc.ContactInfo,
		"status":       doc.Status,
		"version":      doc.Version,
		"updated_at":   doc.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID, "version": expectedVersion}, update)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Error(err), zap.String("listing_id", listing.ID))
		return fmt.Errorf("%w: update listing: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return r.missOrConflict(ctx, doc.ID)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string, expectedVersion int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid, "version": expectedVersion})
	if err != nil {
		return fmt.Errorf("%w: delete listing: %v", domain.ErrRepository, err)
	}
	if res.DeletedCount == 0 {
		return r.missOrConflict(ctx, oid)
	}
	if err := r.links.deleteForListings(ctx, []primitive.ObjectID{oid}); err != nil {
		return fmt.Errorf("%w: delete links: %v", domain.ErrRepository, err)
	}
	return nil
}

// missOrConflict tells a vanished listing apart from a version mismatch.
func (r *ListingRepository) missOrConflict(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: count listing: %v", domain.ErrRepository, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	r.logger.Warn("Listing version conflict", zap.String("listing_id", oid.Hex()))
	return domain.ErrConflict
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find listing: %v", domain.ErrRepository, err)
	}
	listings := []*domain.Listing{doc.toDomain()}
	if err := r.attachCategories(ctx, listings); err != nil {
		return nil, err
	}
	return listings[0], nil
}

func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (r *ListingRepository) FindByFilter(ctx context.Context, f domain.ListingFilter) ([]*domain.Listing, int64, error) {
	query := bson.M{}
	if f.Status != nil {
		query["status"] = string(*f.Status)
	}
	if f.OwnerID != "" {
		query["owner_id"] = f.OwnerID
	}
	if f.Query != "" {
		query["$or"] = bson.A{
			bson.M{"book.title": containsRegex(f.Query)},
			bson.M{"book.author": containsRegex(f.Query)},
		}
	}
	if f.Author != "" {
		query["book.author"] = containsRegex(f.Author)
	}
	if f.Province != "" {
		query["book.province"] = containsRegex(f.Province)
	}
	if f.District != "" {
		query["book.district"] = containsRegex(f.District)
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		query["book.price"] = price
	}
	if f.CategoryID != "" {
		cid, err := primitive.ObjectIDFromHex(f.CategoryID)
		if err != nil {
			return []*domain.Listing{}, 0, nil
		}
		ids, err := r.links.listingsInCategory(ctx, cid)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", domain.ErrRepository, err)
		}
		query["_id"] = bson.M{"$in": ids}
	}

	page, limit := domain.NormalizePage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to find listings", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: find listings: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("%w: decode listings: %v", domain.ErrRepository, err)
	}
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count listings: %v", domain.ErrRepository, err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		listings = append(listings, docs[i].toDomain())
	}
	if err := r.attachCategories(ctx, listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepository) DeleteByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("%w: find owner listings: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode owner listings: %v", domain.ErrRepository, err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	removed := make([]*domain.Listing, 0, len(docs))
	for i := range docs {
		ids = append(ids, docs[i].ID)
		removed = append(removed, docs[i].toDomain())
	}
	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, fmt.Errorf("%w: delete owner listings: %v", domain.ErrRepository, err)
	}
	if err := r.links.deleteForListings(ctx, ids); err != nil {
		return nil, fmt.Errorf("%w: delete owner links: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Deleted listings of owner", zap.String("owner_id", ownerID), zap.Int("count", len(ids)))
	return removed, nil
}

// attachCategories resolves the ordered categories of each listing in two queries.
func (r *ListingRepository) attachCategories(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, 0, len(listings))
	for _, l := range listings {
		if oid, err := primitive.ObjectIDFromHex(l.ID); err == nil {
			ids = append(ids, oid)
		}
	}
	byListing, err := r.links.forListings(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}

	var catIDs []primitive.ObjectID
	seen := map[primitive.ObjectID]bool{}
	for _, cats := range byListing {
		for _, c := range cats {
			if !seen[c] {
				seen[c] = true
				catIDs = append(catIDs, c)
			}
		}
	}
	if len(catIDs) == 0 {
		return nil
	}

	cursor, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": catIDs}})
	if err != nil {
		return fmt.Errorf("%w: find categories: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return fmt.Errorf("%w: decode categories: %v", domain.ErrRepository, err)
	}
	byID := make(map[primitive.ObjectID]domain.Category, len(docs))
	for i := range docs {
		byID[docs[i].ID] = docs[i].toDomain()
	}

	for _, l := range listings {
		oid, _ := primitive.ObjectIDFromHex(l.ID)
		l.Categories = nil
		for _, c := range byListing[oid] {
			if cat, ok := byID[c]; ok {
				l.Categories = append(l.Categories, cat)
			}
		}
	}
	return nil
}
