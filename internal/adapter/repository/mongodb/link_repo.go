package mongodb

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// linkStore maintains the ordered listing/category association.
// It is used by the listing and category repositories inside their transactions.
type linkStore struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func newLinkStore(db *mongo.Database, log *logger.Logger) *linkStore {
	return &linkStore{
		collection: db.Collection(listingLinksCollection),
		logger:     log.Named("LinkStore"),
	}
}

func (s *linkStore) indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "category_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "listing_id", Value: 1}, {Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
	}
}

// replace writes the links of one listing in the given order.
func (s *linkStore) replace(ctx context.Context, listingID primitive.ObjectID, categoryIDs []string) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{"listing_id": listingID}); err != nil {
		return fmt.Errorf("delete links: %w", err)
	}
	cats := objectIDs(categoryIDs)
	if len(cats) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(cats))
	for i, c := range cats {
		docs = append(docs, linkDocument{ListingID: listingID, CategoryID: c, Position: i})
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		s.logger.Error("Failed to insert category links", zap.String("listing_id", listingID.Hex()), zap.Error(err))
		return fmt.Errorf("insert links: %w", err)
	}
	return nil
}

// forListings returns category ids per listing, ordered by position.
func (s *linkStore) forListings(ctx context.Context, listingIDs []primitive.ObjectID) (map[primitive.ObjectID][]primitive.ObjectID, error) {
	out := make(map[primitive.ObjectID][]primitive.ObjectID, len(listingIDs))
	if len(listingIDs) == 0 {
		return out, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "listing_id", Value: 1}, {Key: "position", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"listing_id": bson.M{"$in": listingIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find links: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []linkDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode links: %w", err)
	}
	for _, d := range docs {
		out[d.ListingID] = append(out[d.ListingID], d.CategoryID)
	}
	return out, nil
}

// listingsInCategory returns the ids of listings linked to a category.
func (s *linkStore) listingsInCategory(ctx context.Context, categoryID primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := s.collection.Distinct(ctx, "listing_id", bson.M{"category_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("distinct links: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if oid, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, oid)
		}
	}
	return ids, nil
}

func (s *linkStore) deleteForListings(ctx context.Context, listingIDs []primitive.ObjectID) error {
	if len(listingIDs) == 0 {
		return nil
	}
	_, err := s.collection.DeleteMany(ctx, bson.M{"listing_id": bson.M{"$in": listingIDs}})
	return err
}

func (s *linkStore) deleteForCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"category_id": categoryID})
	return err
}

// approvedCounts counts APPROVED listings per category.
func (s *linkStore) approvedCounts(ctx context.Context) (map[primitive.ObjectID]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         listingsCollection,
			"localField":   "listing_id",
			"foreignField": "_id",
			"as":           "listing",
		}}},
		{{Key: "$unwind", Value: "$listing"}},
		{{Key: "$match", Value: bson.M{"listing.status": string(domain.StatusApproved)}}},
		{{Key: "$group", Value: bson.M{"_id": "$category_id", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate category counts: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Count int64              `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode category counts: %w", err)
	}
	out := make(map[primitive.ObjectID]int64, len(rows))
	for _, r := range rows {
		out[r.ID] = r.Count
	}
	return out, nil
}
