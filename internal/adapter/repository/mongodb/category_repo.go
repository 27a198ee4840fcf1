package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository struct {
	collection *mongo.Collection
	links      *linkStore
	logger     *logger.Logger
}

func NewCategoryRepository(db *mongo.Database, log *logger.Logger) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection(categoriesCollection),
		links:      newLinkStore(db, log),
		logger:     log.Named("CategoryRepository"),
	}
}

func (r *CategoryRepository) indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	doc := categoryDocument{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("%w: insert category: %v", domain.ErrRepository, err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return domain.ErrNotFound
	}
	update := bson.M{"$set": bson.M{"name": c.Name, "description": c.Description, "updated_at": c.UpdatedAt}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("%w: update category: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the category and its listing links.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete category: %v", domain.ErrRepository, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	if err := r.links.deleteForCategory(ctx, oid); err != nil {
		return fmt.Errorf("%w: delete category links: %v", domain.ErrRepository, err)
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc categoryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find category: %v", domain.ErrRepository, err)
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Category, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("%w: find categories: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode categories: %v", domain.ErrRepository, err)
	}
	byID := make(map[string]domain.Category, len(docs))
	for i := range docs {
		c := docs[i].toDomain()
		byID[c.ID] = c
	}
	out := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListingIDs returns the ids of listings linked to the category.
func (r *CategoryRepository) ListingIDs(ctx context.Context, id string) ([]string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	oids, err := r.links.listingsInCategory(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("%w: category listings: %v", domain.ErrRepository, err)
	}
	ids := make([]string, 0, len(oids))
	for _, o := range oids {
		ids = append(ids, o.Hex())
	}
	return ids, nil
}

func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode categories: %v", domain.ErrRepository, err)
	}
	counts, err := r.links.approvedCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRepository, err)
	}
	out := make([]domain.CategoryCount, 0, len(docs))
	for i := range docs {
		out = append(out, domain.CategoryCount{Category: docs[i].toDomain(), Listings: counts[docs[i].ID]})
	}
	return out, nil
}
