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
	"go.uber.org/zap"
)

type AccountRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewAccountRepository(db *mongo.Database, log *logger.Logger) *AccountRepository {
	return &AccountRepository{
		collection: db.Collection(accountsCollection),
		logger:     log.Named("AccountRepository"),
	}
}

func (r *AccountRepository) indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	doc, err := toAccountDocument(account)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		r.logger.Error("Failed to insert account", zap.Error(err))
		return fmt.Errorf("%w: insert account: %v", domain.ErrRepository, err)
	}
	account.ID = doc.ID.Hex()
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	doc, err := toAccountDocument(account)
	if err != nil || doc.ID.IsZero() {
		return domain.ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"name":          doc.Name,
		"password_hash": doc.PasswordHash,
		"phone":         doc.Phone,
		"province":      doc.Province,
		"district":      doc.District,
		"ward":          doc.Ward,
		"role":          doc.Role,
		"status":        doc.Status,
		"updated_at":    doc.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("%w: update account: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: delete account: %v", domain.ErrRepository, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find account: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByIDs returns the accounts found, keyed by id. Unknown ids are skipped.
func (r *AccountRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	out := make(map[string]*domain.Account, len(ids))
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("%w: find accounts: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode accounts: %v", domain.ErrRepository, err)
	}
	for i := range docs {
		a := docs[i].toDomain()
		out[a.ID] = a
	}
	return out, nil
}

func (r *AccountRepository) List(ctx context.Context, page domain.Page) ([]*domain.Account, int64, error) {
	p, limit := domain.NormalizePage(page.Page, page.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((p - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: list accounts: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []accountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("%w: decode accounts: %v", domain.ErrRepository, err)
	}
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count accounts: %v", domain.ErrRepository, err)
	}
	accounts := make([]*domain.Account, 0, len(docs))
	for i := range docs {
		accounts = append(accounts, docs[i].toDomain())
	}
	return accounts, total, nil
}
