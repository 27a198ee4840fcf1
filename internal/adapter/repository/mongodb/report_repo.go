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

type ReportRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewReportRepository(db *mongo.Database, log *logger.Logger) *ReportRepository {
	return &ReportRepository{
		collection: db.Collection(reportsCollection),
		logger:     log.Named("ReportRepository"),
	}
}

func (r *ReportRepository) indexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "listing_id", Value: 1}}},
	}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	doc, err := toReportDocument(report)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert report", zap.Error(err), zap.String("listing_id", report.ListingID))
		return fmt.Errorf("%w: insert report: %v", domain.ErrRepository, err)
	}
	report.ID = doc.ID.Hex()
	return nil
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	doc, err := toReportDocument(report)
	if err != nil || doc.ID.IsZero() {
		return domain.ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"status":      doc.Status,
		"admin_id":    doc.AdminID,
		"resolved_at": doc.ResolvedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update)
	if err != nil {
		return fmt.Errorf("%w: update report: %v", domain.ErrRepository, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc reportDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find report: %v", domain.ErrRepository, err)
	}
	return doc.toDomain(), nil
}

func (r *ReportRepository) FindByFilter(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, int64, error) {
	query := bson.M{}
	if f.Status != nil {
		query["status"] = string(*f.Status)
	}
	page, limit := domain.NormalizePage(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: find reports: %v", domain.ErrRepository, err)
	}
	defer cursor.Close(ctx)

	var docs []reportDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("%w: decode reports: %v", domain.ErrRepository, err)
	}
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: count reports: %v", domain.ErrRepository, err)
	}
	reports := make([]*domain.Report, 0, len(docs))
	for i := range docs {
		reports = append(reports, docs[i].toDomain())
	}
	return reports, total, nil
}
