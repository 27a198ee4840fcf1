package mongodb

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Store groups the repositories sharing one database.
type Store struct {
	Listings   *ListingRepository
	Accounts   *AccountRepository
	Reports    *ReportRepository
	Categories *CategoryRepository
	Tx         *TxManager
	db         *mongo.Database
	logger     *logger.Logger
}

// NewStore builds all repositories. Transactions require a replica set; with
// useTransactions false the TxManager runs callbacks without a session.
func NewStore(client *mongo.Client, database string, useTransactions bool, log *logger.Logger) *Store {
	db := client.Database(database)
	return &Store{
		Listings:   NewListingRepository(db, log),
		Accounts:   NewAccountRepository(db, log),
		Reports:    NewReportRepository(db, log),
		Categories: NewCategoryRepository(db, log),
		Tx:         NewTxManager(client, useTransactions, log),
		db:         db,
		logger:     log.Named("MongoStore"),
	}
}

// EnsureIndexes creates the indexes of every collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	sets := map[string][]mongo.IndexModel{
		listingsCollection:     s.Listings.indexes(),
		listingLinksCollection: s.Listings.links.indexes(),
		accountsCollection:     s.Accounts.indexes(),
		reportsCollection:      s.Reports.indexes(),
		categoriesCollection:   s.Categories.indexes(),
	}
	for name, models := range sets {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			s.logger.Error("Failed to create indexes", zap.String("collection", name), zap.Error(err))
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	s.logger.Info("Indexes ensured", zap.Int("collections", len(sets)))
	return nil
}
