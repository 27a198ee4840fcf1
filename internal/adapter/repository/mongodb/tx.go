package mongodb

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TxManager implements domain.TxManager with MongoDB sessions.
type TxManager struct {
	client  *mongo.Client
	enabled bool
	logger  *logger.Logger
}

func NewTxManager(client *mongo.Client, enabled bool, log *logger.Logger) *TxManager {
	return &TxManager{client: client, enabled: enabled, logger: log.Named("TxManager")}
}

// WithinTransaction runs fn with a session context so every repository call
// inside it joins the same transaction.
func (m *TxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled {
		return fn(ctx)
	}
	session, err := m.client.StartSession()
	if err != nil {
		m.logger.Error("Failed to start session", zap.Error(err))
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		m.logger.Warn("Transaction aborted", zap.Error(err))
	}
	return err
}
