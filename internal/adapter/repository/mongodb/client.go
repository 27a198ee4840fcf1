package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, uri string, log *logger.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Error("Failed to connect to MongoDB", zap.Error(err))
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		log.Error("Failed to ping MongoDB", zap.Error(err))
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Info("Successfully connected and pinged MongoDB")
	return client, nil
}
