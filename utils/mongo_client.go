package utils

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoSettings struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	RetryWrites     bool
}

// ConnectMongo dials and pings the deployment.
func ConnectMongo(ctx context.Context, s MongoSettings) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(s.URI).
		SetMaxPoolSize(s.MaxPoolSize).
		SetMinPoolSize(s.MinPoolSize).
		SetMaxConnIdleTime(s.MaxConnIdleTime).
		SetRetryWrites(s.RetryWrites)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}
