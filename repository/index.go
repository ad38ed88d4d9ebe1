package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/utils"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"mood_entries": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "timestamp", Value: -1},
				},
				Options: options.Index().SetName("user_entries_date"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "mood", Value: 1},
				},
				Options: options.Index().SetName("user_entries_mood"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "activities", Value: 1},
				},
				Options: options.Index().SetName("user_entries_activities"),
			},
		},
		"insights": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "period_end", Value: -1},
				},
				Options: options.Index().SetName("user_insights_period"),
			},
		},
		"notifications": {
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "read", Value: 1},
					{Key: "timestamp", Value: -1},
				},
				Options: options.Index().SetName("user_notifications_unread"),
			},
		},
		"users": {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("email_unique").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}},
				Options: options.Index().SetName("user_id_unique").SetUnique(true),
			},
		},
		"sessions": {
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("session_id_unique").SetUnique(true),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "is_active", Value: 1},
				},
				Options: options.Index().SetName("user_active_sessions"),
			},
			{
				Keys:    bson.D{{Key: "expires_at", Value: 1}},
				Options: options.Index().SetName("session_expiry").SetExpireAfterSeconds(0),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	utils.Logger.Info("Successfully created all indexes")
	return nil
}
