package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/model"
	"mindwell/utils"
)

type NotificationRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotificationRepo(db *mongo.Database) *NotificationRepo {
	return &NotificationRepo{MongoCollection: db.Collection("notifications")}
}

func (r *NotificationRepo) InsertMany(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	timer := utils.TrackDBOperation("insert", "notifications")
	defer timer.ObserveDuration()

	docs := make([]interface{}, len(notifications))
	for i := range notifications {
		docs[i] = notifications[i]
	}
	if _, err := r.MongoCollection.InsertMany(ctx, docs); err != nil {
		utils.TrackError("database", "notification_creation_failed")
		return fmt.Errorf("insert notifications: %w", err)
	}
	return nil
}

// FindByUser lists notifications newest first.
func (r *NotificationRepo) FindByUser(ctx context.Context, userID string) ([]model.Notification, error) {
	timer := utils.TrackDBOperation("find", "notifications")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "notification_query_failed")
		return nil, fmt.Errorf("find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	out := []model.Notification{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return out, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	timer := utils.TrackDBOperation("update", "notifications")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.TrackError("database", "notification_update_failed")
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("update", "notifications")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		utils.TrackError("database", "notification_update_failed")
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepo) Delete(ctx context.Context, userID, id string) error {
	timer := utils.TrackDBOperation("delete", "notifications")
	defer timer.ObserveDuration()

	res, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "notification_deletion_failed")
		return fmt.Errorf("delete notification %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("count", "notifications")
	defer timer.ObserveDuration()

	n, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}
