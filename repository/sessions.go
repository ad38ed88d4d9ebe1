package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindwell/model"
	"mindwell/utils"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{MongoCollection: db.Collection("sessions")}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if session == nil || session.SessionID == "" || session.UserID == "" {
		utils.TrackError("database", "invalid_session_data")
		return errors.New("invalid session data: missing required fields")
	}
	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database", "session_creation_failed")
		return fmt.Errorf("failed to create session in database: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &session, nil
}

// EndSession deactivates the session. Ending an unknown or already ended
// session is not an error.
func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now()}},
	)
	if err != nil {
		utils.TrackError("database", "session_end_failed")
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	n, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// EndLeastActiveSession ends the user's session with the oldest activity.
func (r *SessionRepo) EndLeastActiveSession(ctx context.Context, userID string) error {
	opts := options.FindOne().SetSort(bson.D{{Key: "last_activity_at", Value: 1}})

	var oldest model.Session
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"user_id": userID, "is_active": true}, opts).Decode(&oldest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find least active session: %w", err)
	}
	return r.EndSession(ctx, oldest.SessionID)
}

// GetUserActiveSessions lists live sessions, most recently used first.
func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	defer cursor.Close(ctx)

	sessions := []model.Session{}
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "last_activity_at": time.Now()}},
	)
	if err != nil {
		utils.TrackError("database", "session_end_failed")
		return fmt.Errorf("end sessions: %w", err)
	}
	return nil
}
