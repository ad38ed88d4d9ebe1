package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindwell/model"
	"mindwell/utils"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{MongoCollection: db.Collection("users")}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.UserID == "" || user.Email == "" || user.Password == "" {
		utils.TrackError("database", "invalid_user_data")
		return errors.New("user id, email and password required")
	}
	user.Email = strings.ToLower(user.Email)

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		utils.TrackError("database", "user_creation_failed")
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		utils.TrackError("database", "user_lookup_error")
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}
