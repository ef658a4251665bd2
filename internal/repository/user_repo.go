package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbot/internal/model"
)

// UserRepo records seen telegram accounts.
type UserRepo interface {
	Upsert(ctx context.Context, id int64, username, fullName string) error
	Get(ctx context.Context, id int64) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a mongo-backed user repository.
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{
		collection: db.Collection("users"),
	}
}

func (r *userRepo) Upsert(ctx context.Context, id int64, username, fullName string) error {
	now := time.Now().Unix()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":         bson.M{"username": username, "fullName": fullName, "lastSeen": now},
			"$setOnInsert": bson.M{"firstSeen": now},
		},
		options.Update().SetUpsert(true))
	return err
}

func (r *userRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
