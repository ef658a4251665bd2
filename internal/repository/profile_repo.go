package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbot/internal/model"
)

// ProfileRepo is the persisted per-user personality profile store.
// One record per user, last-write-wins.
type ProfileRepo interface {
	Get(ctx context.Context, userID int64) (*model.PersonalityProfile, error)
	Put(ctx context.Context, profile *model.PersonalityProfile) error
	Clear(ctx context.Context, userID int64) error
}

type profileRepo struct {
	collection *mongo.Collection
}

// NewProfileRepo creates a mongo-backed profile repository.
func NewProfileRepo(db *mongo.Database) ProfileRepo {
	return &profileRepo{
		collection: db.Collection("profiles"),
	}
}

func (r *profileRepo) Get(ctx context.Context, userID int64) (*model.PersonalityProfile, error) {
	var profile model.PersonalityProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// A completed profile with empty text must never be served as complete.
	if profile.Normalize() {
		log.Printf("[ProfileRepo] user %d: completed profile with empty text, serving as incomplete", userID)
	}
	return &profile, nil
}

func (r *profileRepo) Put(ctx context.Context, profile *model.PersonalityProfile) error {
	profile.Normalize()
	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": profile.UserID},
		profile,
		options.Replace().SetUpsert(true))
	return err
}

func (r *profileRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
