package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorbot/internal/model"
)

// ReminderRepo stores per-user reminder schedules.
type ReminderRepo interface {
	Get(ctx context.Context, userID int64) (*model.ReminderConfig, error)
	Put(ctx context.Context, cfg *model.ReminderConfig) error
	Clear(ctx context.Context, userID int64) error
	ListEnabled(ctx context.Context) ([]*model.ReminderConfig, error)
}

type reminderRepo struct {
	collection *mongo.Collection
}

// NewReminderRepo creates a mongo-backed reminder repository.
func NewReminderRepo(db *mongo.Database) ReminderRepo {
	return &reminderRepo{
		collection: db.Collection("reminders"),
	}
}

func (r *reminderRepo) Get(ctx context.Context, userID int64) (*model.ReminderConfig, error) {
	var cfg model.ReminderConfig
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *reminderRepo) Put(ctx context.Context, cfg *model.ReminderConfig) error {
	cfg.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": cfg.UserID},
		cfg,
		options.Replace().SetUpsert(true))
	return err
}

func (r *reminderRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}

func (r *reminderRepo) ListEnabled(ctx context.Context) ([]*model.ReminderConfig, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"enabled": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []*model.ReminderConfig
	for cursor.Next(ctx) {
		var cfg model.ReminderConfig
		if err := cursor.Decode(&cfg); err != nil {
			return nil, err
		}
		configs = append(configs, &cfg)
	}
	return configs, cursor.Err()
}
