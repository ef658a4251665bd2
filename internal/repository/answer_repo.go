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

// answerRecord is the stored shape of a user's raw survey answers.
type answerRecord struct {
	UserID    int64            `bson:"_id"`
	Answers   model.RawAnswers `bson:"answers"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// AnswerRepo persists the raw answer set of a completed survey run so a
// failed narrative generation can be retried without re-asking the
// instrument.
type AnswerRepo interface {
	Get(ctx context.Context, userID int64) (model.RawAnswers, error)
	Put(ctx context.Context, userID int64, answers model.RawAnswers) error
	Clear(ctx context.Context, userID int64) error
}

type answerRepo struct {
	collection *mongo.Collection
}

// NewAnswerRepo creates a mongo-backed raw answer repository.
func NewAnswerRepo(db *mongo.Database) AnswerRepo {
	return &answerRepo{
		collection: db.Collection("answers"),
	}
}

func (r *answerRepo) Get(ctx context.Context, userID int64) (model.RawAnswers, error) {
	var rec answerRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec.Answers, nil
}

func (r *answerRepo) Put(ctx context.Context, userID int64, answers model.RawAnswers) error {
	rec := answerRecord{
		UserID:    userID,
		Answers:   answers,
		UpdatedAt: time.Now(),
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": userID},
		rec,
		options.Replace().SetUpsert(true))
	return err
}

func (r *answerRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
