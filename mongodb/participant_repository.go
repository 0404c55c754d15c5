package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mediarepo/admin-api/domain"
)

type ParticipantRepository struct {
	coll *mongo.Collection
}

func NewParticipantRepository(db *mongo.Database) domain.ParticipantRepository {
	return &ParticipantRepository{coll: db.Collection(ParticipantsCollection)}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant *domain.Participant) error {
	_, err := r.coll.InsertOne(ctx, participant)
	return err
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	var participant domain.Participant
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant *domain.Participant) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": participant.ID}, bson.M{"$set": bson.M{
		"name":       participant.Name,
		"image_url":  participant.ImageURL,
		"user_id":    participant.UserID,
		"updated_at": participant.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*domain.Participant
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *ParticipantRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
