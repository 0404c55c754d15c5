package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mediarepo/admin-api/domain"
)

type ReactionTypeRepository struct {
	coll *mongo.Collection
}

func NewReactionTypeRepository(db *mongo.Database) domain.ReactionTypeRepository {
	return &ReactionTypeRepository{coll: db.Collection(ReactionTypesCollection)}
}

func (r *ReactionTypeRepository) Create(ctx context.Context, rt *domain.ReactionType) error {
	_, err := r.coll.InsertOne(ctx, rt)
	return err
}

func (r *ReactionTypeRepository) Update(ctx context.Context, rt *domain.ReactionType) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": rt.ID}, bson.M{"$set": bson.M{
		"key":        rt.Key,
		"label":      rt.Label,
		"emoji":      rt.Emoji,
		"order":      rt.Order,
		"is_active":  rt.IsActive,
		"updated_at": rt.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReactionTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReactionTypeRepository) GetByID(ctx context.Context, id string) (*domain.ReactionType, error) {
	var rt domain.ReactionType
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rt)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *ReactionTypeRepository) List(ctx context.Context, activeOnly bool) ([]*domain.ReactionType, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var types []*domain.ReactionType
	if err := cursor.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}
