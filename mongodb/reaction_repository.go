package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mediarepo/admin-api/domain"
)

type ReactionRepository struct {
	coll *mongo.Collection
}

func NewReactionRepository(db *mongo.Database) domain.ReactionRepository {
	return &ReactionRepository{coll: db.Collection(ReactionsCollection)}
}

// Upsert realizes "at most one reaction per (media, user, type)" as a
// single atomic write: the filter addresses the triple, $setOnInsert
// creates the row when absent, and a supplied author name is applied
// with $set so an existing row only ever has its snapshot refreshed.
// Combined with the unique index, concurrent duplicate submissions
// collapse into one row.
func (r *ReactionRepository) Upsert(ctx context.Context, reaction *domain.Reaction) error {
	filter := bson.M{
		"media_id":         reaction.MediaID,
		"user_id":          reaction.UserID,
		"reaction_type_id": reaction.ReactionTypeID,
	}

	setOnInsert := bson.M{
		"_id":        reaction.ID,
		"created_at": reaction.CreatedAt,
	}
	update := bson.M{"$setOnInsert": setOnInsert}
	if reaction.AuthorName != nil {
		update["$set"] = bson.M{"author_name": *reaction.AuthorName}
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// Lost a race against an identical submission: the row exists
		// now, and that is the state Upsert promises.
		if reaction.AuthorName != nil {
			_, err = r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"author_name": *reaction.AuthorName}})
			return err
		}
		return nil
	}
	return err
}

func (r *ReactionRepository) Exists(ctx context.Context, mediaID, userID, reactionTypeID string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{
		"media_id":         mediaID,
		"user_id":          userID,
		"reaction_type_id": reactionTypeID,
	}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ReactionRepository) CountsByType(ctx context.Context, mediaID string) ([]domain.TypeCount, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"media_id": mediaID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$reaction_type_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []domain.TypeCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *ReactionRepository) ListUserTypeIDs(ctx context.Context, mediaID, userID string) ([]string, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"media_id": mediaID, "user_id": userID},
		options.Find().SetProjection(bson.M{"reaction_type_id": 1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ReactionTypeID string `bson:"reaction_type_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ReactionTypeID)
	}
	return ids, nil
}

func (r *ReactionRepository) ListRecent(ctx context.Context, mediaID string, limit int) ([]*domain.Reaction, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"media_id": mediaID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reactions []*domain.Reaction
	if err := cursor.All(ctx, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *ReactionRepository) DeleteByUser(ctx context.Context, mediaID, userID, reactionTypeID string) error {
	filter := bson.M{"media_id": mediaID, "user_id": userID}
	if reactionTypeID != "" {
		filter["reaction_type_id"] = reactionTypeID
	}
	_, err := r.coll.DeleteMany(ctx, filter)
	return err
}
