package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mediarepo/admin-api/domain"
)

type MediaRepository struct {
	coll *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) domain.MediaRepository {
	return &MediaRepository{coll: db.Collection(MediasCollection)}
}

func (r *MediaRepository) Create(ctx context.Context, media *domain.Media) error {
	_, err := r.coll.InsertOne(ctx, media)
	return err
}

func (r *MediaRepository) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	var media domain.Media
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) Update(ctx context.Context, media *domain.Media) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": media.ID}, bson.M{"$set": bson.M{
		"label":          media.Label,
		"url":            media.URL,
		"participant_id": media.ParticipantID,
		"user_id":        media.UserID,
		"is_flagged":     media.IsFlagged,
		"updated_at":     media.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MediaRepository) List(ctx context.Context) ([]*domain.Media, error) {
	return r.findMedias(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MediaRepository) ListArchived(ctx context.Context, participantID string) ([]*domain.Media, error) {
	filter := bson.M{"is_flagged": true}
	if participantID != "" {
		filter["participant_id"] = participantID
	}
	return r.findMedias(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *MediaRepository) ListEligible(ctx context.Context, filter domain.MediaFilter) ([]*domain.Media, error) {
	query := bson.M{"is_flagged": false}
	if filter.ParticipantID != "" {
		query["participant_id"] = filter.ParticipantID
	}
	return r.findMedias(ctx, query, options.Find())
}

func (r *MediaRepository) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	var updated struct {
		ViewCount int64 `bson:"view_count"`
	}
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"view_count": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return updated.ViewCount, nil
}

func (r *MediaRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MediaRepository) CountPerMonth(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	since := time.Now().UTC().AddDate(0, -months, 0)

	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"created_at": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$created_at"},
				"month": bson.M{"$month": "$created_at"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []struct {
		ID struct {
			Year  int `bson:"year"`
			Month int `bson:"month"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	counts := make([]domain.MonthlyCount, 0, len(raw))
	for _, bucket := range raw {
		counts = append(counts, domain.MonthlyCount{
			Year:  bucket.ID.Year,
			Month: bucket.ID.Month,
			Count: bucket.Count,
		})
	}
	return counts, nil
}

func (r *MediaRepository) findMedias(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]*domain.Media, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var medias []*domain.Media
	if err := cursor.All(ctx, &medias); err != nil {
		return nil, err
	}
	return medias, nil
}
