package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RelationRepository persists like and subscription edges. It implements
// engagement.RelationStore; the uniqueness invariant lives in the collection
// indexes, not in application logic, so concurrent creates race safely.
type RelationRepository interface {
	engagement.RelationStore
	EnsureIndexes(ctx context.Context) error
	ListLikedVideoIDs(ctx context.Context, userID uint) ([]string, error)
	ListSubscriberIDs(ctx context.Context, channelID uint, p pagination.Params) ([]uint, int64, error)
	ListSubscribedChannelIDs(ctx context.Context, subscriberID uint, p pagination.Params) ([]uint, int64, error)
	DeleteByTarget(ctx context.Context, target engagement.Target) error
	DeleteLikesByComments(ctx context.Context, commentIDs []string) error
}

// MongoRelationRepository implements RelationRepository for MongoDB
type MongoRelationRepository struct {
	likes         *mongo.Collection
	subscriptions *mongo.Collection
}

// NewMongoRelationRepository creates a new MongoRelationRepository
func NewMongoRelationRepository(db *mongo.Database) *MongoRelationRepository {
	return &MongoRelationRepository{
		likes:         db.Collection("likes"),
		subscriptions: db.Collection("subscriptions"),
	}
}

// likeField maps a like target kind to the reference field populated on the
// like document. Exactly one of the three is set per edge.
func likeField(kind engagement.TargetKind) (string, error) {
	switch kind {
	case engagement.TargetVideo:
		return "video_id", nil
	case engagement.TargetComment:
		return "comment_id", nil
	case engagement.TargetTweet:
		return "tweet_id", nil
	default:
		return "", fmt.Errorf("%w: %q is not a likeable target", models.ErrInvalidArgument, kind)
	}
}

func channelID(target engagement.Target) (uint, error) {
	id, err := strconv.ParseUint(target.ID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid channel ID %q", models.ErrInvalidArgument, target.ID)
	}
	return uint(id), nil
}

// EnsureIndexes creates the unique indexes that arbitrate concurrent toggles:
// one partial unique index per like target field, one compound unique index
// for subscriptions.
func (r *MongoRelationRepository) EnsureIndexes(ctx context.Context) error {
	likeIndexes := make([]mongo.IndexModel, 0, 3)
	for _, field := range []string{"video_id", "comment_id", "tweet_id"} {
		likeIndexes = append(likeIndexes, mongo.IndexModel{
			Keys: bson.D{{Key: "liked_by", Value: 1}, {Key: field, Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{field: bson.M{"$exists": true}}),
		})
	}
	if _, err := r.likes.Indexes().CreateMany(ctx, likeIndexes); err != nil {
		return fmt.Errorf("creating like indexes: %w", err)
	}

	_, err := r.subscriptions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber_id", Value: 1}, {Key: "channel_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating subscription index: %w", err)
	}
	return nil
}

func (r *MongoRelationRepository) edgeQuery(subject uint, target engagement.Target) (*mongo.Collection, bson.M, error) {
	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return nil, nil, err
		}
		return r.subscriptions, bson.M{"subscriber_id": subject, "channel_id": channel}, nil
	}

	field, err := likeField(target.Kind)
	if err != nil {
		return nil, nil, err
	}
	return r.likes, bson.M{"liked_by": subject, field: target.ID}, nil
}

// Exists reports whether the (subject, target) edge is present
func (r *MongoRelationRepository) Exists(ctx context.Context, subject uint, target engagement.Target) (bool, error) {
	coll, query, err := r.edgeQuery(subject, target)
	if err != nil {
		return false, err
	}

	err = coll.FindOne(ctx, query, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts the edge document. A duplicate-key rejection from the unique
// index surfaces as models.ErrAlreadyExists for the engine to reinterpret.
func (r *MongoRelationRepository) Create(ctx context.Context, subject uint, target engagement.Target) error {
	now := time.Now()

	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return err
		}
		_, err = r.subscriptions.InsertOne(ctx, models.Subscription{
			SubscriberID: subject,
			ChannelID:    channel,
			CreatedAt:    now,
		})
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrAlreadyExists
		}
		return err
	}

	field, err := likeField(target.Kind)
	if err != nil {
		return err
	}
	_, err = r.likes.InsertOne(ctx, bson.M{
		"liked_by":   subject,
		field:        target.ID,
		"created_at": now,
	})
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrAlreadyExists
	}
	return err
}

// Remove deletes the edge document, failing with models.ErrNotFound when it
// is already gone.
func (r *MongoRelationRepository) Remove(ctx context.Context, subject uint, target engagement.Target) error {
	coll, query, err := r.edgeQuery(subject, target)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, query)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// CountByTarget counts the edges referencing a target, the source of truth
// behind the denormalized counters.
func (r *MongoRelationRepository) CountByTarget(ctx context.Context, target engagement.Target) (int64, error) {
	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return 0, err
		}
		return r.subscriptions.CountDocuments(ctx, bson.M{"channel_id": channel})
	}

	field, err := likeField(target.Kind)
	if err != nil {
		return 0, err
	}
	return r.likes.CountDocuments(ctx, bson.M{field: target.ID})
}

// ListLikedVideoIDs returns the IDs of every video the user has liked
func (r *MongoRelationRepository) ListLikedVideoIDs(ctx context.Context, userID uint) ([]string, error) {
	query := bson.M{"liked_by": userID, "video_id": bson.M{"$exists": true}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.likes.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var likes []models.Like
	if err = cursor.All(ctx, &likes); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(likes))
	for _, like := range likes {
		ids = append(ids, like.VideoID)
	}
	return ids, nil
}

func (r *MongoRelationRepository) listSubscriptionEdges(ctx context.Context, query bson.M, p pagination.Params) ([]models.Subscription, int64, error) {
	total, err := r.subscriptions.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSkip(p.Skip()).
		SetLimit(p.Limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.subscriptions.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	if err = cursor.All(ctx, &subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListSubscriberIDs returns one page of a channel's subscriber user IDs
func (r *MongoRelationRepository) ListSubscriberIDs(ctx context.Context, channel uint, p pagination.Params) ([]uint, int64, error) {
	subs, total, err := r.listSubscriptionEdges(ctx, bson.M{"channel_id": channel}, p)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.SubscriberID)
	}
	return ids, total, nil
}

// ListSubscribedChannelIDs returns one page of the channels a user subscribes to
func (r *MongoRelationRepository) ListSubscribedChannelIDs(ctx context.Context, subscriber uint, p pagination.Params) ([]uint, int64, error) {
	subs, total, err := r.listSubscriptionEdges(ctx, bson.M{"subscriber_id": subscriber}, p)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, 0, len(subs))
	for _, s := range subs {
		ids = append(ids, s.ChannelID)
	}
	return ids, total, nil
}

// DeleteByTarget removes every edge pointing at a deleted entity, as part of
// the delete cascade.
func (r *MongoRelationRepository) DeleteByTarget(ctx context.Context, target engagement.Target) error {
	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return err
		}
		_, err = r.subscriptions.DeleteMany(ctx, bson.M{"channel_id": channel})
		return err
	}

	field, err := likeField(target.Kind)
	if err != nil {
		return err
	}
	_, err = r.likes.DeleteMany(ctx, bson.M{field: target.ID})
	return err
}

// DeleteLikesByComments removes the like edges of a batch of comments in one
// call, for the video-delete cascade.
func (r *MongoRelationRepository) DeleteLikesByComments(ctx context.Context, commentIDs []string) error {
	if len(commentIDs) == 0 {
		return nil
	}
	_, err := r.likes.DeleteMany(ctx, bson.M{"comment_id": bson.M{"$in": commentIDs}})
	return err
}
