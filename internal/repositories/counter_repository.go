package repositories

import (
	"context"
	"fmt"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EngagementCounters implements engagement.CounterStore across both stores:
// like counters live on the Mongo content documents and are adjusted with
// $inc, subscriber counters live on the Postgres user row and are adjusted
// with an in-SQL expression. Either way the increment happens at the storage
// layer, never as a read-modify-write in application code.
type EngagementCounters struct {
	videos   *mongo.Collection
	comments *mongo.Collection
	tweets   *mongo.Collection
	users    UserRepository
}

// NewEngagementCounters creates a new EngagementCounters
func NewEngagementCounters(db *mongo.Database, users UserRepository) *EngagementCounters {
	return &EngagementCounters{
		videos:   db.Collection("videos"),
		comments: db.Collection("comments"),
		tweets:   db.Collection("tweets"),
		users:    users,
	}
}

func (c *EngagementCounters) likeCollection(kind engagement.TargetKind) (*mongo.Collection, error) {
	switch kind {
	case engagement.TargetVideo:
		return c.videos, nil
	case engagement.TargetComment:
		return c.comments, nil
	case engagement.TargetTweet:
		return c.tweets, nil
	default:
		return nil, fmt.Errorf("%w: no counter for target kind %q", models.ErrInvalidArgument, kind)
	}
}

// Adjust applies an atomic delta to the target's cached counter
func (c *EngagementCounters) Adjust(ctx context.Context, target engagement.Target, delta int64) error {
	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return err
		}
		return c.users.AdjustSubscriberCount(channel, delta)
	}

	coll, err := c.likeCollection(target.Kind)
	if err != nil {
		return err
	}
	objID, err := parseObjectID(target.ID)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"like_count": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Set overwrites the target's cached counter, for reconciliation
func (c *EngagementCounters) Set(ctx context.Context, target engagement.Target, value int64) error {
	if target.Kind == engagement.TargetChannel {
		channel, err := channelID(target)
		if err != nil {
			return err
		}
		return c.users.SetSubscriberCount(channel, value)
	}

	coll, err := c.likeCollection(target.Kind)
	if err != nil {
		return err
	}
	objID, err := parseObjectID(target.ID)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"like_count": value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
