package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like is a directed edge from a user to exactly one of a video, comment or
// tweet. The presence of the document is the "liked" state; there is no
// separate boolean flag. Partial unique indexes on (liked_by, <target>)
// guarantee at most one edge per pair even under concurrent inserts.
type Like struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LikedBy   uint               `json:"liked_by" bson:"liked_by"`
	VideoID   string             `json:"video_id,omitempty" bson:"video_id,omitempty"`
	CommentID string             `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	TweetID   string             `json:"tweet_id,omitempty" bson:"tweet_id,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Subscription is a directed edge from a subscriber to a channel (a user
// acting as content owner). Unique on (subscriber_id, channel_id).
type Subscription struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubscriberID uint               `json:"subscriber_id" bson:"subscriber_id"`
	ChannelID    uint               `json:"channel_id" bson:"channel_id"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}
