package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a video, stored in MongoDB
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VideoID   string             `json:"video_id" bson:"video_id"`
	OwnerID   uint               `json:"owner_id" bson:"owner_id"`
	Text      string             `json:"text" bson:"text"`
	LikeCount int64              `json:"like_count" bson:"like_count"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports the owning user, for the ownership policy check.
func (c *Comment) OwnedBy() uint { return c.OwnerID }

// CreateCommentRequest defines the request body for commenting on a video
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=1000"`
}
