package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet represents a short text post, stored in MongoDB
type Tweet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID   uint               `json:"owner_id" bson:"owner_id"`
	Content   string             `json:"content" bson:"content"`
	LikeCount int64              `json:"like_count" bson:"like_count"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports the owning user, for the ownership policy check.
func (t *Tweet) OwnedBy() uint { return t.OwnerID }

// CreateTweetRequest defines the request body for creating a tweet
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// UpdateTweetRequest defines the request body for editing a tweet
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
