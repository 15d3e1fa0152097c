package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents an uploaded video document stored in MongoDB. The actual
// media upload/transcoding pipeline is external; only the resulting URLs are
// kept here.
type Video struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID      uint               `json:"owner_id" bson:"owner_id"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description" bson:"description"`
	VideoURL     string             `json:"video_url" bson:"video_url"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	Duration     float64            `json:"duration" bson:"duration"`
	Views        int64              `json:"views" bson:"views"`
	LikeCount    int64              `json:"like_count" bson:"like_count"`
	IsPublished  bool               `json:"is_published" bson:"is_published"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports the owning user, for the ownership policy check.
func (v *Video) OwnedBy() uint { return v.OwnerID }

// PublishVideoRequest defines the request body for publishing a new video
type PublishVideoRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=150"`
	Description  string  `json:"description" validate:"required,max=5000"`
	VideoURL     string  `json:"video_url" validate:"required,url"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	Duration     float64 `json:"duration,omitempty" validate:"omitempty,min=0"`
}

// UpdateVideoRequest defines the request body for updating video metadata
type UpdateVideoRequest struct {
	Title        string `json:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Description  string `json:"description,omitempty" validate:"omitempty,max=5000"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}
