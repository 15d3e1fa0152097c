package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is an ordered collection of video references owned by one user.
// Duplicates are rejected at mutation time, not by a storage constraint.
type Playlist struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID     uint               `json:"owner_id" bson:"owner_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	VideoIDs    []string           `json:"video_ids" bson:"video_ids"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports the owning user, for the ownership policy check.
func (p *Playlist) OwnedBy() uint { return p.OwnerID }

// CreatePlaylistRequest defines the request body for creating a playlist
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdatePlaylistRequest defines the request body for renaming a playlist
type UpdatePlaylistRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
