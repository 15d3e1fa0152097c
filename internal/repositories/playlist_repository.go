package repositories

import (
	"context"
	"time"

	"github.com/tahmid42/playtube/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlaylistRepository defines the interface for playlist data operations
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error)
	UpdatePlaylistMeta(ctx context.Context, playlist *models.Playlist) error
	DeletePlaylist(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideoFromAll(ctx context.Context, videoID string) error
}

// MongoPlaylistRepository implements PlaylistRepository for MongoDB
type MongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new MongoPlaylistRepository
func NewMongoPlaylistRepository(db *mongo.Database) *MongoPlaylistRepository {
	return &MongoPlaylistRepository{collection: db.Collection("playlists")}
}

// CreatePlaylist creates a new playlist in MongoDB
func (r *MongoPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.ID = primitive.NewObjectID()
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []string{}
	}
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = playlist.CreatedAt
	_, err := r.collection.InsertOne(ctx, playlist)
	return err
}

// GetPlaylistByID retrieves a playlist by ID from MongoDB
func (r *MongoPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var playlist models.Playlist
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&playlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

// ListPlaylistsByOwner retrieves all playlists of a user, newest first
func (r *MongoPlaylistRepository) ListPlaylistsByOwner(ctx context.Context, ownerID uint) ([]models.Playlist, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var playlists []models.Playlist
	if err = cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// UpdatePlaylistMeta persists name/description changes
func (r *MongoPlaylistRepository) UpdatePlaylistMeta(ctx context.Context, playlist *models.Playlist) error {
	playlist.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"name":        playlist.Name,
			"description": playlist.Description,
			"updated_at":  playlist.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": playlist.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeletePlaylist deletes a playlist by ID from MongoDB
func (r *MongoPlaylistRepository) DeletePlaylist(ctx context.Context, id string) error {
	objID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddVideo appends a video reference. $addToSet makes the no-duplicates rule
// a single atomic update: an unmodified document means the video was already
// in the playlist.
func (r *MongoPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	objID, err := parseObjectID(playlistID)
	if err != nil {
		return err
	}

	// No timestamp bump here: ModifiedCount must reflect the array change
	// alone, otherwise a duplicate add would look like a successful one.
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$addToSet": bson.M{"video_ids": videoID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return models.ErrAlreadyExists
	}
	return nil
}

// RemoveVideo pulls a video reference out of a playlist. An unmodified
// document means the video was not in the playlist.
func (r *MongoPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	objID, err := parseObjectID(playlistID)
	if err != nil {
		return err
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$pull": bson.M{"video_ids": videoID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// RemoveVideoFromAll pulls a deleted video out of every playlist referencing
// it, as part of the video-delete cascade.
func (r *MongoPlaylistRepository) RemoveVideoFromAll(ctx context.Context, videoID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"video_ids": videoID},
		bson.M{"$pull": bson.M{"video_ids": videoID}},
	)
	return err
}
