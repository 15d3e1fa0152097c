package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// parseObjectID converts a hex ID from the URL into a Mongo ObjectID.
// A malformed ID can never reference an existing document.
func parseObjectID(id string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid ID format %q", models.ErrInvalidArgument, id)
	}
	return objID, nil
}

// VideoFilter is the structured predicate for video listings: an optional
// owner scope plus a case-insensitive title/description search.
type VideoFilter struct {
	OwnerID uint
	Query   string
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, id string) (*models.Video, error)
	GetVideosByIDs(ctx context.Context, ids []string) ([]models.Video, error)
	ListVideos(ctx context.Context, filter VideoFilter, p pagination.Params) ([]models.Video, int64, error)
	SaveVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// MongoVideoRepository implements VideoRepository for MongoDB
type MongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new MongoVideoRepository
func NewMongoVideoRepository(db *mongo.Database) *MongoVideoRepository {
	return &MongoVideoRepository{collection: db.Collection("videos")}
}

// CreateVideo creates a new video document in MongoDB
func (r *MongoVideoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	video.ID = primitive.NewObjectID()
	video.CreatedAt = time.Now()
	video.UpdatedAt = video.CreatedAt
	_, err := r.collection.InsertOne(ctx, video)
	return err
}

// GetVideoByID retrieves a video by ID from MongoDB
func (r *MongoVideoRepository) GetVideoByID(ctx context.Context, id string) (*models.Video, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var video models.Video
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetVideosByIDs retrieves a batch of videos, for liked-video and playlist listings
func (r *MongoVideoRepository) GetVideosByIDs(ctx context.Context, ids []string) ([]models.Video, error) {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue // dangling reference, skip like a failed populate
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return []models.Video{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ListVideos retrieves videos matching the filter, sorted and windowed, plus
// the total match count for page arithmetic.
func (r *MongoVideoRepository) ListVideos(ctx context.Context, filter VideoFilter, p pagination.Params) ([]models.Video, int64, error) {
	query := bson.M{}
	if filter.OwnerID != 0 {
		query["owner_id"] = filter.OwnerID
	}
	if filter.Query != "" {
		pattern := primitive.Regex{Pattern: filter.Query, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	direction := -1
	if !p.Desc {
		direction = 1
	}
	findOptions := options.Find().
		SetSkip(p.Skip()).
		SetLimit(p.Limit).
		SetSort(bson.D{{Key: p.SortBy, Value: direction}})

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var videos []models.Video
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// SaveVideo persists metadata changes to an existing video
func (r *MongoVideoRepository) SaveVideo(ctx context.Context, video *models.Video) error {
	video.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":         video.Title,
			"description":   video.Description,
			"thumbnail_url": video.ThumbnailURL,
			"is_published":  video.IsPublished,
			"updated_at":    video.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": video.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteVideo deletes a video by ID from MongoDB
func (r *MongoVideoRepository) DeleteVideo(ctx context.Context, id string) error {
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

// IncrementViews bumps the view counter atomically on fetch
func (r *MongoVideoRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := parseObjectID(id)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}
