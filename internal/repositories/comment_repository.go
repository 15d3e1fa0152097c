package repositories

import (
	"context"
	"time"

	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	ListCommentsByVideo(ctx context.Context, videoID string, p pagination.Params) ([]models.Comment, int64, error)
	UpdateCommentText(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id string) error
	DeleteCommentsByVideo(ctx context.Context, videoID string) ([]string, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListCommentsByVideo retrieves one page of a video's comments, newest first
// unless the caller sorts otherwise, plus the total count.
func (r *MongoCommentRepository) ListCommentsByVideo(ctx context.Context, videoID string, p pagination.Params) ([]models.Comment, int64, error) {
	query := bson.M{"video_id": videoID}

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

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// UpdateCommentText persists an edited comment body
func (r *MongoCommentRepository) UpdateCommentText(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"text":       comment.Text,
			"updated_at": comment.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": comment.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteComment deletes a comment by ID from MongoDB
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
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

// DeleteCommentsByVideo removes all comments of a video and returns their IDs
// so the caller can cascade to the like edges pointing at them.
func (r *MongoCommentRepository) DeleteCommentsByVideo(ctx context.Context, videoID string) ([]string, error) {
	query := bson.M{"video_id": videoID}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}

	if _, err := r.collection.DeleteMany(ctx, query); err != nil {
		return nil, err
	}
	return ids, nil
}
