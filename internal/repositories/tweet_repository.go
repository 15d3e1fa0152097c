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

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id string) (*models.Tweet, error)
	ListTweetsByOwner(ctx context.Context, ownerID uint, p pagination.Params) ([]models.Tweet, int64, error)
	UpdateTweetContent(ctx context.Context, tweet *models.Tweet) error
	DeleteTweet(ctx context.Context, id string) error
}

// MongoTweetRepository implements TweetRepository for MongoDB
type MongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new MongoTweetRepository
func NewMongoTweetRepository(db *mongo.Database) *MongoTweetRepository {
	return &MongoTweetRepository{collection: db.Collection("tweets")}
}

// CreateTweet creates a new tweet in MongoDB
func (r *MongoTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = tweet.CreatedAt
	_, err := r.collection.InsertOne(ctx, tweet)
	return err
}

// GetTweetByID retrieves a tweet by ID from MongoDB
func (r *MongoTweetRepository) GetTweetByID(ctx context.Context, id string) (*models.Tweet, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var tweet models.Tweet
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tweet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

// ListTweetsByOwner retrieves one page of a user's tweets plus the total count
func (r *MongoTweetRepository) ListTweetsByOwner(ctx context.Context, ownerID uint, p pagination.Params) ([]models.Tweet, int64, error) {
	query := bson.M{"owner_id": ownerID}

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

	var tweets []models.Tweet
	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

// UpdateTweetContent persists an edited tweet body
func (r *MongoTweetRepository) UpdateTweetContent(ctx context.Context, tweet *models.Tweet) error {
	tweet.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"content":    tweet.Content,
			"updated_at": tweet.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": tweet.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteTweet deletes a tweet by ID from MongoDB
func (r *MongoTweetRepository) DeleteTweet(ctx context.Context, id string) error {
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
