package router

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/handlers"
	"github.com/tahmid42/playtube/backend/internal/middleware"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDatabase string, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mgdb := mgClient.Database(mongoDatabase)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	videoRepo := repositories.NewMongoVideoRepository(mgdb)
	commentRepo := repositories.NewMongoCommentRepository(mgdb)
	tweetRepo := repositories.NewMongoTweetRepository(mgdb)
	playlistRepo := repositories.NewMongoPlaylistRepository(mgdb)
	relationRepo := repositories.NewMongoRelationRepository(mgdb)
	counters := repositories.NewEngagementCounters(mgdb, userRepo)

	// The unique indexes are what arbitrate concurrent toggles; refuse to
	// start without them.
	if err := relationRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to ensure relation indexes: %v", err)
	}
	log.Println("Relation edge indexes ensured.")

	engine := engagement.NewEngine(relationRepo, counters)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	videoHandler := handlers.NewVideoHandler(videoRepo, commentRepo, relationRepo, playlistRepo)
	videoHandler.RegisterVideoRoutes(api)
	log.Println("Video routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, videoRepo, relationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	tweetHandler := handlers.NewTweetHandler(tweetRepo, relationRepo)
	tweetHandler.RegisterTweetRoutes(api)
	log.Println("Tweet routes configured.")

	likeHandler := handlers.NewLikeHandler(engine, videoRepo, commentRepo, tweetRepo, relationRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	subscriptionHandler := handlers.NewSubscriptionHandler(engine, userRepo, relationRepo)
	subscriptionHandler.RegisterSubscriptionRoutes(api)
	log.Println("Subscription routes configured.")

	playlistHandler := handlers.NewPlaylistHandler(playlistRepo, videoRepo)
	playlistHandler.RegisterPlaylistRoutes(api)
	log.Println("Playlist routes configured.")

	counterHandler := handlers.NewCounterHandler(engine)
	counterHandler.RegisterCounterRoutes(api)
	log.Println("Counter reconciliation route configured.")

	log.Println("All routes configured.")
}
