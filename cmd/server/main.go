package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/router"
	"github.com/tahmid42/playtube/backend/pkg/config"
	"github.com/tahmid42/playtube/backend/pkg/firebase"
	"github.com/tahmid42/playtube/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase (optional login path)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	var firebaseAuthClient *auth.Client
	if firebaseApp != nil {
		firebaseAuthClient = firebaseApp.AuthClient
	}
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDatabase, firebaseAuthClient)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
