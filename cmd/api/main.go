package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/PranayKumarReddyW/Backend/internal/config"
	"github.com/PranayKumarReddyW/Backend/internal/database"
	"github.com/PranayKumarReddyW/Backend/internal/routes"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Connect to MongoDB
	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Fatal("Failed to disconnect from MongoDB:", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	if err := database.EnsureIndexes(ctx, client.Database(cfg.DatabaseName)); err != nil {
		log.Printf("Failed to create indexes: %v", err)
	}
	cancel()

	// Initialize router
	router := routes.SetupRouter(client, cfg)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Wrap router with CORS
	handler := c.Handler(router)

	// Start server
	log.Printf("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
