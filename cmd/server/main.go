package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"bayou-chat/internal/config"
	"bayou-chat/internal/database"
	"bayou-chat/internal/engine"
	"bayou-chat/internal/handlers"
	"bayou-chat/internal/middleware"
	"bayou-chat/internal/storage"
	"bayou-chat/internal/utils"
	"bayou-chat/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.InitJWT(cfg.JWT)

	db, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Optional S3-compatible media storage; without it image payloads are
	// stored as given.
	var uploader storage.Uploader
	if cfg.Media.Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(context.Background(), cfg.Media)
		if err != nil {
			log.Fatalf("Failed to initialize media storage: %v", err)
		}
		uploader = s3Uploader
		log.Printf("Media storage enabled, bucket %s", cfg.Media.Bucket)
	}

	hub := websocket.NewHub()
	go hub.Run()

	metrics := utils.NewMetricsCollector()

	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, db, db, hub, uploader)

	server := handlers.NewServer(system, eng, hub, metrics)
	router := handlers.NewRouter(server)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
