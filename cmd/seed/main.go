package main

import (
	"context"
	"log"
	"time"

	"github.com/rish2311/BookStore-Assignment/configs"
	"github.com/rish2311/BookStore-Assignment/internal/db"
	"github.com/rish2311/BookStore-Assignment/internal/seed"
)

func main() {
	cfg := configs.LoadConfig()

	client, err := db.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := seed.Run(ctx, client); err != nil {
		log.Fatalf("Error seeding data: %v", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Fatalf("Disconnect failed: %v", err)
	}
	log.Println("Seeding completed and connection closed")
}
