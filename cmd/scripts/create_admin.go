package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin operator account for the ticket-grant surface.
// Usage: create_admin <email> <password> [role]
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "rewards"
	}

	if len(os.Args) < 3 {
		log.Fatal("Usage: create_admin <email> <password> [role]")
	}
	email := os.Args[1]
	password := os.Args[2]
	role := "admin"
	if len(os.Args) > 3 {
		role = os.Args[3]
	}

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := models.AdminUser{
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.Collection("admin_users").InsertOne(context.Background(), admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user %s created", email)
}
