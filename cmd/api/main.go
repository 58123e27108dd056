package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acmcyber/rewards-backend/api/routes"
	"github.com/acmcyber/rewards-backend/internal/config"
	"github.com/acmcyber/rewards-backend/internal/handlers"
	"github.com/acmcyber/rewards-backend/internal/services"
	"github.com/joho/godotenv"

	mongorepo "github.com/acmcyber/rewards-backend/internal/repositories/mongodb"
	mongodb "github.com/acmcyber/rewards-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT.Secret is not configured")
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	teamRepo := mongorepo.NewTeamRepository(db)
	grantRepo := mongorepo.NewPrizeGrantRepository(db)
	raffleRepo := mongorepo.NewRaffleRepository(db)
	sessionRepo := mongorepo.NewSessionRepository(db)
	adminRepo := mongorepo.NewAdminUserRepository(db)

	// The unique (team, prize) index backs the one-grant-per-pair invariant
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := grantRepo.EnsureIndexes(indexCtx); err != nil {
		cancelIndex()
		log.Fatalf("Failed to ensure prize grant indexes: %v", err)
	}
	cancelIndex()

	// Services
	selector := services.NewPrizeSelector(grantRepo, rand.New(rand.NewSource(time.Now().UnixNano())))
	redemptionService := services.NewRedemptionService(teamRepo, grantRepo, raffleRepo, selector)
	teamService := services.NewTeamService(teamRepo, raffleRepo)
	authService := services.NewAuthService(adminRepo, cfg)

	// Handlers
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService)
	teamHandler := handlers.NewTeamHandler(teamService)
	authHandler := handlers.NewAuthHandler(authService)

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:       authHandler,
		RedemptionHandler: redemptionHandler,
		TeamHandler:       teamHandler,
		SessionRepo:       sessionRepo,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
