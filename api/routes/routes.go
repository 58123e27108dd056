package routes

import (
	"github.com/acmcyber/rewards-backend/internal/config"
	"github.com/acmcyber/rewards-backend/internal/handlers"
	"github.com/acmcyber/rewards-backend/internal/middleware"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	RedemptionHandler *handlers.RedemptionHandler
	TeamHandler       *handlers.TeamHandler
	SessionRepo       repositories.SessionRepository
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Team-facing routes, resolved from the platform session cookie
	rewards := router.Group("/api/v1/rewards")
	rewards.Use(middleware.SessionAuthMiddleware(cfg, deps.SessionRepo))
	{
		rewards.GET("", deps.RedemptionHandler.GetStatus)
		rewards.POST("/redeem", deps.RedemptionHandler.Redeem)
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	{
		teams := admin.Group("/teams")
		{
			teams.GET("", deps.TeamHandler.GetAllTeams)
			teams.GET("/count", deps.TeamHandler.GetTeamCount)
			teams.GET("/:id", deps.TeamHandler.GetTeamByID)
			teams.POST("/grant-tickets", deps.TeamHandler.GrantTickets)
		}

		admin.GET("/raffle", deps.TeamHandler.GetRaffleEntries)
	}

	return router
}
