package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/acmcyber/rewards-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamHandler handles team-related HTTP requests on the admin surface
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// GetTeamByID handles GET /admin/teams/:id
func (h *TeamHandler) GetTeamByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		}
		return
	}
	c.JSON(http.StatusOK, team)
}

// GetAllTeams handles GET /admin/teams
func (h *TeamHandler) GetAllTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	teams, err := h.teamService.GetAllTeams(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}
	c.JSON(http.StatusOK, teams)
}

// GetTeamCount handles GET /admin/teams/count
func (h *TeamHandler) GetTeamCount(c *gin.Context) {
	count, err := h.teamService.GetTeamCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count teams"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GrantTicketsRequest is the body of POST /admin/teams/grant-tickets
type GrantTicketsRequest struct {
	TeamName string `json:"team_name" binding:"required"`
	Tickets  int    `json:"tickets" binding:"required,min=1"`
}

// GrantTickets handles POST /admin/teams/grant-tickets
func (h *TeamHandler) GrantTickets(c *gin.Context) {
	var request GrantTicketsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.teamService.GrantPremiumTickets(c.Request.Context(), request.TeamName, request.Tickets)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant tickets"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tickets granted"})
}

// GetRaffleEntries handles GET /admin/raffle
func (h *TeamHandler) GetRaffleEntries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	entries, err := h.teamService.GetRaffleEntries(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve raffle entries"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
