package handlers

import (
	"errors"
	"net/http"

	"github.com/acmcyber/rewards-backend/internal/middleware"
	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionHandler handles reward redemption HTTP requests
type RedemptionHandler struct {
	redemptionService services.RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler
func NewRedemptionHandler(redemptionService services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// RedeemRequest is the body of POST /rewards/redeem
type RedeemRequest struct {
	Type string `json:"type" binding:"required"`
}

// teamIDFromContext pulls the team identity resolved by the session middleware.
func teamIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get(middleware.TeamIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// Redeem handles POST /rewards/redeem
func (h *RedemptionHandler) Redeem(c *gin.Context) {
	teamID, ok := teamIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	var request RedeemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.redemptionService.Redeem(c.Request.Context(), teamID, models.TicketType(request.Type))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTicketType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket type (regular or premium)"})
		case errors.Is(err, services.ErrTeamNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem ticket"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStatus handles GET /rewards
func (h *RedemptionHandler) GetStatus(c *gin.Context) {
	teamID, ok := teamIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}

	status, err := h.redemptionService.GetRedemptionStatus(c.Request.Context(), teamID)
	if err != nil {
		if errors.Is(err, services.ErrTeamNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rewards status"})
		}
		return
	}
	c.JSON(http.StatusOK, status)
}
