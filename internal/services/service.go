package services

import (
	"context"
	"errors"

	"github.com/acmcyber/rewards-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User-facing errors. NOT_ENOUGH_TICKETS is deliberately absent: running out of
// tickets is a normal business outcome carried in RedemptionResult, not an error.
var (
	// ErrInvalidTicketType is returned when the requested ticket type is neither
	// regular nor premium.
	ErrInvalidTicketType = errors.New("invalid ticket type")
	// ErrTeamNotFound is returned when the team identity resolves to no team.
	ErrTeamNotFound = errors.New("team not found")
)

// RedemptionService defines the interface for the redemption engine
type RedemptionService interface {
	// Redeem spends one ticket of the given type for the team and returns the
	// outcome: a drawn prize for regular tickets, a raffle entry for premium.
	Redeem(ctx context.Context, teamID primitive.ObjectID, ticketType models.TicketType) (*models.RedemptionResult, error)

	// GetRedemptionStatus returns the team's available tickets and the prize
	// catalog for the rewards display.
	GetRedemptionStatus(ctx context.Context, teamID primitive.ObjectID) (*models.RedemptionStatusResponse, error)
}

// AuthService defines the interface for admin authentication operations
type AuthService interface {
	// Login verifies admin credentials and returns a signed JWT
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
}
