package repositories

import (
	"context"
	"errors"

	"github.com/acmcyber/rewards-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInsufficientTickets is returned by the conditional ledger debits when the
// team exists but no longer has the ticket being spent. The service layer treats
// it as a lost race and fails closed.
var ErrInsufficientTickets = errors.New("insufficient tickets")

// TeamRepository defines the interface for team data operations, including the
// atomic score-ledger mutations. Debits are conditional single-document updates:
// they either apply in full or report ErrInsufficientTickets.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByName(ctx context.Context, name string) (*models.Team, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Team, error)
	Count(ctx context.Context) (int64, error)
	// DebitRegularTicket atomically adds TicketCost to redeemedScore, guarded by
	// redeemedScore+TicketCost <= score.
	DebitRegularTicket(ctx context.Context, id primitive.ObjectID) error
	// CreditRegularTicket backs out one regular debit after a downstream failure.
	CreditRegularTicket(ctx context.Context, id primitive.ObjectID) error
	// DebitPremiumTicket atomically decrements premiumTickets, guarded by
	// premiumTickets >= 1.
	DebitPremiumTicket(ctx context.Context, id primitive.ObjectID) error
	// CreditPremiumTicket backs out one premium debit after a downstream failure.
	CreditPremiumTicket(ctx context.Context, id primitive.ObjectID) error
	// IncrementPremiumTickets grants premium tickets to a team by name.
	IncrementPremiumTickets(ctx context.Context, name string, tickets int) error
}

// PrizeGrantRepository tracks which one-time-only prizes each team has won.
type PrizeGrantRepository interface {
	// HasWon reports whether the team already holds a grant for the prize.
	HasWon(ctx context.Context, teamID primitive.ObjectID, prize string) (bool, error)
	// RecordWin inserts the (team, prize) grant. Idempotent: recording an
	// existing grant is a no-op, not an error.
	RecordWin(ctx context.Context, teamID primitive.ObjectID, prize string) error
	FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]*models.PrizeGrant, error)
}

// RaffleRepository stores premium-redemption raffle entries, append-only.
type RaffleRepository interface {
	Create(ctx context.Context, entry *models.RaffleEntry) error
	FindAll(ctx context.Context, page, limit int) ([]*models.RaffleEntry, error)
	CountByTeamID(ctx context.Context, teamID primitive.ObjectID) (int64, error)
}

// SessionRepository resolves session cookies to teams. Sessions are written by
// the main platform; this service only reads them.
type SessionRepository interface {
	FindByCookie(ctx context.Context, cookie string) (*models.Session, error)
}

// AdminUserRepository defines the interface for admin operator accounts.
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}
