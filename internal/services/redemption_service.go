package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure RedemptionServiceImpl implements RedemptionService
var _ RedemptionService = (*RedemptionServiceImpl)(nil)

// RedemptionServiceImpl orchestrates a single redemption: availability check,
// weighted draw or raffle entry, ledger debit, and grant bookkeeping.
type RedemptionServiceImpl struct {
	teamRepo   repositories.TeamRepository
	grantRepo  repositories.PrizeGrantRepository
	raffleRepo repositories.RaffleRepository
	selector   *PrizeSelector

	locks teamLocks
}

// NewRedemptionService creates a new RedemptionServiceImpl
func NewRedemptionService(
	teamRepo repositories.TeamRepository,
	grantRepo repositories.PrizeGrantRepository,
	raffleRepo repositories.RaffleRepository,
	selector *PrizeSelector,
) *RedemptionServiceImpl {
	return &RedemptionServiceImpl{
		teamRepo:   teamRepo,
		grantRepo:  grantRepo,
		raffleRepo: raffleRepo,
		selector:   selector,
	}
}

// Redeem spends one ticket for the team. Redemptions for the same team are
// serialized on a per-team lock; different teams proceed in parallel. The
// conditional repository debits are the backstop against writers outside this
// process.
func (s *RedemptionServiceImpl) Redeem(ctx context.Context, teamID primitive.ObjectID, ticketType models.TicketType) (*models.RedemptionResult, error) {
	if !ticketType.Valid() {
		return nil, ErrInvalidTicketType
	}

	unlock := s.locks.lock(teamID)
	defer unlock()

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		slog.Error("Redeem: failed to load team", "error", err, "teamId", teamID)
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	switch ticketType {
	case models.TicketTypeRegular:
		return s.redeemRegular(ctx, team)
	default:
		return s.redeemPremium(ctx, team)
	}
}

// redeemRegular draws a weighted prize, debits one ticket's worth of score, and
// records the grant for a newly won exclusive.
func (s *RedemptionServiceImpl) redeemRegular(ctx context.Context, team *models.Team) (*models.RedemptionResult, error) {
	if team.AvailableRegularTickets() == 0 {
		return &models.RedemptionResult{Status: models.RedemptionNotEnoughTickets}, nil
	}

	drawn, err := s.selector.Draw(ctx, team.ID)
	if err != nil {
		slog.Error("Redeem: prize draw failed", "error", err, "teamId", team.ID)
		return nil, fmt.Errorf("prize draw failed: %w", err)
	}

	if err := s.teamRepo.DebitRegularTicket(ctx, team.ID); err != nil {
		if errors.Is(err, repositories.ErrInsufficientTickets) {
			// Lost a race with a writer outside the per-team lock. Fail closed:
			// nothing was debited, nothing was granted.
			slog.Warn("Redeem: regular debit lost race, failing closed", "teamId", team.ID)
			return &models.RedemptionResult{Status: models.RedemptionNotEnoughTickets}, nil
		}
		slog.Error("Redeem: regular debit failed", "error", err, "teamId", team.ID)
		return nil, fmt.Errorf("failed to debit regular ticket: %w", err)
	}

	if drawn.Prize.Exclusive && !drawn.AlreadyWon {
		if err := s.grantRepo.RecordWin(ctx, team.ID, drawn.Prize.ID); err != nil {
			// Back out the debit so the ledger is not charged for a grant that
			// was never recorded.
			if creditErr := s.teamRepo.CreditRegularTicket(ctx, team.ID); creditErr != nil {
				slog.Error("Redeem: CRITICAL: failed to credit back regular ticket after grant failure",
					"error", creditErr, "teamId", team.ID, "prize", drawn.Prize.ID)
			}
			slog.Error("Redeem: failed to record prize grant", "error", err, "teamId", team.ID, "prize", drawn.Prize.ID)
			return nil, fmt.Errorf("failed to record prize grant: %w", err)
		}
	}

	slog.Info("Regular ticket redeemed", "teamId", team.ID, "prize", drawn.Prize.ID, "exclusive", drawn.Prize.Exclusive)
	return &models.RedemptionResult{
		Status: models.RedemptionRedeemed,
		Prize:  drawn.Prize.ID,
	}, nil
}

// redeemPremium debits one premium ticket and appends a raffle entry.
func (s *RedemptionServiceImpl) redeemPremium(ctx context.Context, team *models.Team) (*models.RedemptionResult, error) {
	if team.AvailablePremiumTickets() == 0 {
		return &models.RedemptionResult{Status: models.RedemptionNotEnoughTickets}, nil
	}

	if err := s.teamRepo.DebitPremiumTicket(ctx, team.ID); err != nil {
		if errors.Is(err, repositories.ErrInsufficientTickets) {
			slog.Warn("Redeem: premium debit lost race, failing closed", "teamId", team.ID)
			return &models.RedemptionResult{Status: models.RedemptionNotEnoughTickets}, nil
		}
		slog.Error("Redeem: premium debit failed", "error", err, "teamId", team.ID)
		return nil, fmt.Errorf("failed to debit premium ticket: %w", err)
	}

	entry := &models.RaffleEntry{TeamID: team.ID}
	if err := s.raffleRepo.Create(ctx, entry); err != nil {
		if creditErr := s.teamRepo.CreditPremiumTicket(ctx, team.ID); creditErr != nil {
			slog.Error("Redeem: CRITICAL: failed to credit back premium ticket after raffle failure",
				"error", creditErr, "teamId", team.ID)
		}
		slog.Error("Redeem: failed to create raffle entry", "error", err, "teamId", team.ID)
		return nil, fmt.Errorf("failed to create raffle entry: %w", err)
	}

	slog.Info("Premium ticket redeemed", "teamId", team.ID)
	return &models.RedemptionResult{Status: models.RedemptionRedeemed}, nil
}

// GetRedemptionStatus returns the team's available tickets and the catalog.
func (s *RedemptionServiceImpl) GetRedemptionStatus(ctx context.Context, teamID primitive.ObjectID) (*models.RedemptionStatusResponse, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}

	return &models.RedemptionStatusResponse{
		RegularTickets: team.AvailableRegularTickets(),
		PremiumTickets: team.AvailablePremiumTickets(),
		Catalog:        models.PrizeCatalogIDs(),
	}, nil
}

// teamLocks serializes redemptions per team. Locks are created on first use and
// kept for the lifetime of the service; the team population is small and
// bounded, so entries are never reaped.
type teamLocks struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func (t *teamLocks) lock(id primitive.ObjectID) (unlock func()) {
	t.mu.Lock()
	if t.locks == nil {
		t.locks = make(map[primitive.ObjectID]*sync.Mutex)
	}
	l, ok := t.locks[id]
	if !ok {
		l = &sync.Mutex{}
		t.locks[id] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}
