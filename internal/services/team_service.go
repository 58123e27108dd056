package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// TeamService handles team-related business logic for the admin surface
type TeamService struct {
	teamRepo   repositories.TeamRepository
	raffleRepo repositories.RaffleRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repositories.TeamRepository, raffleRepo repositories.RaffleRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		raffleRepo: raffleRepo,
	}
}

// GetTeamByID retrieves a team by ID
func (s *TeamService) GetTeamByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// GetTeamByName retrieves a team by name
func (s *TeamService) GetTeamByName(ctx context.Context, name string) (*models.Team, error) {
	team, err := s.teamRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// GetAllTeams retrieves all teams with pagination
func (s *TeamService) GetAllTeams(ctx context.Context, page, limit int) ([]*models.Team, error) {
	return s.teamRepo.FindAll(ctx, page, limit)
}

// GetTeamCount counts all teams
func (s *TeamService) GetTeamCount(ctx context.Context) (int64, error) {
	return s.teamRepo.Count(ctx)
}

// GrantPremiumTickets grants premium tickets to a team by name. Premium tickets
// are handed out out-of-band by organizers; this is the only way they increase.
func (s *TeamService) GrantPremiumTickets(ctx context.Context, name string, tickets int) error {
	if tickets <= 0 {
		return errors.New("tickets to grant must be positive")
	}
	err := s.teamRepo.IncrementPremiumTickets(ctx, name, tickets)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTeamNotFound
		}
		slog.Error("GrantPremiumTickets: failed to grant tickets", "error", err, "team", name, "tickets", tickets)
		return fmt.Errorf("failed to grant premium tickets: %w", err)
	}
	slog.Info("Premium tickets granted", "team", name, "tickets", tickets)
	return nil
}

// GetRaffleEntries retrieves raffle entries for the external drawing
func (s *TeamService) GetRaffleEntries(ctx context.Context, page, limit int) ([]*models.RaffleEntry, error) {
	return s.raffleRepo.FindAll(ctx, page, limit)
}
