package services

import (
	"context"
	"sync"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeTeamRepo is an in-memory TeamRepository mirroring the conditional-update
// semantics of the Mongo implementation.
type fakeTeamRepo struct {
	mu    sync.Mutex
	teams map[primitive.ObjectID]*models.Team

	debitRegularErr error // injected failure for the next regular debit
	debitPremiumErr error
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[primitive.ObjectID]*models.Team)}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) FindByName(ctx context.Context, name string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if team.Name == name {
			copied := *team
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeTeamRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var teams []*models.Team
	for _, team := range r.teams {
		copied := *team
		teams = append(teams, &copied)
	}
	return teams, nil
}

func (r *fakeTeamRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.teams)), nil
}

func (r *fakeTeamRepo) DebitRegularTicket(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.debitRegularErr != nil {
		err := r.debitRegularErr
		r.debitRegularErr = nil
		return err
	}
	team, ok := r.teams[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if team.RedeemedScore+models.TicketCost > team.Score {
		return repositories.ErrInsufficientTickets
	}
	team.RedeemedScore += models.TicketCost
	return nil
}

func (r *fakeTeamRepo) CreditRegularTicket(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	team.RedeemedScore -= models.TicketCost
	return nil
}

func (r *fakeTeamRepo) DebitPremiumTicket(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.debitPremiumErr != nil {
		err := r.debitPremiumErr
		r.debitPremiumErr = nil
		return err
	}
	team, ok := r.teams[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if team.PremiumTickets < 1 {
		return repositories.ErrInsufficientTickets
	}
	team.PremiumTickets--
	return nil
}

func (r *fakeTeamRepo) CreditPremiumTicket(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	team.PremiumTickets++
	return nil
}

func (r *fakeTeamRepo) IncrementPremiumTickets(ctx context.Context, name string, tickets int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, team := range r.teams {
		if team.Name == name {
			team.PremiumTickets += tickets
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeTeamRepo) get(id primitive.ObjectID) *models.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *r.teams[id]
	return &copied
}

type grantKey struct {
	teamID primitive.ObjectID
	prize  string
}

// fakeGrantRepo is an in-memory PrizeGrantRepository. The map keyed by
// (team, prize) gives the same one-grant-per-pair semantics as the unique
// compound index.
type fakeGrantRepo struct {
	mu     sync.Mutex
	grants map[grantKey]*models.PrizeGrant

	recordWinErr error // injected failure for the next RecordWin
}

func newFakeGrantRepo() *fakeGrantRepo {
	return &fakeGrantRepo{grants: make(map[grantKey]*models.PrizeGrant)}
}

func (r *fakeGrantRepo) HasWon(ctx context.Context, teamID primitive.ObjectID, prize string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.grants[grantKey{teamID, prize}]
	return ok, nil
}

func (r *fakeGrantRepo) RecordWin(ctx context.Context, teamID primitive.ObjectID, prize string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recordWinErr != nil {
		err := r.recordWinErr
		r.recordWinErr = nil
		return err
	}
	key := grantKey{teamID, prize}
	if _, ok := r.grants[key]; ok {
		return nil
	}
	r.grants[key] = &models.PrizeGrant{TeamID: teamID, Prize: prize}
	return nil
}

func (r *fakeGrantRepo) FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]*models.PrizeGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var grants []*models.PrizeGrant
	for key, grant := range r.grants {
		if key.teamID == teamID {
			grants = append(grants, grant)
		}
	}
	return grants, nil
}

func (r *fakeGrantRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.grants)
}

// fakeRaffleRepo is an in-memory append-only RaffleRepository.
type fakeRaffleRepo struct {
	mu      sync.Mutex
	entries []*models.RaffleEntry

	createErr error // injected failure for the next Create
}

func newFakeRaffleRepo() *fakeRaffleRepo {
	return &fakeRaffleRepo{}
}

func (r *fakeRaffleRepo) Create(ctx context.Context, entry *models.RaffleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRaffleRepo) FindAll(ctx context.Context, page, limit int) ([]*models.RaffleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.RaffleEntry(nil), r.entries...), nil
}

func (r *fakeRaffleRepo) CountByTeamID(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, entry := range r.entries {
		if entry.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRaffleRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Compile-time checks that the fakes satisfy the repository interfaces
var (
	_ repositories.TeamRepository       = (*fakeTeamRepo)(nil)
	_ repositories.PrizeGrantRepository = (*fakeGrantRepo)(nil)
	_ repositories.RaffleRepository     = (*fakeRaffleRepo)(nil)
)
