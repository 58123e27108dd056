package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TeamRepository implements repositories.TeamRepository
var _ repositories.TeamRepository = (*TeamRepository)(nil)

// TeamRepository implements the repositories.TeamRepository interface
type TeamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{
		collection: db.Collection("teams"),
	}
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, team)
	return err
}

// FindByID finds a team by ID
func (r *TeamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByName finds a team by its unique name
func (r *TeamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	var team models.Team
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&team)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// FindAll finds all teams with pagination, highest score first
func (r *TeamRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Team, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"score": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Count counts all teams
func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// DebitRegularTicket atomically spends one regular ticket by moving TicketCost
// score into redeemedScore. The filter admits the team only while
// redeemedScore+TicketCost <= score, so a concurrent writer cannot push the
// ledger past the team's earned score.
func (r *TeamRepository) DebitRegularTicket(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{
		"_id": id,
		"$expr": bson.M{
			"$lte": bson.A{
				bson.M{"$add": bson.A{"$redeemedScore", models.TicketCost}},
				"$score",
			},
		},
	}
	update := bson.M{
		"$inc": bson.M{"redeemedScore": models.TicketCost},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.insufficientOrMissing(ctx, id)
	}
	return nil
}

// CreditRegularTicket backs out one regular-ticket debit
func (r *TeamRepository) CreditRegularTicket(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "redeemedScore": bson.M{"$gte": models.TicketCost}}
	update := bson.M{
		"$inc": bson.M{"redeemedScore": -models.TicketCost},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DebitPremiumTicket atomically spends one premium ticket. The filter admits
// the team only while premiumTickets >= 1.
func (r *TeamRepository) DebitPremiumTicket(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "premiumTickets": bson.M{"$gte": 1}}
	update := bson.M{
		"$inc": bson.M{"premiumTickets": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.insufficientOrMissing(ctx, id)
	}
	return nil
}

// CreditPremiumTicket backs out one premium-ticket debit
func (r *TeamRepository) CreditPremiumTicket(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"premiumTickets": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementPremiumTickets grants premium tickets to a team by name
func (r *TeamRepository) IncrementPremiumTickets(ctx context.Context, name string, tickets int) error {
	if tickets <= 0 {
		return errors.New("tickets to grant must be positive")
	}
	filter := bson.M{"name": name}
	update := bson.M{
		"$inc": bson.M{"premiumTickets": tickets},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// insufficientOrMissing distinguishes a team that lost the debit race from a
// team that does not exist at all.
func (r *TeamRepository) insufficientOrMissing(ctx context.Context, id primitive.ObjectID) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return mongo.ErrNoDocuments
	}
	return repositories.ErrInsufficientTickets
}
