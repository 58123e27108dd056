package mongodb

import (
	"context"
	"time"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure RaffleRepository implements repositories.RaffleRepository
var _ repositories.RaffleRepository = (*RaffleRepository)(nil)

// RaffleRepository implements the repositories.RaffleRepository interface
type RaffleRepository struct {
	collection *mongo.Collection
}

// NewRaffleRepository creates a new RaffleRepository
func NewRaffleRepository(db *mongo.Database) *RaffleRepository {
	return &RaffleRepository{
		collection: db.Collection("raffle_entries"),
	}
}

// Create appends a new raffle entry
func (r *RaffleRepository) Create(ctx context.Context, entry *models.RaffleEntry) error {
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindAll finds all raffle entries with pagination, oldest first
func (r *RaffleRepository) FindAll(ctx context.Context, page, limit int) ([]*models.RaffleEntry, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"createdAt": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.RaffleEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByTeamID counts a team's raffle entries
func (r *RaffleRepository) CountByTeamID(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"teamId": teamID})
}
