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

// Compile-time check to ensure PrizeGrantRepository implements repositories.PrizeGrantRepository
var _ repositories.PrizeGrantRepository = (*PrizeGrantRepository)(nil)

// PrizeGrantRepository implements the repositories.PrizeGrantRepository interface
type PrizeGrantRepository struct {
	collection *mongo.Collection
}

// NewPrizeGrantRepository creates a new PrizeGrantRepository
func NewPrizeGrantRepository(db *mongo.Database) *PrizeGrantRepository {
	return &PrizeGrantRepository{
		collection: db.Collection("prize_grants"),
	}
}

// EnsureIndexes creates the unique (teamId, prize) compound index that backs
// the one-grant-per-pair invariant.
func (r *PrizeGrantRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "prize", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// HasWon reports whether the team already holds a grant for the prize
func (r *PrizeGrantRepository) HasWon(ctx context.Context, teamID primitive.ObjectID, prize string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"teamId": teamID, "prize": prize})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordWin upserts the (team, prize) grant. $setOnInsert leaves an existing
// grant untouched, so retried writes after a partial failure stay idempotent.
func (r *PrizeGrantRepository) RecordWin(ctx context.Context, teamID primitive.ObjectID, prize string) error {
	filter := bson.M{"teamId": teamID, "prize": prize}
	update := bson.M{
		"$setOnInsert": bson.M{
			"teamId":    teamID,
			"prize":     prize,
			"createdAt": time.Now(),
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent writer inserted the same pair first; the grant exists.
		return nil
	}
	return err
}

// FindByTeamID finds all grants held by a team
func (r *PrizeGrantRepository) FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]*models.PrizeGrant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var grants []*models.PrizeGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}
	return grants, nil
}
