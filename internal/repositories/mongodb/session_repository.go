package mongodb

import (
	"context"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure SessionRepository implements repositories.SessionRepository
var _ repositories.SessionRepository = (*SessionRepository)(nil)

// SessionRepository implements the repositories.SessionRepository interface
type SessionRepository struct {
	collection *mongo.Collection
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{
		collection: db.Collection("sessions"),
	}
}

// FindByCookie resolves a session cookie to its session record
func (r *SessionRepository) FindByCookie(ctx context.Context, cookie string) (*models.Session, error) {
	var session models.Session
	err := r.collection.FindOne(ctx, bson.M{"cookie": cookie}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
