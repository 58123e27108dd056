package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RaffleEntry records one premium-ticket redemption entered into the external
// raffle drawing. Append-only; the drawing itself happens outside this service.
type RaffleEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID    primitive.ObjectID `bson:"teamId" json:"teamId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
