package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session maps a browser session cookie to a team. Sessions are created and
// rotated by the main platform; this service only resolves them.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID    primitive.ObjectID `bson:"teamId" json:"teamId"`
	Cookie    string             `bson:"cookie" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
