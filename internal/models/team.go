package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketCost is the score price of one regular ticket.
const TicketCost = 50

// Team represents a competing team in the platform
type Team struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Discord        string             `bson:"discord,omitempty" json:"discord,omitempty"`
	Solves         int                `bson:"solves" json:"solves"`
	Score          int                `bson:"score" json:"score"`
	RedeemedScore  int                `bson:"redeemedScore" json:"redeemedScore"`
	PremiumTickets int                `bson:"premiumTickets" json:"premiumTickets"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AvailableRegularTickets derives the team's spendable regular tickets from its
// score ledger. RedeemedScore never exceeds Score, so the result is never negative.
func (t *Team) AvailableRegularTickets() int {
	unredeemed := t.Score - t.RedeemedScore
	if unredeemed <= 0 {
		return 0
	}
	return unredeemed / TicketCost
}

// AvailablePremiumTickets returns the team's spendable premium tickets.
func (t *Team) AvailablePremiumTickets() int {
	if t.PremiumTickets < 0 {
		return 0
	}
	return t.PremiumTickets
}
