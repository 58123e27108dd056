package models

// TicketType selects which ticket a redemption spends.
type TicketType string

const (
	TicketTypeRegular TicketType = "regular"
	TicketTypePremium TicketType = "premium"
)

// Valid reports whether the ticket type is one the engine accepts.
func (t TicketType) Valid() bool {
	return t == TicketTypeRegular || t == TicketTypePremium
}

// RedemptionStatus is the business outcome of a redemption request.
type RedemptionStatus string

const (
	RedemptionRedeemed         RedemptionStatus = "REDEEMED"
	RedemptionNotEnoughTickets RedemptionStatus = "NOT_ENOUGH_TICKETS"
)

// RedemptionResult is what the engine hands back to the HTTP layer. Prize is
// empty for premium redemptions (those enter the raffle instead of awarding an
// immediate prize) and for NOT_ENOUGH_TICKETS outcomes.
type RedemptionResult struct {
	Status RedemptionStatus `json:"status"`
	Prize  string           `json:"prize,omitempty"`
}

// RedemptionStatusResponse is the read-only rewards display surface.
type RedemptionStatusResponse struct {
	RegularTickets int      `json:"regularTickets"`
	PremiumTickets int      `json:"premiumTickets"`
	Catalog        []string `json:"catalog"`
}
