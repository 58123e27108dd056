package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize identifiers, in fixed catalog order.
const (
	PrizeZoomBackground = "zoom-background"
	PrizeProfilePicture = "profile-picture"
	PrizeStickers       = "stickers"
	PrizeDiscordRole    = "discord-role"
	PrizeDiscordEmote   = "discord-emote"
	PrizeSerenade       = "serenade"
	PrizeSteamGame      = "steam-game"
)

// Prize is a single entry in the prize catalog.
type Prize struct {
	ID         string  `json:"id"`
	BaseWeight float64 `json:"baseWeight"` // percentage points; 0 for the split prizes
	Exclusive  bool    `json:"exclusive"`  // one-time-only per team
}

// PrizeCatalog returns the fixed, ordered prize catalog. The two non-exclusive
// prizes carry no base weight of their own; they split whatever mass the
// exclusives leave behind 60/40.
func PrizeCatalog() []Prize {
	return []Prize{
		{ID: PrizeZoomBackground, Exclusive: false},
		{ID: PrizeProfilePicture, Exclusive: false},
		{ID: PrizeStickers, BaseWeight: 2.0, Exclusive: true},
		{ID: PrizeDiscordRole, BaseWeight: 30.0, Exclusive: true},
		{ID: PrizeDiscordEmote, BaseWeight: 0.5, Exclusive: true},
		{ID: PrizeSerenade, BaseWeight: 0.5, Exclusive: true},
		{ID: PrizeSteamGame, BaseWeight: 0.5, Exclusive: true},
	}
}

// PrizeCatalogIDs returns the catalog prize identifiers in catalog order.
func PrizeCatalogIDs() []string {
	catalog := PrizeCatalog()
	ids := make([]string, 0, len(catalog))
	for _, p := range catalog {
		ids = append(ids, p.ID)
	}
	return ids
}

// PrizeGrant records that a team has won a one-time-only prize. Unique per
// (team, prize) pair, enforced by a compound index on the collection.
type PrizeGrant struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TeamID    primitive.ObjectID `bson:"teamId" json:"teamId"`
	Prize     string             `bson:"prize" json:"prize"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
