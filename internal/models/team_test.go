package models

import "testing"

func TestAvailableRegularTickets(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		redeemedScore int
		want          int
	}{
		{"zero score", 0, 0, 0},
		{"below one ticket", 49, 0, 0},
		{"exactly one ticket", 50, 0, 1},
		{"just above one ticket", 99, 0, 1},
		{"one ticket left", 500, 450, 1},
		{"fully redeemed", 500, 500, 0},
		{"many tickets", 1000, 250, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := &Team{Score: tt.score, RedeemedScore: tt.redeemedScore}
			if got := team.AvailableRegularTickets(); got != tt.want {
				t.Errorf("AvailableRegularTickets() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAvailableRegularTicketsNeverNegative(t *testing.T) {
	// RedeemedScore <= Score is a storage invariant, but the derivation must
	// not go negative even on a corrupt record.
	team := &Team{Score: 100, RedeemedScore: 200}
	if got := team.AvailableRegularTickets(); got != 0 {
		t.Errorf("AvailableRegularTickets() = %d, want 0", got)
	}
}

func TestPrizeCatalogShape(t *testing.T) {
	catalog := PrizeCatalog()
	if len(catalog) != 7 {
		t.Fatalf("expected 7 catalog entries, got %d", len(catalog))
	}

	wantOrder := []string{
		PrizeZoomBackground, PrizeProfilePicture, PrizeStickers,
		PrizeDiscordRole, PrizeDiscordEmote, PrizeSerenade, PrizeSteamGame,
	}
	exclusiveMass := 0.0
	for i, prize := range catalog {
		if prize.ID != wantOrder[i] {
			t.Errorf("catalog[%d] = %s, want %s", i, prize.ID, wantOrder[i])
		}
		if prize.Exclusive {
			exclusiveMass += prize.BaseWeight
		} else if prize.BaseWeight != 0 {
			t.Errorf("non-exclusive prize %s has base weight %f", prize.ID, prize.BaseWeight)
		}
	}
	if exclusiveMass != 33.5 {
		t.Errorf("exclusive base weights sum to %f, want 33.5", exclusiveMass)
	}
}
