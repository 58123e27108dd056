package services

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/acmcyber/rewards-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestSelector(grantRepo *fakeGrantRepo, seed int64) *PrizeSelector {
	return NewPrizeSelector(grantRepo, rand.New(rand.NewSource(seed)))
}

func TestLiveWeightsFreshTeam(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	selector := newTestSelector(newFakeGrantRepo(), 1)

	catalog, weights, err := selector.LiveWeights(ctx, teamID)
	if err != nil {
		t.Fatalf("LiveWeights returned error: %v", err)
	}

	// Exclusives sum to 33.5, so the non-exclusives split 66.5 at 60/40.
	want := []float64{0.6 * 66.5, 0.4 * 66.5, 2.0, 30.0, 0.5, 0.5, 0.5}
	for i := range catalog {
		if math.Abs(weights[i]-want[i]) > 1e-9 {
			t.Errorf("weight[%d] (%s) = %f, want %f", i, catalog[i].ID, weights[i], want[i])
		}
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if math.Abs(total-100.0) > 1e-9 {
		t.Errorf("weights sum to %f, want 100", total)
	}
}

func TestLiveWeightsExcludeWonExclusives(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	grantRepo := newFakeGrantRepo()
	selector := newTestSelector(grantRepo, 1)

	if err := grantRepo.RecordWin(ctx, teamID, models.PrizeDiscordRole); err != nil {
		t.Fatalf("RecordWin returned error: %v", err)
	}

	catalog, weights, err := selector.LiveWeights(ctx, teamID)
	if err != nil {
		t.Fatalf("LiveWeights returned error: %v", err)
	}

	// Remaining exclusive mass is 3.5; the non-exclusives split 96.5.
	for i, prize := range catalog {
		switch prize.ID {
		case models.PrizeDiscordRole:
			if weights[i] != 0 {
				t.Errorf("won exclusive %s has weight %f, want 0", prize.ID, weights[i])
			}
		case models.PrizeZoomBackground:
			if math.Abs(weights[i]-0.6*96.5) > 1e-9 {
				t.Errorf("zoom weight = %f, want %f", weights[i], 0.6*96.5)
			}
		case models.PrizeProfilePicture:
			if math.Abs(weights[i]-0.4*96.5) > 1e-9 {
				t.Errorf("profile weight = %f, want %f", weights[i], 0.4*96.5)
			}
		}
	}
}

func TestLiveWeightsSplitRatioStable(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	grantRepo := newFakeGrantRepo()
	selector := newTestSelector(grantRepo, 1)

	exclusives := []string{
		models.PrizeStickers, models.PrizeDiscordRole, models.PrizeDiscordEmote,
		models.PrizeSerenade, models.PrizeSteamGame,
	}

	// The 60:40 split between the two non-exclusives must hold no matter how
	// many exclusives have been won.
	for _, prize := range exclusives {
		_, weights, err := selector.LiveWeights(ctx, teamID)
		if err != nil {
			t.Fatalf("LiveWeights returned error: %v", err)
		}
		ratio := weights[0] / weights[1]
		if math.Abs(ratio-1.5) > 1e-9 {
			t.Errorf("zoom:profile ratio = %f, want 1.5", ratio)
		}
		if err := grantRepo.RecordWin(ctx, teamID, prize); err != nil {
			t.Fatalf("RecordWin returned error: %v", err)
		}
	}

	// All exclusives won: leftover is 66.5, still split 60/40.
	_, weights, err := selector.LiveWeights(ctx, teamID)
	if err != nil {
		t.Fatalf("LiveWeights returned error: %v", err)
	}
	if math.Abs(weights[0]-0.6*66.5) > 1e-9 || math.Abs(weights[1]-0.4*66.5) > 1e-9 {
		t.Errorf("weights after all exclusives won = [%f %f], want [%f %f]",
			weights[0], weights[1], 0.6*66.5, 0.4*66.5)
	}
	for i := 2; i < len(weights); i++ {
		if weights[i] != 0 {
			t.Errorf("exclusive weight[%d] = %f, want 0", i, weights[i])
		}
	}
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()

	first := newTestSelector(newFakeGrantRepo(), 42)
	second := newTestSelector(newFakeGrantRepo(), 42)

	for i := 0; i < 50; i++ {
		a, err := first.Draw(ctx, teamID)
		if err != nil {
			t.Fatalf("Draw returned error: %v", err)
		}
		b, err := second.Draw(ctx, teamID)
		if err != nil {
			t.Fatalf("Draw returned error: %v", err)
		}
		if a.Prize.ID != b.Prize.ID {
			t.Fatalf("draw %d diverged: %s vs %s", i, a.Prize.ID, b.Prize.ID)
		}
	}
}

func TestDrawNeverSelectsWonExclusive(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	grantRepo := newFakeGrantRepo()
	selector := newTestSelector(grantRepo, 7)

	// discord-role carries 30 of the 100 weight points; after a win its draw
	// probability must be exactly zero, not merely small.
	if err := grantRepo.RecordWin(ctx, teamID, models.PrizeDiscordRole); err != nil {
		t.Fatalf("RecordWin returned error: %v", err)
	}

	for i := 0; i < 5000; i++ {
		drawn, err := selector.Draw(ctx, teamID)
		if err != nil {
			t.Fatalf("Draw returned error: %v", err)
		}
		if drawn.Prize.ID == models.PrizeDiscordRole {
			t.Fatalf("draw %d selected a won exclusive", i)
		}
	}
}

func TestDrawOnlyNonExclusivesWhenAllWon(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	grantRepo := newFakeGrantRepo()
	selector := newTestSelector(grantRepo, 7)

	for _, prize := range models.PrizeCatalog() {
		if prize.Exclusive {
			if err := grantRepo.RecordWin(ctx, teamID, prize.ID); err != nil {
				t.Fatalf("RecordWin returned error: %v", err)
			}
		}
	}

	sawZoom, sawProfile := false, false
	for i := 0; i < 2000; i++ {
		drawn, err := selector.Draw(ctx, teamID)
		if err != nil {
			t.Fatalf("Draw returned error: %v", err)
		}
		switch drawn.Prize.ID {
		case models.PrizeZoomBackground:
			sawZoom = true
		case models.PrizeProfilePicture:
			sawProfile = true
		default:
			t.Fatalf("draw %d selected exclusive %s after all were won", i, drawn.Prize.ID)
		}
	}
	if !sawZoom || !sawProfile {
		t.Errorf("expected both non-exclusives to remain drawable (zoom=%v profile=%v)", sawZoom, sawProfile)
	}
}

func TestDrawFrequenciesTrackWeights(t *testing.T) {
	ctx := context.Background()
	teamID := primitive.NewObjectID()
	selector := newTestSelector(newFakeGrantRepo(), 99)

	const draws = 20000
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		drawn, err := selector.Draw(ctx, teamID)
		if err != nil {
			t.Fatalf("Draw returned error: %v", err)
		}
		counts[drawn.Prize.ID]++
	}

	// Coarse tolerance; this is a sanity check on the sampling, not a
	// statistical test.
	checks := map[string]float64{
		models.PrizeZoomBackground: 0.6 * 66.5 / 100,
		models.PrizeProfilePicture: 0.4 * 66.5 / 100,
		models.PrizeDiscordRole:    0.30,
		models.PrizeStickers:       0.02,
	}
	for prize, want := range checks {
		got := float64(counts[prize]) / draws
		if math.Abs(got-want) > 0.02 {
			t.Errorf("%s frequency = %f, want ~%f", prize, got, want)
		}
	}
}
