package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/acmcyber/rewards-backend/internal/models"
	"github.com/acmcyber/rewards-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// nonExclusiveSplit is how the two non-exclusive prizes divide the weight left
// over by the exclusives: 60% zoom background, 40% profile picture.
var nonExclusiveSplit = map[string]float64{
	models.PrizeZoomBackground: 0.6,
	models.PrizeProfilePicture: 0.4,
}

// DrawnPrize is the result of one weighted draw.
type DrawnPrize struct {
	Prize models.Prize
	// AlreadyWon reports whether the team held a grant for this prize before
	// the draw. The engine records a new grant only when this is false.
	AlreadyWon bool
}

// PrizeSelector draws one prize from the catalog with probability proportional
// to each prize's live weight. An exclusive prize the team has already won
// carries weight zero and cannot be drawn again.
type PrizeSelector struct {
	grantRepo repositories.PrizeGrantRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPrizeSelector creates a new PrizeSelector. The random source is injected
// so tests can seed it for reproducible draws.
func NewPrizeSelector(grantRepo repositories.PrizeGrantRepository, rng *rand.Rand) *PrizeSelector {
	return &PrizeSelector{
		grantRepo: grantRepo,
		rng:       rng,
	}
}

// LiveWeights computes the current weight vector for the team, aligned with
// catalog order. Won exclusives weigh zero; the remaining mass up to 100 is
// split 60/40 across the two non-exclusive prizes.
func (s *PrizeSelector) LiveWeights(ctx context.Context, teamID primitive.ObjectID) ([]models.Prize, []float64, error) {
	catalog := models.PrizeCatalog()
	weights := make([]float64, len(catalog))

	exclusiveMass := 0.0
	for i, prize := range catalog {
		if !prize.Exclusive {
			continue
		}
		won, err := s.grantRepo.HasWon(ctx, teamID, prize.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up prize grant for %s: %w", prize.ID, err)
		}
		if won {
			weights[i] = 0
		} else {
			weights[i] = prize.BaseWeight
			exclusiveMass += prize.BaseWeight
		}
	}

	leftover := 100.0 - exclusiveMass
	for i, prize := range catalog {
		if !prize.Exclusive {
			weights[i] = nonExclusiveSplit[prize.ID] * leftover
		}
	}

	return catalog, weights, nil
}

// Draw selects one prize for the team. The draw itself is pure: it mutates
// nothing, so the caller decides whether to record a new exclusive win.
func (s *PrizeSelector) Draw(ctx context.Context, teamID primitive.ObjectID) (*DrawnPrize, error) {
	catalog, weights, err := s.LiveWeights(ctx, teamID)
	if err != nil {
		return nil, err
	}

	idx, err := s.pick(weights)
	if err != nil {
		return nil, err
	}

	drawn := &DrawnPrize{Prize: catalog[idx]}
	if drawn.Prize.Exclusive {
		// Weight zero makes a won exclusive undrawable, so this is always a
		// first win, but the grant lookup keeps the contract explicit.
		won, err := s.grantRepo.HasWon(ctx, teamID, drawn.Prize.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up prize grant for %s: %w", drawn.Prize.ID, err)
		}
		drawn.AlreadyWon = won
	}
	return drawn, nil
}

// pick draws an index with probability proportional to weights, via cumulative
// weights and binary search. The cumulative sum is flat across a zero-weight
// entry, so such an entry can never satisfy r < cum[i] first: its probability
// is exactly zero.
func (s *PrizeSelector) pick(weights []float64) (int, error) {
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("negative weight %f at index %d", w, i)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return 0, errors.New("no prize has positive weight")
	}

	s.mu.Lock()
	r := s.rng.Float64() * total
	s.mu.Unlock()

	idx := sort.Search(len(cum), func(i int) bool { return r < cum[i] })
	if idx == len(cum) {
		// Float64 returns values in [0, 1), but guard the rounding edge.
		idx = len(cum) - 1
	}
	return idx, nil
}
