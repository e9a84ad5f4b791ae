// Package selection implements cumulative-weight reward sampling.
package selection

import (
	"fmt"

	"github.com/osse101/LootCrates_Go/internal/domain"
)

// Roll draws one reward from the crate's pool with probability proportional to weight.
//
// pick is uniform over [1, max(total, 1)]; the first reward whose running weight
// reaches pick wins. Zero-weight rewards can never be picked, and a pool whose
// weights sum to zero always yields its first reward.
func Roll(crate *domain.Crate, rng RNG) (*domain.Reward, error) {
	if crate == nil || len(crate.Rewards) == 0 {
		return nil, fmt.Errorf("%w: crate %s", domain.ErrEmptyRewardPool, crateID(crate))
	}
	idx := Pick(crate.Rewards, rng)
	return &crate.Rewards[idx], nil
}

// Pick returns the index chosen by cumulative-weight inversion. rewards must be non-empty.
func Pick(rewards []domain.Reward, rng RNG) int {
	total := 0
	for i := range rewards {
		if rewards[i].Weight > 0 {
			total += rewards[i].Weight
		}
	}
	if total <= 0 {
		return 0
	}

	pick := rng.IntN(total) + 1
	cumulative := 0
	for i := range rewards {
		if rewards[i].Weight > 0 {
			cumulative += rewards[i].Weight
		}
		if cumulative >= pick {
			return i
		}
	}
	return len(rewards) - 1
}

// Uniform picks one candidate with equal probability regardless of weight
func Uniform(candidates []*domain.Reward, rng RNG) *domain.Reward {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.IntN(len(candidates))]
}

// Simulate rolls the crate n times and counts hits per reward id
func Simulate(crate *domain.Crate, rng RNG, n int) (map[string]int, error) {
	counts := make(map[string]int, len(crate.Rewards))
	for i := 0; i < n; i++ {
		r, err := Roll(crate, rng)
		if err != nil {
			return nil, err
		}
		counts[r.ID]++
	}
	return counts, nil
}

func crateID(c *domain.Crate) string {
	if c == nil {
		return "<nil>"
	}
	return c.ID
}
