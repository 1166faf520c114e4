package temporal

import (
	"math"
	"time"

	"github.com/roach88/triviarpg/internal/game"
)

// Per-minute offline rates before the research bonus.
const (
	offlineCoinsPerMinute = 5
	offlineGemsPerMinute  = 0.1
	offlineXPPerMinute    = 2
)

// OfflineReward is what an absence of Minutes earns.
type OfflineReward struct {
	Coins      int `json:"coins"`
	Gems       int `json:"gems"`
	Experience int `json:"experience"`
	Minutes    int `json:"minutes"`
}

// CalculateOfflineRewards prices an absence of minutes, capped at maxHours.
// Each research level adds 10% to coins and experience.
func CalculateOfflineRewards(minutes, researchLevel, maxHours int) OfflineReward {
	if maxHours <= 0 {
		maxHours = game.DefaultMaxOfflineHours
	}
	m := min(max(minutes, 0), maxHours*60)
	mult := 1 + 0.1*float64(researchLevel)
	return OfflineReward{
		Coins:      int(math.Floor(offlineCoinsPerMinute * float64(m) * mult)),
		Gems:       int(math.Floor(offlineGemsPerMinute * float64(m))),
		Experience: int(math.Floor(offlineXPPerMinute * float64(m) * mult)),
		Minutes:    m,
	}
}

// StageOfflineRewards computes the reward for the time since the last save
// and stages it for a later claim, replacing anything staged before.
func StageOfflineRewards(s *game.GameState, now time.Time) OfflineReward {
	elapsed := now.Sub(s.OfflineProgress.LastSaveTime)
	minutes := 0
	if elapsed > 0 {
		minutes = int(elapsed / time.Minute)
	}
	r := CalculateOfflineRewards(minutes, s.Research.Level, s.OfflineProgress.MaxOfflineHours)

	s.OfflineProgress.OfflineCoins = r.Coins
	s.OfflineProgress.OfflineGems = r.Gems
	s.OfflineProgress.OfflineExperience = r.Experience
	s.OfflineProgress.OfflineTime = r.Minutes
	return r
}

// ClaimOfflineRewards pays out the staged reward and clears it.
func ClaimOfflineRewards(s *game.GameState) (OfflineReward, error) {
	op := &s.OfflineProgress
	if !op.Staged() {
		return OfflineReward{}, game.Precondition("no offline rewards to claim")
	}
	r := OfflineReward{
		Coins:      op.OfflineCoins,
		Gems:       op.OfflineGems,
		Experience: op.OfflineExperience,
		Minutes:    op.OfflineTime,
	}
	s.EarnCoins(r.Coins)
	s.EarnGems(r.Gems)
	game.GrantExperience(s, r.Experience)

	op.OfflineCoins, op.OfflineGems, op.OfflineExperience, op.OfflineTime = 0, 0, 0, 0
	return r, nil
}

// Touch marks the state as seen at now.
func Touch(s *game.GameState, now time.Time) {
	s.OfflineProgress.LastSaveTime = now
}
