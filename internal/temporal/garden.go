package temporal

import (
	"math"
	"time"

	"github.com/roach88/triviarpg/internal/game"
)

// PlantSeed buys and plants the garden seed.
func PlantSeed(s *game.GameState, now time.Time) error {
	g := &s.Garden
	if g.IsPlanted {
		return game.Precondition("garden already planted")
	}
	if err := s.SpendCoins(g.SeedCost); err != nil {
		return err
	}
	planted, checkpoint := now, now
	g.IsPlanted = true
	g.PlantedAt = &planted
	g.LastWatered = &checkpoint
	return nil
}

// WaterCost is the coin price of hours of water.
func WaterCost(g game.Garden, hours int) int {
	return int(math.Floor(float64(g.WaterCost) * float64(hours) / 24))
}

// BuyWater settles growth up to now, then adds hours of water.
func BuyWater(s *game.GameState, hours int, now time.Time) (int, error) {
	if hours <= 0 {
		return 0, game.Precondition("water hours must be positive, got %d", hours)
	}
	if !s.Garden.IsPlanted {
		return 0, game.Precondition("nothing planted")
	}
	cost := WaterCost(s.Garden, hours)
	if err := s.SpendCoins(cost); err != nil {
		return 0, err
	}
	GrowGarden(s, now)
	s.Garden.WaterHoursRemaining += float64(hours)
	return cost, nil
}

// GrowGarden advances the garden from its checkpoint to now. Each watered
// hour grows one centimetre up to the cap, and every whole centimetre adds
// one max hp.
func GrowGarden(s *game.GameState, now time.Time) {
	g := &s.Garden
	if !g.IsPlanted {
		return
	}
	if g.LastWatered == nil {
		checkpoint := now
		g.LastWatered = &checkpoint
		return
	}
	elapsed := now.Sub(*g.LastWatered).Hours()
	if elapsed <= 0 {
		return
	}
	watered := math.Min(elapsed, g.WaterHoursRemaining)
	g.WaterHoursRemaining -= watered
	g.GrowthCm = math.Min(g.GrowthCm+watered, g.MaxGrowthCm)
	checkpoint := now
	g.LastWatered = &checkpoint

	if bonus := int(math.Floor(g.GrowthCm)); bonus != g.TotalGrowthBonus {
		g.TotalGrowthBonus = bonus
		game.RecomputeStats(s)
	}
}
