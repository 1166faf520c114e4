package temporal

import (
	"time"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
)

const relicFinderBonus = 2

// MarketDue reports whether the market should restock at now.
func MarketDue(s *game.GameState, now time.Time) bool {
	return !now.Before(s.YojefMarket.NextRefresh)
}

// RefreshMarket restocks the relic market with size fresh relics when forced
// or when the refresh time has passed. It reports whether a restock happened.
func RefreshMarket(s *game.GameState, gen *generator.Generator, now time.Time, size int, interval time.Duration, force bool) bool {
	if !force && !MarketDue(s, now) {
		return false
	}
	if s.MenuSkillActive(game.RelicFinder, now) {
		size += relicFinderBonus
	}
	items := make([]game.Relic, 0, size)
	for range size {
		items = append(items, gen.Relic())
	}
	s.YojefMarket = game.Market{
		Items:       items,
		LastRefresh: now,
		NextRefresh: now.Add(interval),
	}
	return true
}
