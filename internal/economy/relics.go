package economy

import (
	"slices"

	"github.com/roach88/triviarpg/internal/game"
)

// RelicUpgradeCost is the shiny gem price of raising a relic past level.
func RelicUpgradeCost(level int) int {
	return level * 10
}

// PurchaseRelic buys relic id from the market for its gem cost.
func PurchaseRelic(s *game.GameState, id string) (game.Relic, error) {
	market := &s.YojefMarket.Items
	i := game.IndexRelic(*market, id)
	if i < 0 {
		return game.Relic{}, game.NotFound("market relic", id)
	}
	relic := (*market)[i]
	if err := s.SpendGems(relic.Cost); err != nil {
		return game.Relic{}, err
	}
	*market = slices.Delete(*market, i, i+1)
	s.Inventory.Relics = append(s.Inventory.Relics, relic)
	s.Logf("Purchased relic %s", relic.Name)
	return relic, nil
}

func findRelic(s *game.GameState, id string) *game.Relic {
	if i := game.IndexRelic(s.Inventory.EquippedRelics, id); i >= 0 {
		return &s.Inventory.EquippedRelics[i]
	}
	if i := game.IndexRelic(s.Inventory.Relics, id); i >= 0 {
		return &s.Inventory.Relics[i]
	}
	return nil
}

// UpgradeRelic raises an owned relic, equipped or not, by one level.
func UpgradeRelic(s *game.GameState, id string) error {
	relic := findRelic(s, id)
	if relic == nil {
		return game.NotFound("relic", id)
	}
	if err := s.SpendShinyGems(RelicUpgradeCost(relic.Level)); err != nil {
		return err
	}
	relic.Level++
	relic.Stat = UpgradeStat(relic.Stat)
	game.RecomputeStats(s)
	return nil
}

// EquipRelic moves relic id into the equipped set, which holds at most
// limit relics.
func EquipRelic(s *game.GameState, id string, limit int) error {
	i := game.IndexRelic(s.Inventory.Relics, id)
	if i < 0 {
		return game.NotFound("relic", id)
	}
	if len(s.Inventory.EquippedRelics) >= limit {
		return game.NewError(game.CodeCapacityExceeded, "relic slots full (%d)", limit).
			WithDetail("limit", limit)
	}
	relic := s.Inventory.Relics[i]
	s.Inventory.Relics = slices.Delete(s.Inventory.Relics, i, i+1)
	s.Inventory.EquippedRelics = append(s.Inventory.EquippedRelics, relic)
	game.RecomputeStats(s)
	return nil
}

func UnequipRelic(s *game.GameState, id string) error {
	i := game.IndexRelic(s.Inventory.EquippedRelics, id)
	if i < 0 {
		return game.NotFound("equipped relic", id)
	}
	relic := s.Inventory.EquippedRelics[i]
	s.Inventory.EquippedRelics = slices.Delete(s.Inventory.EquippedRelics, i, i+1)
	s.Inventory.Relics = append(s.Inventory.Relics, relic)
	game.RecomputeStats(s)
	return nil
}

// SellRelic removes an unequipped relic and refunds half its cost in gems.
func SellRelic(s *game.GameState, id string) (int, error) {
	i := game.IndexRelic(s.Inventory.Relics, id)
	if i < 0 {
		return 0, game.NotFound("relic", id)
	}
	refund := s.Inventory.Relics[i].Cost / 2
	s.Inventory.Relics = slices.Delete(s.Inventory.Relics, i, i+1)
	s.EarnGems(refund)
	return refund, nil
}
