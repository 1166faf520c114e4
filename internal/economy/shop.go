package economy

import (
	"time"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
)

const (
	enchanterChance   = 0.8
	shinyExchangeRate = 10
	cheatStatFactor   = 10
)

// ChestReward lists what a chest contained.
type ChestReward struct {
	Cost  int         `json:"cost"`
	Items []game.Item `json:"items"`
}

// OpenChest buys a chest for cost coins and adds its contents to the
// inventory. The chest tier follows the price paid.
func OpenChest(s *game.GameState, gen *generator.Generator, cost int, now time.Time) (ChestReward, error) {
	if cost <= 0 {
		return ChestReward{}, game.Precondition("chest cost must be positive, got %d", cost)
	}
	if err := s.SpendCoins(cost); err != nil {
		return ChestReward{}, err
	}

	weights := generator.ChestWeights(cost)
	if s.MenuSkillActive(game.Treasurer, now) && cost < 1000 {
		weights = generator.EpicOrBetter
	}
	enchanter := s.MenuSkillActive(game.Enchanter, now)

	n := generator.ChestItemCount(cost)
	reward := ChestReward{Cost: cost, Items: make([]game.Item, 0, n)}
	for range n {
		item := gen.RandomItem(generator.UseWeights(weights))
		if enchanter && item.Rarity >= game.Epic && !item.IsEnchanted && gen.Chance(enchanterChance) {
			item = generator.Enchant(item)
		}
		s.AddItem(item)
		reward.Items = append(reward.Items, item)
	}
	s.Statistics.ChestsOpened++
	s.Logf("Opened a %d coin chest: %d item(s)", cost, n)
	return reward, nil
}

// PurchaseMythical buys one mythical weapon or armor for cost gems.
func PurchaseMythical(s *game.GameState, gen *generator.Generator, cost int) (game.Item, error) {
	if cost <= 0 {
		return game.Item{}, game.Precondition("mythical cost must be positive, got %d", cost)
	}
	if err := s.SpendGems(cost); err != nil {
		return game.Item{}, err
	}
	item := gen.RandomItem(generator.ForceRarity(game.Mythical))
	s.AddItem(item)
	return item, nil
}

// CheatItem grants an item of the requested kind and rarity with ten times
// the rolled stat. It needs the obtainAnyItem cheat.
func CheatItem(s *game.GameState, gen *generator.Generator, kind game.ItemKind, rarity game.Rarity) (game.Item, error) {
	if !s.Cheats.ObtainAnyItem {
		return game.Item{}, game.Precondition("obtainAnyItem cheat is off")
	}
	if !kind.Valid() {
		return game.Item{}, game.NewError(game.CodeInvalidReference, "unknown item kind %q", kind)
	}
	if !rarity.Valid() {
		return game.Item{}, game.NewError(game.CodeInvalidReference, "unknown rarity %d", rarity)
	}
	item := gen.Item(kind, generator.ForceRarity(rarity), generator.UseEnchantChance(0))
	item.Stat *= cheatStatFactor
	item.Name = "Cheat " + item.Name
	item.SellPrice = generator.SellPrice(kind, item.Stat)
	s.AddItem(item)
	return item, nil
}

// MineResult is the yield of one swing.
type MineResult struct {
	Gems      int `json:"gems"`
	ShinyGems int `json:"shinyGems"`
}

// Mine yields one gem, or one shiny gem with a small chance. Luck gem makes
// every swing shiny.
func Mine(s *game.GameState, gen *generator.Generator, now time.Time) MineResult {
	shiny := s.MenuSkillActive(game.LuckGem, now) || gen.Gem()
	if shiny {
		s.ShinyGems++
		s.Statistics.ShinyGemsEarned++
		s.Mining.TotalShinyGemsMined++
		return MineResult{ShinyGems: 1}
	}
	s.EarnGems(1)
	s.Mining.TotalGemsMined++
	return MineResult{Gems: 1}
}

// ExchangeShinyGems converts n shiny gems into ten gems each.
func ExchangeShinyGems(s *game.GameState, n int) (int, error) {
	if n <= 0 {
		return 0, game.Precondition("exchange amount must be positive, got %d", n)
	}
	if s.ShinyGems < n {
		return 0, game.InsufficientFunds("shinyGems", n, s.ShinyGems)
	}
	s.ShinyGems -= n
	gems := n * shinyExchangeRate
	s.Gems += gems
	return gems, nil
}
