// Package economy implements the spending side of the game: equipment,
// research, chests, mining, relics and prestige.
//
// Every function takes the state it mutates and returns an error describing
// why it refused. A refused call may leave s partially modified; callers
// apply these functions to a throwaway clone and keep it only on success.
package economy

import (
	"math"
	"slices"
	"time"

	"github.com/roach88/triviarpg/internal/game"
)

// Equip moves the unequipped item id into its slot. Any item already in the
// slot goes back to the unequipped list.
func Equip(s *game.GameState, kind game.ItemKind, id string) error {
	list := s.Items(kind)
	i := game.IndexItem(*list, id)
	if i < 0 {
		return game.NotFound(string(kind), id)
	}
	item := (*list)[i]
	*list = slices.Delete(*list, i, i+1)

	slot := s.Slot(kind)
	if *slot != nil {
		*list = append(*list, **slot)
	}
	*slot = &item
	game.RecomputeStats(s)
	return nil
}

// Unequip empties the slot for kind.
func Unequip(s *game.GameState, kind game.ItemKind) error {
	slot := s.Slot(kind)
	if *slot == nil {
		return game.Precondition("no %s equipped", kind)
	}
	list := s.Items(kind)
	*list = append(*list, **slot)
	*slot = nil
	game.RecomputeStats(s)
	return nil
}

// findOwned returns the item id whether equipped or not.
func findOwned(s *game.GameState, kind game.ItemKind, id string) *game.Item {
	if slot := *s.Slot(kind); slot != nil && slot.ID == id {
		return slot
	}
	list := *s.Items(kind)
	if i := game.IndexItem(list, id); i >= 0 {
		return &list[i]
	}
	return nil
}

// UpgradeStat is one upgrade step: +10% of the current value, floored.
func UpgradeStat(stat int) int {
	return stat + stat/10
}

// Upgrade raises an owned item's level by one for its upgrade cost in gems.
func Upgrade(s *game.GameState, kind game.ItemKind, id string) error {
	item := findOwned(s, kind, id)
	if item == nil {
		return game.NotFound(string(kind), id)
	}
	if err := s.SpendGems(item.UpgradeCost); err != nil {
		return err
	}
	item.Level++
	item.Stat = UpgradeStat(item.Stat)
	s.Statistics.ItemsUpgraded++
	game.RecomputeStats(s)
	return nil
}

// Sell removes an unequipped item and credits its sell price. Golden touch
// doubles the payout.
func Sell(s *game.GameState, kind game.ItemKind, id string, now time.Time) (int, error) {
	list := s.Items(kind)
	i := game.IndexItem(*list, id)
	if i < 0 {
		return 0, game.NotFound(string(kind), id)
	}
	price := (*list)[i].SellPrice
	if s.MenuSkillActive(game.GoldenTouch, now) {
		price *= 2
	}
	*list = slices.Delete(*list, i, i+1)
	s.EarnCoins(price)
	s.Statistics.ItemsSold++
	return price, nil
}

// Discard destroys an unequipped item without payment.
func Discard(s *game.GameState, kind game.ItemKind, id string) error {
	list := s.Items(kind)
	i := game.IndexItem(*list, id)
	if i < 0 {
		return game.NotFound(string(kind), id)
	}
	*list = slices.Delete(*list, i, i+1)
	return nil
}

// BulkSell sells every listed unequipped item. Unknown ids are skipped. It
// returns the coins credited and the number of items sold.
func BulkSell(s *game.GameState, kind game.ItemKind, ids []string, now time.Time) (total, count int) {
	for _, id := range ids {
		price, err := Sell(s, kind, id, now)
		if err != nil {
			continue
		}
		total += price
		count++
	}
	return total, count
}

// BulkUpgrade upgrades the listed items in order, paying for each one, and
// stops at the first the player cannot afford. Unknown ids are skipped.
func BulkUpgrade(s *game.GameState, kind game.ItemKind, ids []string) (int, error) {
	upgraded := 0
	for _, id := range ids {
		err := Upgrade(s, kind, id)
		switch {
		case err == nil:
			upgraded++
		case game.CodeOf(err) == game.CodeInsufficientFunds:
			if upgraded == 0 {
				return 0, err
			}
			return upgraded, nil
		}
	}
	if upgraded == 0 {
		return 0, game.Precondition("nothing to upgrade")
	}
	return upgraded, nil
}

var repairMultiplier = [5]float64{1, 1.5, 2, 3, 5}

// RepairCost is the gem cost to restore item to full durability.
func RepairCost(item game.Item) int {
	if item.MaxDurability <= 0 || !item.Rarity.Valid() {
		return 0
	}
	missing := 1 - float64(item.Durability)/float64(item.MaxDurability)
	base := math.Floor(missing * 20)
	return int(math.Ceil(base * repairMultiplier[item.Rarity]))
}

// Repair restores an owned item's durability for RepairCost gems.
func Repair(s *game.GameState, kind game.ItemKind, id string) (int, error) {
	item := findOwned(s, kind, id)
	if item == nil {
		return 0, game.NotFound(string(kind), id)
	}
	if item.Durability >= item.MaxDurability {
		return 0, game.Precondition("%s is not damaged", item.Name)
	}
	cost := RepairCost(*item)
	if err := s.SpendGems(cost); err != nil {
		return 0, err
	}
	item.Durability = item.MaxDurability
	game.RecomputeStats(s)
	return cost, nil
}
