package generator

import (
	"math"

	"github.com/roach88/triviarpg/internal/game"
)

type itemTable struct {
	base     [5]int
	variance int
	names    [5][]string
}

var weaponTable = itemTable{
	base:     [5]int{15, 25, 40, 60, 100},
	variance: 10,
	names: [5][]string{
		{"Rusty Sword", "Wooden Club", "Stone Axe", "Iron Dagger"},
		{"Steel Blade", "Silver Mace", "Enchanted Bow", "Crystal Staff"},
		{"Flamebrand", "Frostbite", "Thunder Strike", "Shadow Cleaver"},
		{"Excalibur", "Mjolnir", "Gungnir", "Durandal"},
		{"Void Reaper", "Cosmic Blade", "Reality Slicer", "Dimension Cutter", "Soul Harvester", "Infinity Edge", "Chaos Bringer", "Eternal Destroyer"},
	},
}

var armorTable = itemTable{
	base:     [5]int{8, 15, 25, 40, 70},
	variance: 5,
	names: [5][]string{
		{"Leather Vest", "Cloth Robe", "Wooden Shield", "Iron Helm"},
		{"Chainmail", "Steel Plate", "Mystic Cloak", "Silver Guard"},
		{"Dragon Scale", "Phoenix Mail", "Void Armor", "Crystal Guard"},
		{"Divine Aegis", "Eternal Plate", "Shadowweave", "Celestial Ward"},
		{"Abyssal Aegis", "Stellar Fortress", "Quantum Shield", "Infinity Guard", "Void Mantle", "Cosmic Barrier", "Reality Armor", "Dimensional Cloak"},
	},
}

var (
	durabilityByRarity  = [5]int{50, 75, 100, 150, 200}
	upgradeCostByRarity = [5]int{5, 10, 20, 40, 50}
)

// Durability is the max durability of a freshly rolled item of rarity r.
func Durability(r game.Rarity) int {
	if !r.Valid() {
		return durabilityByRarity[0]
	}
	return durabilityByRarity[r]
}

// UpgradeCost is the gem cost of upgrading an item of rarity r.
func UpgradeCost(r game.Rarity) int {
	if !r.Valid() {
		return upgradeCostByRarity[0]
	}
	return upgradeCostByRarity[r]
}

// SellPrice is the coin value of an item: half its attack for weapons,
// three quarters of its defense for armor.
func SellPrice(kind game.ItemKind, stat int) int {
	if kind == game.KindArmor {
		return int(math.Floor(float64(stat) * 0.75))
	}
	return int(math.Floor(float64(stat) * 0.5))
}

type itemSpec struct {
	rarity        *game.Rarity
	enchanted     bool
	weights       *Weights
	enchantChance *float64
}

// ItemOption adjusts a single item roll.
type ItemOption func(*itemSpec)

// ForceRarity skips the rarity draw.
func ForceRarity(r game.Rarity) ItemOption {
	return func(s *itemSpec) { s.rarity = &r }
}

// ForceEnchanted skips the enchant draw and enchants the item.
func ForceEnchanted() ItemOption {
	return func(s *itemSpec) { s.enchanted = true }
}

// UseWeights draws rarity from w instead of the generator's weights.
func UseWeights(w Weights) ItemOption {
	return func(s *itemSpec) { s.weights = &w }
}

// UseEnchantChance overrides the enchant probability for this roll.
func UseEnchantChance(p float64) ItemOption {
	return func(s *itemSpec) { s.enchantChance = &p }
}

// Weapon rolls a weapon.
func (g *Generator) Weapon(opts ...ItemOption) game.Item {
	return g.Item(game.KindWeapon, opts...)
}

// Armor rolls a piece of armor.
func (g *Generator) Armor(opts ...ItemOption) game.Item {
	return g.Item(game.KindArmor, opts...)
}

// RandomItem rolls a weapon or armor with equal probability.
func (g *Generator) RandomItem(opts ...ItemOption) game.Item {
	if g.src.Float64() < 0.5 {
		return g.Weapon(opts...)
	}
	return g.Armor(opts...)
}

// Item rolls one item of kind. Draw order: rarity, name, stat variance,
// enchantment, id.
func (g *Generator) Item(kind game.ItemKind, opts ...ItemOption) game.Item {
	var spec itemSpec
	for _, opt := range opts {
		opt(&spec)
	}

	table := weaponTable
	if kind == game.KindArmor {
		table = armorTable
	}

	var rarity game.Rarity
	switch {
	case spec.rarity != nil:
		rarity = *spec.rarity
	case spec.weights != nil:
		rarity = g.RollRarity(*spec.weights)
	default:
		rarity = g.RollRarity(g.weights)
	}
	if !rarity.Valid() {
		rarity = game.Common
	}

	names := table.names[rarity]
	name := names[g.src.IntN(len(names))]
	stat := table.base[rarity] + g.src.IntN(table.variance)

	enchanted := spec.enchanted
	if !enchanted {
		chance := g.enchantChance
		if spec.enchantChance != nil {
			chance = *spec.enchantChance
		}
		enchanted = g.src.Float64() < chance
	}

	durability := Durability(rarity)
	item := game.Item{
		ID:                    g.ID(),
		Name:                  name,
		Kind:                  kind,
		Rarity:                rarity,
		Level:                 1,
		Stat:                  stat,
		UpgradeCost:           UpgradeCost(rarity),
		SellPrice:             SellPrice(kind, stat),
		Durability:            durability,
		MaxDurability:         durability,
		EnchantmentMultiplier: 1,
	}
	if enchanted {
		item = Enchant(item)
	}
	return item
}

// Enchant doubles a freshly rolled item's stat and renames it. Already
// enchanted items are returned unchanged.
func Enchant(item game.Item) game.Item {
	if item.IsEnchanted {
		return item
	}
	item.IsEnchanted = true
	item.EnchantmentMultiplier = 2
	item.Stat *= 2
	item.Name = "Enchanted " + item.Name
	item.SellPrice = SellPrice(item.Kind, item.Stat)
	return item
}

var relicNames = map[game.ItemKind][]string{
	game.KindWeapon: {
		"Ancient Blade of Yojef", "Primordial Sword", "Relic of the First War", "Eternal Flame Sword",
		"Void Touched Blade", "Starfall Weapon", "Temporal Slicer", "Reality Breaker",
	},
	game.KindArmor: {
		"Guardian's Ancient Shield", "Primordial Armor", "Relic of Protection", "Eternal Barrier",
		"Void Touched Guard", "Starfall Aegis", "Temporal Ward", "Reality Defender",
	},
}

// Relic rolls a market relic. Weapon relics carry 120-179 attack, armor
// relics 90-134 defense. The gem price is five times the stat.
func (g *Generator) Relic() game.Relic {
	kind := game.KindArmor
	if g.src.Float64() < 0.5 {
		kind = game.KindWeapon
	}
	names := relicNames[kind]
	name := names[g.src.IntN(len(names))]

	var stat int
	var desc string
	if kind == game.KindWeapon {
		stat = 120 + g.src.IntN(60)
		desc = "A powerful relic weapon from ancient times"
	} else {
		stat = 90 + g.src.IntN(45)
		desc = "A protective relic from ancient times"
	}
	return game.Relic{
		ID:          g.ID(),
		Name:        name,
		Kind:        kind,
		Level:       1,
		Stat:        stat,
		Cost:        stat * 5,
		Description: desc,
	}
}

// ChestWeights returns the rarity table for a chest bought at cost.
func ChestWeights(cost int) Weights {
	switch {
	case cost >= 1000:
		return Weights{0, 0, 0, 70, 30}
	case cost >= 400:
		return Weights{0, 0, 60, 30, 10}
	case cost >= 200:
		return Weights{0, 50, 35, 13, 2}
	default:
		return Weights{60, 30, 8, 2, 0}
	}
}

// EpicOrBetter is the rarity table used when a chest is guaranteed epic+.
var EpicOrBetter = Weights{0, 0, 60, 30, 10}

// ChestItemCount returns how many items a chest bought at cost contains.
func ChestItemCount(cost int) int {
	switch {
	case cost >= 1000:
		return 3
	case cost >= 400:
		return 2
	default:
		return 1
	}
}
