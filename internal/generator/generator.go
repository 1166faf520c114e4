// Package generator rolls weapons, armor, relics, enemies and the other
// random rewards of the game from an injected random.Source.
//
// Every draw goes through the Generator's source in a fixed order, so a
// seeded source reproduces identical items, ids included.
package generator

import (
	"math"

	"github.com/google/uuid"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/random"
)

// Weights are percentages per rarity in ordinal order. They should sum to 100.
type Weights [5]int

// DefaultWeights is the drop table for ordinary item rolls.
var DefaultWeights = Weights{40, 30, 20, 8, 2}

// DefaultEnchantChance is the probability that a rolled item is enchanted.
const DefaultEnchantChance = 0.05

// Generator produces procedural content.
type Generator struct {
	src           random.Source
	weights       Weights
	enchantChance float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithWeights replaces the default rarity weights.
func WithWeights(w Weights) Option {
	return func(g *Generator) { g.weights = w }
}

// WithEnchantChance replaces the default enchant probability.
func WithEnchantChance(p float64) Option {
	return func(g *Generator) { g.enchantChance = p }
}

// New creates a Generator drawing from src.
func New(src random.Source, opts ...Option) *Generator {
	g := &Generator{
		src:           src,
		weights:       DefaultWeights,
		enchantChance: DefaultEnchantChance,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Source exposes the underlying random source to collaborators that roll
// their own chances (combat dodges, drop rolls).
func (g *Generator) Source() random.Source { return g.src }

// Chance reports whether a single draw lands below p.
func (g *Generator) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return g.src.Float64() < p
}

// RollRarity draws a value in [0,100) and returns the first rarity whose
// cumulative weight reaches it.
func (g *Generator) RollRarity(w Weights) game.Rarity {
	draw := g.src.Float64() * 100
	cumulative := 0
	for i, weight := range w {
		cumulative += weight
		if float64(cumulative) >= draw && weight > 0 {
			return game.Rarity(i)
		}
	}
	return game.Common
}

// ID returns a random UUID drawn from the generator's source.
func (g *Generator) ID() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Enemy rolls the procedural enemy for zone. Stats grow linearly and,
// from zone 10 on, exponentially.
func (g *Generator) Enemy(zone int) game.Enemy {
	zone = max(zone, 1)
	hp := float64(200 + 15*zone)
	atk := float64(20 + 8*zone)
	def := math.Floor(2 * float64(zone))
	if zone >= 10 {
		n := float64(zone - 10)
		hp *= math.Pow(1.1, n)
		atk *= math.Pow(1.08, n)
		def *= math.Pow(1.05, n)
	}
	h := int(math.Floor(hp))
	return game.Enemy{
		Name:         EnemyName(zone),
		HP:           h,
		MaxHP:        h,
		Atk:          int(math.Floor(atk)),
		Def:          int(math.Floor(def)),
		Zone:         zone,
		CanDropItems: zone >= 10,
	}
}

// Scaling selects the enemy stat formula used when combat starts.
type Scaling string

const (
	// ScalingLinear: hp 50·zone, atk 10·zone, def 2·zone.
	ScalingLinear Scaling = "linear"
	// ScalingProcedural: the Enemy formula with post-zone-10 growth.
	ScalingProcedural Scaling = "procedural"
)

// Encounter returns the enemy fought at zone under the given scaling.
func (g *Generator) Encounter(zone int, scaling Scaling) game.Enemy {
	if scaling == ScalingProcedural {
		return g.Enemy(zone)
	}
	zone = max(zone, 1)
	return game.Enemy{
		Name:         EnemyName(zone),
		HP:           50 * zone,
		MaxHP:        50 * zone,
		Atk:          10 * zone,
		Def:          2 * zone,
		Zone:         zone,
		CanDropItems: zone >= 10,
	}
}

// EnemyName returns the name for zone. Names advance every five zones and
// stop at the last entry.
func EnemyName(zone int) string {
	i := (max(zone, 1) - 1) / 5
	if i >= len(enemyNames) {
		i = len(enemyNames) - 1
	}
	return enemyNames[i]
}

// Gem mines one gem and reports whether it is shiny.
func (g *Generator) Gem() (shiny bool) {
	return g.src.Float64() < 0.05
}

// MenuSkillType picks a menu skill uniformly.
func (g *Generator) MenuSkillType() game.MenuSkillType {
	return game.AllMenuSkills[g.src.IntN(len(game.AllMenuSkills))]
}

// AdventureOffer draws n distinct adventure skills.
func (g *Generator) AdventureOffer(n int) []game.AdventureSkill {
	pool := append([]game.AdventureSkillType(nil), game.AllAdventureSkills...)
	n = min(n, len(pool))
	offer := make([]game.AdventureSkill, 0, n)
	for range n {
		i := g.src.IntN(len(pool))
		t := pool[i]
		pool = append(pool[:i], pool[i+1:]...)
		offer = append(offer, game.AdventureSkill{
			ID:          g.ID(),
			Name:        t.Title(),
			Description: t.Describe(),
			Type:        t,
		})
	}
	return offer
}

var enemyNames = []string{
	"Goblin Warrior", "Shadow Wolf", "Stone Golem", "Fire Imp",
	"Ice Troll", "Dark Mage", "Lightning Drake", "Void Wraith",
	"Crystal Beast", "Ancient Dragon", "Chaos Lord", "Nightmare King",
	"Abyssal Terror", "Cosmic Horror", "Reality Bender", "Dimension Lord",
	"Eternal Guardian", "Void Emperor", "Chaos Incarnate", "Reality Destroyer",
}
