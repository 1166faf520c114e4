// Package combat resolves fights between the player and the zone's enemy.
//
// The resolver is a two-state machine. Idle has no enemy. Start moves to
// InCombat by spawning an enemy for the current zone. Attack applies one
// answer: a correct answer strikes the enemy, a wrong one lets the enemy
// strike back. Killing the enemy or dying returns to Idle. Nothing else
// changes the state.
package combat

import (
	"math"
	"time"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
)

const (
	coinsPerZone       = 20
	experiencePerZone  = 10
	coinVacuumBonus    = 15
	dropChance         = 0.2
	poisonTurns        = 3
	adventureOfferSize = 3
)

// Options tune combat balance.
type Options struct {
	// CriticalChance is the base percent chance that a hit deals 150% damage.
	CriticalChance float64
	// Scaling picks the enemy stat formula.
	Scaling generator.Scaling
	// Revival restores the player to full health once per life instead of
	// ending the fight.
	Revival bool
}

// Resolver applies combat transitions to a game state.
type Resolver struct {
	gen  *generator.Generator
	opts Options
}

// New creates a resolver drawing enemies and rolls from gen.
func New(gen *generator.Generator, opts Options) *Resolver {
	if opts.Scaling == "" {
		opts.Scaling = generator.ScalingLinear
	}
	return &Resolver{gen: gen, opts: opts}
}

// Outcome reports what a single attack did.
type Outcome struct {
	Damage       int        `json:"damage"`
	DamageTaken  int        `json:"damageTaken"`
	Critical     bool       `json:"critical,omitempty"`
	PoisonDamage int        `json:"poisonDamage,omitempty"`
	Victory      bool       `json:"victory,omitempty"`
	Defeat       bool       `json:"defeat,omitempty"`
	Revived      bool       `json:"revived,omitempty"`
	Coins        int        `json:"coins,omitempty"`
	Experience   int        `json:"experience,omitempty"`
	LevelsGained int        `json:"levelsGained,omitempty"`
	Drop         *game.Item `json:"drop,omitempty"`
}

// Start spawns the enemy for the current zone. When the run has no
// adventure skill yet, it also offers a fresh selection.
func (r *Resolver) Start(s *game.GameState) error {
	if s.InCombat {
		return game.Precondition("already in combat")
	}
	enemy := r.gen.Encounter(s.Zone, r.opts.Scaling)
	s.CurrentEnemy = &enemy
	s.InCombat = true
	s.Logf("A wild %s appears! (zone %d)", enemy.Name, s.Zone)

	adv := &s.AdventureSkills
	if adv.SelectedSkill == nil && len(adv.AvailableSkills) == 0 && !adv.Declined {
		adv.AvailableSkills = r.gen.AdventureOffer(adventureOfferSize)
		adv.ShowSelectionModal = true
	}
	return nil
}

// Attack applies one answer. hit is whether the answer was correct;
// category feeds per-category accuracy and may be empty.
func (r *Resolver) Attack(s *game.GameState, hit bool, category string, now time.Time) (Outcome, error) {
	var out Outcome
	if !s.InCombat || s.CurrentEnemy == nil {
		return out, game.Precondition("not in combat")
	}

	recordAnswer(s, hit, category, now)

	if r.tickPoison(s, &out) {
		r.victory(s, now, &out)
		return out, nil
	}

	if hit {
		r.strike(s, now, &out)
		if s.CurrentEnemy.HP == 0 {
			r.victory(s, now, &out)
		}
		return out, nil
	}

	r.takeHit(s, now, &out)
	if s.PlayerStats.HP == 0 {
		r.defeat(s, &out)
	}
	return out, nil
}

// SkipCard spends the skip card adventure skill to count the current
// question as answered correctly.
func (r *Resolver) SkipCard(s *game.GameState, now time.Time) (Outcome, error) {
	adv := &s.AdventureSkills
	if !adv.Has(game.SkipCard) {
		return Outcome{}, game.Precondition("skip card not selected")
	}
	if adv.SkillEffects.SkipCardUsed {
		return Outcome{}, game.Precondition("skip card already used")
	}
	if !s.InCombat {
		return Outcome{}, game.Precondition("not in combat")
	}
	adv.SkillEffects.SkipCardUsed = true
	return r.Attack(s, true, "", now)
}

func recordAnswer(s *game.GameState, hit bool, category string, now time.Time) {
	s.Statistics.TotalQuestionsAnswered++
	if category != "" {
		acc := s.Statistics.AccuracyByCategory[category]
		acc.Total++
		if hit {
			acc.Correct++
		}
		s.Statistics.AccuracyByCategory[category] = acc
	}
	if !hit {
		s.KnowledgeStreak.Current = 0
		return
	}
	s.Statistics.CorrectAnswers++
	step := 1
	if s.MenuSkillActive(game.KnowledgeBoost, now) {
		step = 2
	}
	s.KnowledgeStreak.Current += step
	s.KnowledgeStreak.Best = max(s.KnowledgeStreak.Best, s.KnowledgeStreak.Current)
	s.Statistics.LongestStreak = max(s.Statistics.LongestStreak, s.KnowledgeStreak.Current)
}

// tickPoison applies one turn of poison and reports whether it killed the enemy.
func (r *Resolver) tickPoison(s *game.GameState, out *Outcome) bool {
	e := s.CurrentEnemy
	if !e.IsPoisoned || e.PoisonTurns <= 0 {
		return false
	}
	tick := max(1, e.MaxHP*5/100)
	e.HP = max(0, e.HP-tick)
	e.PoisonTurns--
	if e.PoisonTurns == 0 {
		e.IsPoisoned = false
	}
	out.PoisonDamage = tick
	s.Logf("Poison deals %d damage to %s.", tick, e.Name)
	return e.HP == 0
}

func (r *Resolver) strike(s *game.GameState, now time.Time, out *Outcome) {
	e := s.CurrentEnemy
	adv := s.AdventureSkills

	damage := s.PlayerStats.Atk
	chance := r.opts.CriticalChance
	if adv.Has(game.CriticalStrike) {
		chance += 25
	}
	if r.gen.Chance(chance / 100) {
		damage = int(math.Floor(float64(damage) * 1.5))
		out.Critical = true
	}
	if adv.SelectedSkill != nil {
		damage = int(math.Floor(float64(damage) * hitMultiplier(adv.SelectedSkill.Type, s)))
	}
	damage = max(0, damage)

	e.HP = max(0, e.HP-damage)
	out.Damage = damage
	s.Statistics.TotalDamageDealt += damage
	if out.Critical {
		s.Logf("Critical hit! You deal %d damage!", damage)
	} else {
		s.Logf("You deal %d damage!", damage)
	}

	if adv.Has(game.Vampiric) {
		heal := damage / 10
		s.PlayerStats.HP = min(s.PlayerStats.MaxHP, s.PlayerStats.HP+heal)
	}
	if adv.Has(game.PoisonBlade) && e.HP > 0 {
		e.IsPoisoned = true
		e.PoisonTurns = poisonTurns
	}
	wear(s, s.Inventory.CurrentWeapon, now)
}

func (r *Resolver) takeHit(s *game.GameState, now time.Time, out *Outcome) {
	e := s.CurrentEnemy
	damage := max(1, e.Atk-s.PlayerStats.Def)
	if sel := s.AdventureSkills.SelectedSkill; sel != nil {
		damage = r.incomingDamage(sel.Type, s, damage)
	}

	s.PlayerStats.HP = max(0, s.PlayerStats.HP-damage)
	out.DamageTaken = damage
	s.Statistics.TotalDamageTaken += damage
	if damage == 0 {
		s.Logf("%s's attack is blocked!", e.Name)
		return
	}
	s.Logf("%s deals %d damage!", e.Name, damage)
	wear(s, s.Inventory.CurrentArmor, now)
}

// hitMultiplier scales outgoing damage for the selected adventure skill.
func hitMultiplier(t game.AdventureSkillType, s *game.GameState) float64 {
	switch t {
	case game.Risker:
		return 1.5
	case game.LightningChain:
		return 1.25
	case game.Ramp:
		return 1 + 0.1*float64(s.KnowledgeStreak.Current)
	case game.Berserker:
		if s.PlayerStats.HP*2 < s.PlayerStats.MaxHP {
			return 1.5
		}
		return 1
	case game.BattleFrenzy:
		return 1.2
	case game.SkipCard, game.MetalShield, game.TruthLies, game.Dodge, game.Vampiric,
		game.Phoenix, game.TimeSlow, game.CriticalStrike, game.ShieldWall,
		game.PoisonBlade, game.ArcaneShield:
		return 1
	default:
		panic("unhandled adventure skill " + string(t))
	}
}

// incomingDamage applies the selected adventure skill to damage taken.
func (r *Resolver) incomingDamage(t game.AdventureSkillType, s *game.GameState, damage int) int {
	switch t {
	case game.MetalShield:
		if !s.AdventureSkills.SkillEffects.MetalShieldUsed {
			s.AdventureSkills.SkillEffects.MetalShieldUsed = true
			return 0
		}
		return damage
	case game.Dodge:
		if r.gen.Chance(0.25) {
			return 0
		}
		return damage
	case game.ShieldWall:
		return damage / 2
	case game.ArcaneShield:
		return int(math.Floor(float64(damage) * 0.75))
	case game.Risker:
		return int(math.Floor(float64(damage) * 1.5))
	case game.LightningChain, game.SkipCard, game.TruthLies, game.Ramp, game.Berserker,
		game.Vampiric, game.Phoenix, game.TimeSlow, game.CriticalStrike,
		game.PoisonBlade, game.BattleFrenzy:
		return damage
	default:
		panic("unhandled adventure skill " + string(t))
	}
}

// wear removes one point of durability from equipped item. A broken item
// stops contributing its stat.
func wear(s *game.GameState, item *game.Item, now time.Time) {
	if item == nil || item.Durability <= 0 || s.MenuSkillActive(game.DurabilityMaster, now) {
		return
	}
	item.Durability--
	if item.Durability == 0 {
		s.Logf("Your %s broke!", item.Name)
		game.RecomputeStats(s)
	}
}

func (r *Resolver) victory(s *game.GameState, now time.Time, out *Outcome) {
	e := s.CurrentEnemy
	zone := s.Zone

	coins := zone * coinsPerZone
	if s.MenuSkillActive(game.GoldenTouch, now) {
		coins *= 2
	}
	if s.MenuSkillActive(game.CoinVacuum, now) {
		coins += coinVacuumBonus
	}
	xp := zone * experiencePerZone
	if s.MenuSkillActive(game.XPSurge, now) {
		xp *= 3
	}

	s.EarnCoins(coins)
	out.LevelsGained = game.GrantExperience(s, xp)
	out.Coins = coins
	out.Experience = xp
	out.Victory = true
	s.Statistics.TotalVictories++
	s.Logf("%s defeated! +%d coins, +%d XP", e.Name, coins, xp)
	if out.LevelsGained > 0 {
		s.Logf("Level up! You are now level %d.", s.Progression.Level)
	}

	if e.CanDropItems && r.gen.Chance(dropChance) {
		item := r.gen.RandomItem()
		s.AddItem(item)
		out.Drop = &item
		s.Logf("%s dropped %s!", e.Name, item.Name)
	}

	s.InCombat = false
	s.CurrentEnemy = nil
	s.Zone++
	s.Statistics.ZonesReached = max(s.Statistics.ZonesReached, s.Zone)
}

func (r *Resolver) defeat(s *game.GameState, out *Outcome) {
	adv := &s.AdventureSkills
	if adv.Has(game.Phoenix) && !adv.SkillEffects.PhoenixUsed {
		adv.SkillEffects.PhoenixUsed = true
		s.PlayerStats.HP = max(1, s.PlayerStats.MaxHP/2)
		s.Statistics.Revivals++
		out.Revived = true
		s.Logf("You rise from the ashes!")
		return
	}
	if r.opts.Revival && !s.HasUsedRevival {
		s.HasUsedRevival = true
		s.PlayerStats.HP = s.PlayerStats.MaxHP
		s.Statistics.Revivals++
		out.Revived = true
		s.Logf("You have been revived!")
		return
	}

	out.Defeat = true
	s.Logf("You were defeated by %s.", s.CurrentEnemy.Name)
	s.InCombat = false
	s.CurrentEnemy = nil
	s.PlayerStats.HP = s.PlayerStats.MaxHP
	s.Statistics.TotalDeaths++
	s.HasUsedRevival = false
	s.ResetAdventure()

	if s.GameMode.Current == game.ModeSurvival {
		s.GameMode.SurvivalLives--
		if s.GameMode.SurvivalLives <= 0 {
			s.Logf("Survival run over.")
			s.GameMode.Current = game.ModeNormal
			s.GameMode.SurvivalLives = s.GameMode.MaxSurvivalLives
		}
	}
}
