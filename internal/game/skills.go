package game

import "fmt"

// MenuSkillType identifies one of the rollable timed buffs.
type MenuSkillType string

const (
	CoinVacuum       MenuSkillType = "coin_vacuum"
	Treasurer        MenuSkillType = "treasurer"
	XPSurge          MenuSkillType = "xp_surge"
	LuckGem          MenuSkillType = "luck_gem"
	Enchanter        MenuSkillType = "enchanter"
	TimeWarp         MenuSkillType = "time_warp"
	GoldenTouch      MenuSkillType = "golden_touch"
	KnowledgeBoost   MenuSkillType = "knowledge_boost"
	DurabilityMaster MenuSkillType = "durability_master"
	RelicFinder      MenuSkillType = "relic_finder"
)

// AllMenuSkills lists every menu skill in roll order.
var AllMenuSkills = []MenuSkillType{
	CoinVacuum, Treasurer, XPSurge, LuckGem, Enchanter,
	TimeWarp, GoldenTouch, KnowledgeBoost, DurabilityMaster, RelicFinder,
}

// Describe returns the player-facing effect text.
func (t MenuSkillType) Describe() string {
	switch t {
	case CoinVacuum:
		return "Victories pay 15 extra coins"
	case Treasurer:
		return "Chests roll epic or better"
	case XPSurge:
		return "Triples experience from victories"
	case LuckGem:
		return "Every mined gem is shiny"
	case Enchanter:
		return "Epic and better chest drops are enchanted 80% of the time"
	case TimeWarp:
		return "50% more time to answer questions"
	case GoldenTouch:
		return "Doubles coin rewards and sell prices"
	case KnowledgeBoost:
		return "Knowledge streaks build twice as fast"
	case DurabilityMaster:
		return "Equipment loses no durability"
	case RelicFinder:
		return "Market refreshes stock two extra relics"
	default:
		panic(fmt.Sprintf("unhandled menu skill %q", string(t)))
	}
}

// DurationHours is how long the skill stays active after a roll.
func (t MenuSkillType) DurationHours() int {
	switch t {
	case LuckGem:
		return 1
	case DurabilityMaster:
		return 6
	case GoldenTouch:
		return 8
	case TimeWarp:
		return 12
	case CoinVacuum, Treasurer, XPSurge, Enchanter, KnowledgeBoost, RelicFinder:
		return 24
	default:
		panic(fmt.Sprintf("unhandled menu skill %q", string(t)))
	}
}

// Valid reports whether t is a known menu skill.
func (t MenuSkillType) Valid() bool {
	for _, v := range AllMenuSkills {
		if v == t {
			return true
		}
	}
	return false
}

// AdventureSkillType identifies a per-run combat modifier.
type AdventureSkillType string

const (
	Risker         AdventureSkillType = "risker"
	LightningChain AdventureSkillType = "lightning_chain"
	SkipCard       AdventureSkillType = "skip_card"
	MetalShield    AdventureSkillType = "metal_shield"
	TruthLies      AdventureSkillType = "truth_lies"
	Ramp           AdventureSkillType = "ramp"
	Dodge          AdventureSkillType = "dodge"
	Berserker      AdventureSkillType = "berserker"
	Vampiric       AdventureSkillType = "vampiric"
	Phoenix        AdventureSkillType = "phoenix"
	TimeSlow       AdventureSkillType = "time_slow"
	CriticalStrike AdventureSkillType = "critical_strike"
	ShieldWall     AdventureSkillType = "shield_wall"
	PoisonBlade    AdventureSkillType = "poison_blade"
	ArcaneShield   AdventureSkillType = "arcane_shield"
	BattleFrenzy   AdventureSkillType = "battle_frenzy"
)

// AllAdventureSkills lists every adventure skill.
var AllAdventureSkills = []AdventureSkillType{
	Risker, LightningChain, SkipCard, MetalShield, TruthLies, Ramp, Dodge, Berserker,
	Vampiric, Phoenix, TimeSlow, CriticalStrike, ShieldWall, PoisonBlade, ArcaneShield, BattleFrenzy,
}

// Title is the display name.
func (t AdventureSkillType) Title() string {
	switch t {
	case Risker:
		return "Risker"
	case LightningChain:
		return "Lightning Chain"
	case SkipCard:
		return "Skip Card"
	case MetalShield:
		return "Metal Shield"
	case TruthLies:
		return "Truth & Lies"
	case Ramp:
		return "Ramp"
	case Dodge:
		return "Dodge"
	case Berserker:
		return "Berserker"
	case Vampiric:
		return "Vampiric"
	case Phoenix:
		return "Phoenix"
	case TimeSlow:
		return "Time Slow"
	case CriticalStrike:
		return "Critical Strike"
	case ShieldWall:
		return "Shield Wall"
	case PoisonBlade:
		return "Poison Blade"
	case ArcaneShield:
		return "Arcane Shield"
	case BattleFrenzy:
		return "Battle Frenzy"
	default:
		panic(fmt.Sprintf("unhandled adventure skill %q", string(t)))
	}
}

// Describe returns the player-facing effect text.
func (t AdventureSkillType) Describe() string {
	switch t {
	case Risker:
		return "Deal and take 50% more damage"
	case LightningChain:
		return "Hits deal 25% bonus damage"
	case SkipCard:
		return "Skip one question and count it as correct"
	case MetalShield:
		return "Block the first hit you take"
	case TruthLies:
		return "Remove a wrong answer from multiple choice questions"
	case Ramp:
		return "Each streak step adds 10% damage"
	case Dodge:
		return "25% chance to avoid incoming damage"
	case Berserker:
		return "Deal 50% more damage below half health"
	case Vampiric:
		return "Heal 10% of damage dealt"
	case Phoenix:
		return "Revive once at half health"
	case TimeSlow:
		return "More time to answer each question"
	case CriticalStrike:
		return "25% chance for critical hits"
	case ShieldWall:
		return "Halve incoming damage"
	case PoisonBlade:
		return "Hits poison the enemy for 3 turns"
	case ArcaneShield:
		return "Reduce incoming damage by 25%"
	case BattleFrenzy:
		return "Hits deal 20% bonus damage"
	default:
		panic(fmt.Sprintf("unhandled adventure skill %q", string(t)))
	}
}

// Valid reports whether t is a known adventure skill.
func (t AdventureSkillType) Valid() bool {
	for _, v := range AllAdventureSkills {
		if v == t {
			return true
		}
	}
	return false
}
