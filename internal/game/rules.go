package game

import (
	"fmt"
	"slices"
	"time"
)

const researchBonusPerLevel = 10

// ResearchBonus is the flat atk/def/hp bonus granted by a research level.
func ResearchBonus(level int) int {
	return level * researchBonusPerLevel
}

// ExperienceThreshold is the experience needed to leave level.
func ExperienceThreshold(level int) int {
	return level * 100
}

// RecomputeStats derives atk, def and maxHp from base values, equipment,
// relics, research and garden growth, then clamps hp to the new maximum.
func RecomputeStats(s *GameState) {
	research := ResearchBonus(s.Research.Level)

	atk := s.PlayerStats.BaseAtk + research
	def := s.PlayerStats.BaseDef + research
	if w := s.Inventory.CurrentWeapon; w != nil && !w.Broken() {
		atk += w.Stat
	}
	if a := s.Inventory.CurrentArmor; a != nil && !a.Broken() {
		def += a.Stat
	}
	for _, r := range s.Inventory.EquippedRelics {
		switch r.Kind {
		case KindWeapon:
			atk += r.Stat
		case KindArmor:
			def += r.Stat
		}
	}

	s.PlayerStats.Atk = atk
	s.PlayerStats.Def = def
	s.PlayerStats.MaxHP = s.PlayerStats.BaseHP + research + s.Garden.TotalGrowthBonus
	if s.PlayerStats.HP > s.PlayerStats.MaxHP {
		s.PlayerStats.HP = s.PlayerStats.MaxHP
	}
	if s.PlayerStats.HP < 0 {
		s.PlayerStats.HP = 0
	}
}

// GrantExperience adds xp and processes every pending level-up. Each level
// grants one skill point. It returns the number of levels gained.
func GrantExperience(s *GameState, xp int) int {
	if xp > 0 {
		s.Progression.Experience += xp
	}
	gained := 0
	for s.Progression.ExperienceToNext > 0 && s.Progression.Experience >= s.Progression.ExperienceToNext {
		s.Progression.Experience -= s.Progression.ExperienceToNext
		s.Progression.Level++
		s.Progression.ExperienceToNext = ExperienceThreshold(s.Progression.Level)
		s.Progression.SkillPoints++
		gained++
	}
	return gained
}

// SpendCoins deducts cost coins, or nothing while the infinite coins cheat is on.
func (s *GameState) SpendCoins(cost int) error {
	if cost <= 0 || s.Cheats.InfiniteCoins {
		return nil
	}
	if s.Coins < cost {
		return InsufficientFunds("coins", cost, s.Coins)
	}
	s.Coins -= cost
	return nil
}

// SpendGems deducts cost gems, or nothing while the infinite gems cheat is on.
func (s *GameState) SpendGems(cost int) error {
	if cost <= 0 || s.Cheats.InfiniteGems {
		return nil
	}
	if s.Gems < cost {
		return InsufficientFunds("gems", cost, s.Gems)
	}
	s.Gems -= cost
	return nil
}

// SpendShinyGems deducts cost shiny gems. The infinite gems cheat covers them too.
func (s *GameState) SpendShinyGems(cost int) error {
	if cost <= 0 || s.Cheats.InfiniteGems {
		return nil
	}
	if s.ShinyGems < cost {
		return InsufficientFunds("shinyGems", cost, s.ShinyGems)
	}
	s.ShinyGems -= cost
	return nil
}

// EarnCoins credits coins and the lifetime counter.
func (s *GameState) EarnCoins(n int) {
	if n <= 0 {
		return
	}
	s.Coins += n
	s.Statistics.CoinsEarned += n
}

// EarnGems credits gems and the lifetime counter.
func (s *GameState) EarnGems(n int) {
	if n <= 0 {
		return
	}
	s.Gems += n
	s.Statistics.GemsEarned += n
}

// Logf appends a line to the bounded combat log.
func (s *GameState) Logf(format string, args ...any) {
	s.CombatLog = append(s.CombatLog, fmt.Sprintf(format, args...))
	if over := len(s.CombatLog) - CombatLogLimit; over > 0 {
		s.CombatLog = slices.Delete(s.CombatLog, 0, over)
	}
}

// AddItem places a newly obtained item in the matching unequipped list and
// records it in the collection book.
func (s *GameState) AddItem(item Item) {
	switch item.Kind {
	case KindWeapon:
		s.Inventory.Weapons = append(s.Inventory.Weapons, item)
		if !s.CollectionBook.Weapons[item.Name] {
			s.CollectionBook.Weapons[item.Name] = true
			s.CollectionBook.TotalWeaponsFound++
		}
	case KindArmor:
		s.Inventory.Armor = append(s.Inventory.Armor, item)
		if !s.CollectionBook.Armor[item.Name] {
			s.CollectionBook.Armor[item.Name] = true
			s.CollectionBook.TotalArmorFound++
		}
	default:
		return
	}
	s.CollectionBook.RarityStats[item.Rarity.String()]++
	s.Statistics.ItemsCollected++
}

// Items returns a pointer to the unequipped list for kind.
func (s *GameState) Items(kind ItemKind) *[]Item {
	if kind == KindArmor {
		return &s.Inventory.Armor
	}
	return &s.Inventory.Weapons
}

// Slot returns a pointer to the equipped slot for kind.
func (s *GameState) Slot(kind ItemKind) **Item {
	if kind == KindArmor {
		return &s.Inventory.CurrentArmor
	}
	return &s.Inventory.CurrentWeapon
}

// ActiveMenuSkill returns the menu skill in effect at now, or nil. Expired
// skills remain in state but are never returned.
func (s *GameState) ActiveMenuSkill(now time.Time) *MenuSkill {
	if m := s.Skills.ActiveMenuSkill; m.ActiveAt(now) {
		return m
	}
	return nil
}

// MenuSkillActive reports whether a menu skill of type t is in effect at now.
func (s *GameState) MenuSkillActive(t MenuSkillType, now time.Time) bool {
	m := s.ActiveMenuSkill(now)
	return m != nil && m.Type == t
}

// ResetAdventure clears the selected adventure skill and its consumed effects.
func (s *GameState) ResetAdventure() {
	s.AdventureSkills = AdventureSkills{AvailableSkills: []AdventureSkill{}}
}

// IndexItem returns the position of id in items, or -1.
func IndexItem(items []Item, id string) int {
	return slices.IndexFunc(items, func(i Item) bool { return i.ID == id })
}

// IndexRelic returns the position of id in relics, or -1.
func IndexRelic(relics []Relic, id string) int {
	return slices.IndexFunc(relics, func(r Relic) bool { return r.ID == id })
}
