package game

import (
	"maps"
	"slices"
	"time"
)

// Starting values for a fresh profile.
const (
	StartingCoins          = 100
	StartingHP             = 100
	StartingAtk            = 10
	StartingDef            = 5
	DefaultMaxOfflineHours = 24
	DefaultRelicCap        = 5
	SurvivalLives          = 3
	CombatLogLimit         = 50
	RewardHistoryLimit     = 30

	gardenSeedCost    = 1000
	gardenWaterCost   = 100
	gardenMaxGrowthCm = 100
)

// NewState returns the default state of a first launch at now.
func NewState(now time.Time) *GameState {
	return &GameState{
		Coins: StartingCoins,
		Zone:  1,
		PlayerStats: PlayerStats{
			HP:      StartingHP,
			MaxHP:   StartingHP,
			Atk:     StartingAtk,
			Def:     StartingDef,
			BaseAtk: StartingAtk,
			BaseDef: StartingDef,
			BaseHP:  StartingHP,
		},
		Inventory: Inventory{
			Weapons:        []Item{},
			Armor:          []Item{},
			Relics:         []Relic{},
			EquippedRelics: []Relic{},
		},
		CombatLog: []string{},
		Statistics: Statistics{
			ZonesReached:       1,
			AccuracyByCategory: map[string]CategoryAccuracy{},
			SessionStartTime:   now,
		},
		Progression: Progression{
			Level:            1,
			ExperienceToNext: 100,
			UnlockedSkills:   []string{},
		},
		CollectionBook: CollectionBook{
			Weapons:     map[string]bool{},
			Armor:       map[string]bool{},
			RarityStats: map[string]int{},
		},
		GameMode: GameMode{
			Current:          ModeNormal,
			SurvivalLives:    SurvivalLives,
			MaxSurvivalLives: SurvivalLives,
		},
		YojefMarket: Market{
			Items:       []Relic{},
			LastRefresh: now,
			NextRefresh: now,
		},
		DailyRewards: DailyRewards{
			RewardHistory: []DailyRewardEntry{},
		},
		OfflineProgress: OfflineProgress{
			LastSaveTime:    now,
			MaxOfflineHours: DefaultMaxOfflineHours,
		},
		Garden: Garden{
			SeedCost:    gardenSeedCost,
			WaterCost:   gardenWaterCost,
			MaxGrowthCm: gardenMaxGrowthCm,
		},
		Settings: Settings{
			DarkMode:      true,
			Language:      "en",
			Notifications: true,
		},
		Skills: Skills{
			SessionStartTime: now,
		},
		AdventureSkills: AdventureSkills{
			AvailableSkills: []AdventureSkill{},
		},
	}
}

// Clone returns a deep copy. Mutating the copy never affects s.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	c := *s

	c.Inventory = Inventory{
		Weapons:        cloneSlice(s.Inventory.Weapons),
		Armor:          cloneSlice(s.Inventory.Armor),
		Relics:         cloneSlice(s.Inventory.Relics),
		CurrentWeapon:  clonePtr(s.Inventory.CurrentWeapon),
		CurrentArmor:   clonePtr(s.Inventory.CurrentArmor),
		EquippedRelics: cloneSlice(s.Inventory.EquippedRelics),
	}
	c.CurrentEnemy = clonePtr(s.CurrentEnemy)
	c.CombatLog = cloneSlice(s.CombatLog)

	c.Statistics.AccuracyByCategory = cloneMap(s.Statistics.AccuracyByCategory)
	c.Progression.UnlockedSkills = cloneSlice(s.Progression.UnlockedSkills)
	c.CollectionBook.Weapons = cloneMap(s.CollectionBook.Weapons)
	c.CollectionBook.Armor = cloneMap(s.CollectionBook.Armor)
	c.CollectionBook.RarityStats = cloneMap(s.CollectionBook.RarityStats)

	c.YojefMarket.Items = cloneSlice(s.YojefMarket.Items)

	c.DailyRewards.LastClaimDate = clonePtr(s.DailyRewards.LastClaimDate)
	c.DailyRewards.RewardHistory = cloneSlice(s.DailyRewards.RewardHistory)
	for i := range c.DailyRewards.RewardHistory {
		c.DailyRewards.RewardHistory[i].Item = clonePtr(c.DailyRewards.RewardHistory[i].Item)
	}

	c.Garden.PlantedAt = clonePtr(s.Garden.PlantedAt)
	c.Garden.LastWatered = clonePtr(s.Garden.LastWatered)

	c.Skills.ActiveMenuSkill = clonePtr(s.Skills.ActiveMenuSkill)
	c.Skills.LastRollTime = clonePtr(s.Skills.LastRollTime)

	c.AdventureSkills.SelectedSkill = clonePtr(s.AdventureSkills.SelectedSkill)
	c.AdventureSkills.AvailableSkills = cloneSlice(s.AdventureSkills.AvailableSkills)

	return &c
}

// Normalize fills nil collections left behind by older or hand-edited snapshots
// so that rule code can append and index without nil checks.
func (s *GameState) Normalize() {
	if s.Inventory.Weapons == nil {
		s.Inventory.Weapons = []Item{}
	}
	if s.Inventory.Armor == nil {
		s.Inventory.Armor = []Item{}
	}
	if s.Inventory.Relics == nil {
		s.Inventory.Relics = []Relic{}
	}
	if s.Inventory.EquippedRelics == nil {
		s.Inventory.EquippedRelics = []Relic{}
	}
	if s.CombatLog == nil {
		s.CombatLog = []string{}
	}
	if s.Statistics.AccuracyByCategory == nil {
		s.Statistics.AccuracyByCategory = map[string]CategoryAccuracy{}
	}
	if s.Progression.UnlockedSkills == nil {
		s.Progression.UnlockedSkills = []string{}
	}
	if s.CollectionBook.Weapons == nil {
		s.CollectionBook.Weapons = map[string]bool{}
	}
	if s.CollectionBook.Armor == nil {
		s.CollectionBook.Armor = map[string]bool{}
	}
	if s.CollectionBook.RarityStats == nil {
		s.CollectionBook.RarityStats = map[string]int{}
	}
	if s.YojefMarket.Items == nil {
		s.YojefMarket.Items = []Relic{}
	}
	if s.DailyRewards.RewardHistory == nil {
		s.DailyRewards.RewardHistory = []DailyRewardEntry{}
	}
	if s.AdventureSkills.AvailableSkills == nil {
		s.AdventureSkills.AvailableSkills = []AdventureSkill{}
	}
	if s.Zone < 1 {
		s.Zone = 1
	}
	if s.Progression.Level < 1 {
		s.Progression.Level = 1
	}
	if s.Progression.ExperienceToNext < 1 {
		s.Progression.ExperienceToNext = s.Progression.Level * 100
	}
	if !s.InCombat {
		s.CurrentEnemy = nil
	} else if s.CurrentEnemy == nil {
		s.InCombat = false
	}
	if !s.GameMode.Current.Valid() {
		s.GameMode.Current = ModeNormal
	}
	s.dropUnknownSkills()
}

// dropUnknownSkills removes skills whose type this build does not know,
// so rule code can switch over the types exhaustively.
func (s *GameState) dropUnknownSkills() {
	if m := s.Skills.ActiveMenuSkill; m != nil && !m.Type.Valid() {
		s.Skills.ActiveMenuSkill = nil
	}
	adv := &s.AdventureSkills
	if adv.SelectedSkill != nil && !adv.SelectedSkill.Type.Valid() {
		adv.SelectedSkill = nil
	}
	adv.AvailableSkills = slices.DeleteFunc(adv.AvailableSkills, func(a AdventureSkill) bool {
		return !a.Type.Valid()
	})
	if adv.ShowSelectionModal && len(adv.AvailableSkills) == 0 {
		adv.ShowSelectionModal = false
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return slices.Clone(in)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}
