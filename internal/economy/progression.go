package economy

import (
	"slices"

	"golang.org/x/text/language"

	"github.com/roach88/triviarpg/internal/game"
)

// ResearchCost is the coin price of the next research level.
func ResearchCost(level int) int {
	return (level + 1) * 100
}

// UpgradeResearch buys one research level, raising atk, def and max hp.
func UpgradeResearch(s *game.GameState) error {
	cost := ResearchCost(s.Research.Level)
	if err := s.SpendCoins(cost); err != nil {
		return err
	}
	s.Research.Level++
	s.Research.TotalSpent += cost
	s.Statistics.TotalResearchSpent += cost
	game.RecomputeStats(s)
	return nil
}

// UpgradeSkill spends a skill point to unlock id.
func UpgradeSkill(s *game.GameState, id string) error {
	if id == "" {
		return game.NewError(game.CodeInvalidReference, "skill id is empty")
	}
	if s.Progression.SkillPoints <= 0 {
		return game.Precondition("no skill points")
	}
	if slices.Contains(s.Progression.UnlockedSkills, id) {
		return game.Precondition("skill %q already unlocked", id)
	}
	s.Progression.SkillPoints--
	s.Progression.UnlockedSkills = append(s.Progression.UnlockedSkills, id)
	return nil
}

// PrestigePoints is the prestige reward for resetting at level.
func PrestigePoints(level int) int {
	return level / 10
}

// Prestige resets a player at or above threshold back to zone 1 in exchange
// for prestige points. Relics, cheats, settings and lifetime records survive.
func Prestige(s *game.GameState, threshold, startingCoins int) error {
	level := s.Progression.Level
	if level < threshold {
		return game.Precondition("prestige requires level %d, at %d", threshold, level).
			WithDetail("threshold", threshold)
	}

	s.Progression = game.Progression{
		Level:            1,
		ExperienceToNext: game.ExperienceThreshold(1),
		UnlockedSkills:   []string{},
		PrestigeLevel:    s.Progression.PrestigeLevel + 1,
		PrestigePoints:   s.Progression.PrestigePoints + PrestigePoints(level),
	}
	s.Coins = startingCoins
	s.Gems = 0
	s.Zone = 1
	s.PlayerStats = game.PlayerStats{
		HP:      game.StartingHP,
		BaseAtk: game.StartingAtk,
		BaseDef: game.StartingDef,
		BaseHP:  game.StartingHP,
	}
	s.Inventory.Weapons = []game.Item{}
	s.Inventory.Armor = []game.Item{}
	s.Inventory.CurrentWeapon = nil
	s.Inventory.CurrentArmor = nil
	s.Research = game.Research{}
	s.InCombat = false
	s.CurrentEnemy = nil
	s.HasUsedRevival = false
	s.KnowledgeStreak.Current = 0
	s.ResetAdventure()

	game.RecomputeStats(s)
	s.PlayerStats.HP = s.PlayerStats.MaxHP
	s.Logf("Prestige %d reached", s.Progression.PrestigeLevel)
	return nil
}

// AddCoins adjusts coins by n, never below zero.
func AddCoins(s *game.GameState, n int) {
	s.Coins = max(0, s.Coins+n)
}

// AddGems adjusts gems by n, never below zero.
func AddGems(s *game.GameState, n int) {
	s.Gems = max(0, s.Gems+n)
}

// TeleportToZone jumps to zone, abandoning any fight in progress.
func TeleportToZone(s *game.GameState, zone int) {
	s.Zone = max(1, zone)
	s.InCombat = false
	s.CurrentEnemy = nil
	if s.Zone > s.Statistics.ZonesReached {
		s.Statistics.ZonesReached = s.Zone
	}
}

// SetExperience overwrites experience and applies any level-ups it unlocks.
func SetExperience(s *game.GameState, xp int) int {
	s.Progression.Experience = max(0, xp)
	return game.GrantExperience(s, 0)
}

// SetMode switches the game mode. Entering survival refills its lives.
func SetMode(s *game.GameState, mode game.Mode) error {
	if !mode.Valid() {
		return game.NewError(game.CodeInvalidReference, "unknown mode %q", mode)
	}
	s.GameMode.Current = mode
	if mode == game.ModeSurvival {
		if s.GameMode.MaxSurvivalLives <= 0 {
			s.GameMode.MaxSurvivalLives = game.SurvivalLives
		}
		s.GameMode.SurvivalLives = s.GameMode.MaxSurvivalLives
	}
	return nil
}

// ToggleCheat flips the named cheat and returns its new value.
func ToggleCheat(s *game.GameState, name string) (bool, error) {
	var flag *bool
	switch name {
	case "infiniteCoins":
		flag = &s.Cheats.InfiniteCoins
	case "infiniteGems":
		flag = &s.Cheats.InfiniteGems
	case "obtainAnyItem":
		flag = &s.Cheats.ObtainAnyItem
	default:
		return false, game.NewError(game.CodeInvalidReference, "unknown cheat %q", name)
	}
	*flag = !*flag
	return *flag, nil
}

// SupportedLanguages are the interface languages a profile may select.
var SupportedLanguages = []language.Tag{
	language.English, language.Spanish, language.French, language.German,
	language.Portuguese, language.Italian, language.Russian, language.Japanese,
	language.Korean, language.Chinese,
}

// SettingsPatch carries the settings to change. Nil fields are left alone.
type SettingsPatch struct {
	ColorblindMode *bool   `json:"colorblindMode,omitempty"`
	DarkMode       *bool   `json:"darkMode,omitempty"`
	Language       *string `json:"language,omitempty"`
	Notifications  *bool   `json:"notifications,omitempty"`
}

// UpdateSettings applies patch. The language must parse as a BCP 47 tag
// whose base language is supported; it is stored as that base.
func UpdateSettings(s *game.GameState, patch SettingsPatch) error {
	next := s.Settings
	if patch.Language != nil {
		base, err := supportedBase(*patch.Language)
		if err != nil {
			return err
		}
		next.Language = base
	}
	if patch.ColorblindMode != nil {
		next.ColorblindMode = *patch.ColorblindMode
	}
	if patch.DarkMode != nil {
		next.DarkMode = *patch.DarkMode
	}
	if patch.Notifications != nil {
		next.Notifications = *patch.Notifications
	}
	s.Settings = next
	return nil
}

func supportedBase(tag string) (string, error) {
	t, err := language.Parse(tag)
	if err != nil {
		return "", game.NewError(game.CodeInvalidReference, "invalid language %q", tag).WithDetail("cause", err.Error())
	}
	base, _ := t.Base()
	for _, sup := range SupportedLanguages {
		if b, _ := sup.Base(); b == base {
			return base.String(), nil
		}
	}
	return "", game.NewError(game.CodeInvalidReference, "unsupported language %q", tag)
}
