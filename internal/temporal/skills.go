package temporal

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
)

var titleCaser = cases.Title(language.English)

// SkillName turns a skill identifier such as "coin_vacuum" into "Coin Vacuum".
func SkillName(t game.MenuSkillType) string {
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

// RollMenuSkill pays cost coins for a random timed buff. It is refused while
// another buff is still running.
func RollMenuSkill(s *game.GameState, gen *generator.Generator, now time.Time, cost int) (game.MenuSkill, error) {
	if active := s.ActiveMenuSkill(now); active != nil {
		return game.MenuSkill{}, game.Precondition("%s is active until %s", active.Name, active.ExpiresAt.Format(time.RFC3339)).
			WithDetail("expiresAt", active.ExpiresAt)
	}
	if err := s.SpendCoins(cost); err != nil {
		return game.MenuSkill{}, err
	}

	t := gen.MenuSkillType()
	hours := t.DurationHours()
	skill := game.MenuSkill{
		ID:            gen.ID(),
		Name:          SkillName(t),
		Description:   t.Describe(),
		Type:          t,
		DurationHours: hours,
		ActivatedAt:   now,
		ExpiresAt:     now.Add(time.Duration(hours) * time.Hour),
	}
	s.Skills.ActiveMenuSkill = &skill
	rolled := now
	s.Skills.LastRollTime = &rolled
	s.Logf("Rolled %s for %dh", skill.Name, hours)
	return skill, nil
}

// ActiveMenuSkill returns a copy of the buff in effect at now, or nil.
func ActiveMenuSkill(s *game.GameState, now time.Time) *game.MenuSkill {
	m := s.ActiveMenuSkill(now)
	if m == nil {
		return nil
	}
	c := *m
	return &c
}
