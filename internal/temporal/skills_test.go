package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
	"github.com/roach88/triviarpg/internal/testutil"
)

func TestSkillName(t *testing.T) {
	assert.Equal(t, "Coin Vacuum", SkillName(game.CoinVacuum))
	assert.Equal(t, "Durability Master", SkillName(game.DurabilityMaster))
}

func TestRollMenuSkill_InsufficientCoins(t *testing.T) {
	s := game.NewState(now)
	s.Coins = 50
	gen := generator.New(testutil.NewScriptedSource())

	_, err := RollMenuSkill(s, gen, now, 100)
	require.ErrorIs(t, err, game.ErrInsufficientFunds)
	assert.Equal(t, 50, s.Coins)
	assert.Nil(t, s.Skills.ActiveMenuSkill)
}

func TestRollMenuSkill_ExpiryBoundary(t *testing.T) {
	s := game.NewState(now)
	s.Coins = 300
	gen := generator.New(testutil.NewScriptedSource().WithInts(2, 3))

	skill, err := RollMenuSkill(s, gen, now, 100)
	require.NoError(t, err)
	assert.Equal(t, game.XPSurge, skill.Type)
	assert.Equal(t, "Xp Surge", skill.Name)
	assert.Equal(t, 24, skill.DurationHours)
	assert.Equal(t, now.Add(24*time.Hour), skill.ExpiresAt)
	assert.Equal(t, 200, s.Coins)
	require.NotNil(t, s.Skills.LastRollTime)

	_, err = RollMenuSkill(s, gen, now.Add(24*time.Hour), 100)
	assert.ErrorIs(t, err, game.ErrPreconditionNotMet, "still active at the exact expiry instant")

	later := now.Add(24*time.Hour + time.Millisecond)
	assert.Nil(t, ActiveMenuSkill(s, later))
	skill, err = RollMenuSkill(s, gen, later, 100)
	require.NoError(t, err)
	assert.Equal(t, game.LuckGem, skill.Type)
	assert.Equal(t, later.Add(time.Hour), skill.ExpiresAt)
	assert.Equal(t, 100, s.Coins)
}

func TestRollMenuSkill_InfiniteCoins(t *testing.T) {
	s := game.NewState(now)
	s.Coins = 0
	s.Cheats.InfiniteCoins = true
	gen := generator.New(testutil.NewScriptedSource())

	_, err := RollMenuSkill(s, gen, now, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Coins)
}

func TestActiveMenuSkill_ReturnsCopy(t *testing.T) {
	s := game.NewState(now)
	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.Enchanter, ExpiresAt: now.Add(time.Hour)}

	got := ActiveMenuSkill(s, now)
	require.NotNil(t, got)
	got.Type = game.LuckGem
	assert.Equal(t, game.Enchanter, s.Skills.ActiveMenuSkill.Type)
}
