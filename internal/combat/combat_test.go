package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
	"github.com/roach88/triviarpg/internal/generator"
	"github.com/roach88/triviarpg/internal/random"
	"github.com/roach88/triviarpg/internal/testutil"
)

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func newResolver(src random.Source, opts Options) *Resolver {
	return New(generator.New(src), opts)
}

// fight puts s in combat against enemy without touching randomness.
func fight(s *game.GameState, enemy game.Enemy) {
	s.CurrentEnemy = &enemy
	s.InCombat = true
}

func withSkill(s *game.GameState, t game.AdventureSkillType) {
	s.AdventureSkills.SelectedSkill = &game.AdventureSkill{ID: "adv", Name: t.Title(), Type: t}
}

func TestFreshStateScenario(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(), Options{})

	require.NoError(t, r.Start(s))
	require.True(t, s.InCombat)
	require.NotNil(t, s.CurrentEnemy)
	assert.Equal(t, 50, s.CurrentEnemy.HP)
	assert.Len(t, s.AdventureSkills.AvailableSkills, 3)
	assert.True(t, s.AdventureSkills.ShowSelectionModal)

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Damage)
	assert.Equal(t, 40, s.CurrentEnemy.HP)
	assert.True(t, s.InCombat)

	for s.InCombat {
		out, err = r.Attack(s, true, "", now)
		require.NoError(t, err)
	}

	assert.True(t, out.Victory)
	assert.Equal(t, 2, s.Zone)
	assert.False(t, s.InCombat)
	assert.Nil(t, s.CurrentEnemy)
	assert.Equal(t, 120, s.Coins)
	assert.Equal(t, 10, s.Progression.Experience)
	assert.Equal(t, 1, s.Statistics.TotalVictories)
	assert.Equal(t, 5, s.Statistics.CorrectAnswers)
	assert.Equal(t, 2, s.Statistics.ZonesReached)
}

func TestStart_RejectsWhenInCombat(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(), Options{})
	require.NoError(t, r.Start(s))

	assert.ErrorIs(t, r.Start(s), game.ErrPreconditionNotMet)
}

func TestAttack_RequiresCombat(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(), Options{})

	_, err := r.Attack(s, true, "", now)
	assert.ErrorIs(t, err, game.ErrPreconditionNotMet)
	assert.Equal(t, 0, s.Statistics.TotalQuestionsAnswered)
}

func TestAttack_MissDamage(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Imp", HP: 50, MaxHP: 50, Atk: 10})

	out, err := r.Attack(s, false, "science", now)
	require.NoError(t, err)

	assert.Equal(t, 5, out.DamageTaken)
	assert.Equal(t, 95, s.PlayerStats.HP)
	assert.Equal(t, game.CategoryAccuracy{Correct: 0, Total: 1}, s.Statistics.AccuracyByCategory["science"])
}

func TestAttack_MissDealsAtLeastOne(t *testing.T) {
	s := game.NewState(now)
	s.PlayerStats.Def = 500
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Imp", HP: 50, MaxHP: 50, Atk: 10})

	out, err := r.Attack(s, false, "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, out.DamageTaken)
}

func TestAttack_DeathRespawns(t *testing.T) {
	s := game.NewState(now)
	s.PlayerStats.HP = 3
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Troll", HP: 500, MaxHP: 500, Atk: 100})
	withSkill(s, game.Ramp)

	out, err := r.Attack(s, false, "", now)
	require.NoError(t, err)

	assert.True(t, out.Defeat)
	assert.False(t, s.InCombat)
	assert.Nil(t, s.CurrentEnemy)
	assert.Equal(t, s.PlayerStats.MaxHP, s.PlayerStats.HP)
	assert.Equal(t, 1, s.Statistics.TotalDeaths)
	assert.Equal(t, 1, s.Zone)
	assert.Nil(t, s.AdventureSkills.SelectedSkill)
}

func TestAttack_HPNeverNegative(t *testing.T) {
	src := random.New(17)
	s := game.NewState(now)
	r := newResolver(src, Options{Scaling: generator.ScalingProcedural, CriticalChance: 20})

	for i := 0; i < 500; i++ {
		if !s.InCombat {
			require.NoError(t, r.Start(s))
		}
		_, err := r.Attack(s, src.Float64() < 0.6, "", now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.PlayerStats.HP, 0)
		if s.CurrentEnemy != nil {
			assert.GreaterOrEqual(t, s.CurrentEnemy.HP, 0)
		}
		assert.Equal(t, s.InCombat, s.CurrentEnemy != nil)
	}
}

func TestAttack_CriticalHit(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(0.5), Options{CriticalChance: 100})
	fight(s, game.Enemy{Name: "Imp", HP: 50, MaxHP: 50})

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.True(t, out.Critical)
	assert.Equal(t, 15, out.Damage)
}

func TestAttack_ZeroCritChanceDrawsNothing(t *testing.T) {
	src := testutil.NewScriptedSource(0.0)
	s := game.NewState(now)
	r := newResolver(src, Options{})
	fight(s, game.Enemy{Name: "Imp", HP: 50, MaxHP: 50})

	_, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Remaining())
}

func TestVictory_LevelUpAndSkillBonuses(t *testing.T) {
	s := game.NewState(now)
	s.Zone = 3
	s.Progression.Experience = 95
	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.XPSurge, ExpiresAt: now.Add(time.Hour)}
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Wolf", HP: 1, MaxHP: 150, Zone: 3})

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)

	assert.Equal(t, 90, out.Experience)
	assert.Equal(t, 60, out.Coins)
	assert.Equal(t, 1, out.LevelsGained)
	assert.Equal(t, 2, s.Progression.Level)
	assert.Equal(t, 85, s.Progression.Experience)
	assert.Equal(t, 1, s.Progression.SkillPoints)
	assert.Equal(t, 4, s.Zone)
}

func TestVictory_GoldenTouchAndCoinVacuum(t *testing.T) {
	s := game.NewState(now)
	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.GoldenTouch, ExpiresAt: now.Add(time.Hour)}
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Imp", HP: 1, MaxHP: 50})

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 40, out.Coins)

	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.CoinVacuum, ExpiresAt: now.Add(time.Hour)}
	fight(s, game.Enemy{Name: "Imp", HP: 1, MaxHP: 50})
	out, err = r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 2*20+15, out.Coins)
}

func TestVictory_ExpiredSkillIgnored(t *testing.T) {
	s := game.NewState(now)
	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.GoldenTouch, ExpiresAt: now.Add(-time.Second)}
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Imp", HP: 1, MaxHP: 50})

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Coins)
}

func TestVictory_DropAtHighZones(t *testing.T) {
	// drop roll, kind roll (weapon), rarity roll (common), enchant roll
	src := testutil.NewScriptedSource(0.1, 0.3, 0.1, 0.9)
	s := game.NewState(now)
	s.Zone = 10
	r := newResolver(src, Options{})
	fight(s, game.Enemy{Name: "Dragon", HP: 1, MaxHP: 350, Zone: 10, CanDropItems: true})

	out, err := r.Attack(s, true, "", now)
	require.NoError(t, err)

	require.NotNil(t, out.Drop)
	assert.Equal(t, game.KindWeapon, out.Drop.Kind)
	assert.Equal(t, game.Common, out.Drop.Rarity)
	require.Len(t, s.Inventory.Weapons, 1)
	assert.Equal(t, out.Drop.ID, s.Inventory.Weapons[0].ID)
}

func TestWear_BreaksWeapon(t *testing.T) {
	s := game.NewState(now)
	s.Inventory.CurrentWeapon = &game.Item{ID: "w", Name: "Stone Axe", Kind: game.KindWeapon, Stat: 15, Durability: 1, MaxDurability: 50}
	game.RecomputeStats(s)
	require.Equal(t, 25, s.PlayerStats.Atk)
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Golem", HP: 500, MaxHP: 500})

	_, err := r.Attack(s, true, "", now)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Inventory.CurrentWeapon.Durability)
	assert.Equal(t, 10, s.PlayerStats.Atk)
}

func TestWear_DurabilityMasterPreserves(t *testing.T) {
	s := game.NewState(now)
	s.Skills.ActiveMenuSkill = &game.MenuSkill{Type: game.DurabilityMaster, ExpiresAt: now.Add(time.Hour)}
	s.Inventory.CurrentWeapon = &game.Item{ID: "w", Kind: game.KindWeapon, Stat: 15, Durability: 1, MaxDurability: 50}
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Golem", HP: 500, MaxHP: 500})

	_, err := r.Attack(s, true, "", now)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Inventory.CurrentWeapon.Durability)
}

func TestKnowledgeStreak(t *testing.T) {
	s := game.NewState(now)
	r := newResolver(testutil.NewScriptedSource(), Options{})
	fight(s, game.Enemy{Name: "Golem", HP: 5000, MaxHP: 5000, Atk: 6})

	for i := 0; i < 3; i++ {
		_, err := r.Attack(s, true, "", now)
		require.NoError(t, err)
	}
	_, err := r.Attack(s, false, "", now)
	require.NoError(t, err)

	assert.Equal(t, 0, s.KnowledgeStreak.Current)
	assert.Equal(t, 3, s.KnowledgeStreak.Best)
	assert.Equal(t, 3, s.Statistics.LongestStreak)
}
