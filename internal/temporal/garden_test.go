package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
)

func TestPlantSeed(t *testing.T) {
	s := game.NewState(now)
	require.ErrorIs(t, PlantSeed(s, now), game.ErrInsufficientFunds)

	s.Coins = 1500
	require.NoError(t, PlantSeed(s, now))
	assert.True(t, s.Garden.IsPlanted)
	assert.Equal(t, 500, s.Coins)
	assert.ErrorIs(t, PlantSeed(s, now), game.ErrPreconditionNotMet)
}

func TestBuyWater_Validation(t *testing.T) {
	s := game.NewState(now)
	_, err := BuyWater(s, 24, now)
	assert.ErrorIs(t, err, game.ErrPreconditionNotMet)

	s.Coins = 1000
	require.NoError(t, PlantSeed(s, now))
	_, err = BuyWater(s, 0, now)
	assert.ErrorIs(t, err, game.ErrPreconditionNotMet)
	_, err = BuyWater(s, 24, now)
	assert.ErrorIs(t, err, game.ErrInsufficientFunds)
}

func TestGarden_Growth(t *testing.T) {
	s := game.NewState(now)
	s.Coins = 1200
	require.NoError(t, PlantSeed(s, now))

	cost, err := BuyWater(s, 48, now)
	require.NoError(t, err)
	assert.Equal(t, 200, cost)
	assert.Equal(t, 0, s.Coins)

	GrowGarden(s, now.Add(10*time.Hour))
	assert.InDelta(t, 10.0, s.Garden.GrowthCm, 1e-9)
	assert.InDelta(t, 38.0, s.Garden.WaterHoursRemaining, 1e-9)
	assert.Equal(t, 10, s.Garden.TotalGrowthBonus)
	assert.Equal(t, 110, s.PlayerStats.MaxHP)

	GrowGarden(s, now.Add(60*time.Hour))
	assert.InDelta(t, 48.0, s.Garden.GrowthCm, 1e-9)
	assert.InDelta(t, 0.0, s.Garden.WaterHoursRemaining, 1e-9)
	assert.Equal(t, 148, s.PlayerStats.MaxHP)
}

func TestGarden_Cap(t *testing.T) {
	s := game.NewState(now)
	planted := now
	s.Garden.IsPlanted = true
	s.Garden.LastWatered = &planted
	s.Garden.GrowthCm = 99.5
	s.Garden.WaterHoursRemaining = 10

	GrowGarden(s, now.Add(5*time.Hour))
	assert.InDelta(t, 100.0, s.Garden.GrowthCm, 1e-9)
	assert.Equal(t, 100, s.Garden.TotalGrowthBonus)
}

func TestGarden_NotPlantedIsInert(t *testing.T) {
	s := game.NewState(now)
	GrowGarden(s, now.Add(100*time.Hour))
	assert.Nil(t, s.Garden.LastWatered)
	assert.Zero(t, s.Garden.GrowthCm)
}
