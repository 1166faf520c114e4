package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/triviarpg/internal/game"
)

func TestPurchaseRelic(t *testing.T) {
	s := game.NewState(now)
	s.Gems = 600
	s.YojefMarket.Items = []game.Relic{relic("r1", game.KindWeapon, 100), relic("r2", game.KindArmor, 100)}

	got, err := PurchaseRelic(s, "r2")
	require.NoError(t, err)
	assert.Equal(t, "r2", got.ID)
	assert.Equal(t, 100, s.Gems)
	require.Len(t, s.YojefMarket.Items, 1)
	assert.Equal(t, "r1", s.YojefMarket.Items[0].ID)
	require.Len(t, s.Inventory.Relics, 1)

	_, err = PurchaseRelic(s, "r1")
	assert.ErrorIs(t, err, game.ErrInsufficientFunds)
	assert.Len(t, s.YojefMarket.Items, 1, "a failed purchase leaves the market alone")

	_, err = PurchaseRelic(s, "r2")
	assert.ErrorIs(t, err, game.ErrInvalidReference)
}

func TestEquipRelic_Cap(t *testing.T) {
	s := game.NewState(now)
	s.Inventory.Relics = []game.Relic{
		relic("r1", game.KindWeapon, 50),
		relic("r2", game.KindArmor, 20),
		relic("r3", game.KindWeapon, 10),
	}

	require.NoError(t, EquipRelic(s, "r1", 2))
	require.NoError(t, EquipRelic(s, "r2", 2))
	err := EquipRelic(s, "r3", 2)
	assert.ErrorIs(t, err, game.ErrCapacityExceeded)

	assert.Len(t, s.Inventory.EquippedRelics, 2)
	assert.Len(t, s.Inventory.Relics, 1)
	assert.Equal(t, 60, s.PlayerStats.Atk)
	assert.Equal(t, 25, s.PlayerStats.Def)

	assert.ErrorIs(t, EquipRelic(s, "r1", 2), game.ErrInvalidReference, "already equipped")
}

func TestUnequipRelic(t *testing.T) {
	s := game.NewState(now)
	s.Inventory.Relics = []game.Relic{relic("r1", game.KindWeapon, 50)}
	require.NoError(t, EquipRelic(s, "r1", 5))

	require.NoError(t, UnequipRelic(s, "r1"))
	assert.Empty(t, s.Inventory.EquippedRelics)
	assert.Len(t, s.Inventory.Relics, 1)
	assert.Equal(t, 10, s.PlayerStats.Atk)

	assert.ErrorIs(t, UnequipRelic(s, "r1"), game.ErrInvalidReference)
}

func TestUpgradeRelic(t *testing.T) {
	s := game.NewState(now)
	s.ShinyGems = 15
	s.Inventory.Relics = []game.Relic{relic("r1", game.KindWeapon, 100)}
	require.NoError(t, EquipRelic(s, "r1", 5))

	require.NoError(t, UpgradeRelic(s, "r1"))
	r := s.Inventory.EquippedRelics[0]
	assert.Equal(t, 2, r.Level)
	assert.Equal(t, 110, r.Stat)
	assert.Equal(t, 5, s.ShinyGems)
	assert.Equal(t, 120, s.PlayerStats.Atk)

	assert.ErrorIs(t, UpgradeRelic(s, "r1"), game.ErrInsufficientFunds, "level 2 costs 20")
	assert.ErrorIs(t, UpgradeRelic(s, "nope"), game.ErrInvalidReference)
}

func TestSellRelic(t *testing.T) {
	s := game.NewState(now)
	s.Gems = 0
	s.Inventory.Relics = []game.Relic{relic("r1", game.KindArmor, 100)}
	s.Inventory.EquippedRelics = []game.Relic{relic("r2", game.KindArmor, 100)}

	refund, err := SellRelic(s, "r1")
	require.NoError(t, err)
	assert.Equal(t, 250, refund)
	assert.Equal(t, 250, s.Gems)
	assert.Empty(t, s.Inventory.Relics)

	_, err = SellRelic(s, "r2")
	assert.ErrorIs(t, err, game.ErrInvalidReference, "equipped relics must be unequipped first")
}
