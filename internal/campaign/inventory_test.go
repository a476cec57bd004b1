package campaign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numcraft/internal/catalog"
)

func TestCraftRequiresResources(t *testing.T) {
	inv := NewInventory(catalog.Default())

	_, err := inv.Craft("wooden_sword")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientResources))

	inv.Add(Wood, 5)
	equipped, err := inv.Craft("wooden_sword")
	require.NoError(t, err)
	assert.True(t, equipped)
	assert.Equal(t, 0, inv.Count(Wood))
	assert.True(t, inv.Owns("wooden_sword"))
	assert.Equal(t, 3, inv.EquipmentAttack())
}

func TestCraftEquipsOnlyUpgrades(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Add(Wood, 20)
	inv.Add(Stone, 5)

	_, err := inv.Craft("stone_sword")
	require.NoError(t, err)
	assert.Equal(t, 5, inv.EquipmentAttack())

	equipped, err := inv.Craft("wooden_sword")
	require.NoError(t, err)
	assert.False(t, equipped, "weaker weapon stays in the bag")
	assert.Equal(t, 5, inv.EquipmentAttack())

	w, ok := inv.Weapon()
	require.True(t, ok)
	assert.Equal(t, "stone_sword", w.ID)
}

func TestCraftRejectsUnknownAndFood(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Add(Wood, 10)

	_, err := inv.Craft("laser_sword")
	assert.True(t, errors.Is(err, ErrUnknownRecipe))

	_, err = inv.Craft("apple")
	assert.True(t, errors.Is(err, ErrUnknownRecipe))
	assert.Equal(t, 10, inv.Count(Wood), "failed craft spends nothing")

	err = inv.Cook("wooden_sword")
	assert.True(t, errors.Is(err, ErrUnknownRecipe))
}

func TestCookAndEat(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Add(Wood, 4)

	require.NoError(t, inv.Cook("apple"))
	require.NoError(t, inv.Cook("apple"))
	assert.Equal(t, 2, inv.FoodCount("apple"))
	assert.True(t, errors.Is(inv.Cook("apple"), ErrInsufficientResources))

	require.NoError(t, inv.Eat("apple"))
	require.NoError(t, inv.Eat("apple"))
	hp, atk := inv.PendingBuff()
	assert.Equal(t, 20, hp, "buffs stack")
	assert.Equal(t, 0, atk)

	err := inv.Eat("apple")
	assert.True(t, errors.Is(err, ErrNoFood))
	assert.True(t, errors.Is(inv.Eat("pizza"), ErrUnknownRecipe))
}

func TestBeginBattleConsumesBuffs(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Add(Wood, 8+2)
	inv.Add(Gold, 1)

	_, err := inv.Craft("leather_armor")
	require.NoError(t, err)
	require.NoError(t, inv.Cook("golden_apple"))
	require.NoError(t, inv.Eat("golden_apple"))

	assert.Equal(t, 100+15+15, inv.MaxHP())
	assert.Equal(t, 0, inv.FoodAttack(), "attack buff waits for the battle")

	assert.Equal(t, 130, inv.BeginBattle())
	assert.Equal(t, 3, inv.FoodAttack())
	hp, atk := inv.PendingBuff()
	assert.Zero(t, hp)
	assert.Zero(t, atk)
	assert.Equal(t, 115, inv.MaxHP())

	assert.Equal(t, 115, inv.BeginBattle())
	assert.Equal(t, 0, inv.FoodAttack(), "buff lasts one battle")
}

func TestInventoryStateRoundTrip(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Add(Wood, 12)
	inv.Add(Iron, 3)
	_, err := inv.Craft("wooden_sword")
	require.NoError(t, err)
	require.NoError(t, inv.Cook("apple"))

	s := inv.State()
	s.Resources[Wood] = 999 // copies are detached
	assert.Equal(t, 5, inv.Count(Wood))

	restored := NewInventory(catalog.Default())
	restored.Restore(inv.State())
	assert.Equal(t, inv.State(), restored.State())
	assert.Equal(t, 3, restored.EquipmentAttack())
	assert.Equal(t, 1, restored.FoodCount("apple"))
}

func TestRestoreDropsUnknownGear(t *testing.T) {
	inv := NewInventory(catalog.Default())
	inv.Restore(InventoryState{Weapon: "laser_sword", Armor: "iron_armor", BuffHP: -5})

	_, ok := inv.Weapon()
	assert.False(t, ok)
	assert.Equal(t, 100+30, inv.MaxHP())
}
