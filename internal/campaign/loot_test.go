package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/numcraft/internal/problemgen"
)

// edgeSource always returns the lowest or highest value.
type edgeSource struct{ high bool }

func (s edgeSource) IntN(n int) int {
	if s.high {
		return n - 1
	}
	return 0
}

func TestRollLootLuckyDeepStage(t *testing.T) {
	loot := RollLoot(edgeSource{}, 15)

	assert.Equal(t, 1, loot.Amount(Wood))
	assert.Equal(t, 1, loot.Amount(Stone))
	assert.Equal(t, 2, loot.Amount(Iron))
	assert.Equal(t, 3, loot.Amount(Gold))
	assert.Equal(t, 4, loot.Amount(Diamond))
	assert.Equal(t, RarityLegendary, loot.Rarity())
}

func TestRollLootUnluckyDeepStage(t *testing.T) {
	loot := RollLoot(edgeSource{high: true}, 15)

	assert.Equal(t, Loot{
		{Resource: Wood, Amount: 3},
		{Resource: Stone, Amount: 2},
		{Resource: Iron, Amount: 2},
		{Resource: Gold, Amount: 1},
		{Resource: Diamond, Amount: 1},
	}, loot)
}

func TestRollLootFirstStages(t *testing.T) {
	src := problemgen.NewSource(42)
	for i := 0; i < 500; i++ {
		loot := RollLoot(src, 1)
		assert.Len(t, loot, 2)
		assert.GreaterOrEqual(t, loot.Amount(Wood), 1)
		assert.LessOrEqual(t, loot.Amount(Wood), 3)
		assert.GreaterOrEqual(t, loot.Amount(Stone), 1)
		assert.LessOrEqual(t, loot.Amount(Stone), 2)
		assert.Equal(t, RarityCommon, loot.Rarity())
	}
}

func TestRollLootStageGates(t *testing.T) {
	tests := []struct {
		stage   int
		allowed []Resource
	}{
		{0, []Resource{Wood, Stone}},
		{2, []Resource{Wood, Stone, Iron}},
		{4, []Resource{Wood, Stone, Iron, Gold}},
		{6, []Resource{Wood, Stone, Iron, Gold, Diamond}},
	}
	for _, tt := range tests {
		loot := RollLoot(edgeSource{}, tt.stage)
		for _, d := range loot {
			assert.Contains(t, tt.allowed, d.Resource, "stage %d", tt.stage)
		}
		assert.Len(t, loot, len(tt.allowed), "stage %d", tt.stage)
	}
}

func TestLootString(t *testing.T) {
	loot := Loot{{Resource: Wood, Amount: 2}, {Resource: Gold, Amount: 1}}
	assert.Equal(t, "🪵×2 🪙×1", loot.String())
	assert.Equal(t, RarityEpic, loot.Rarity())
	assert.Equal(t, "", Loot(nil).String())
}

func TestResourceRarity(t *testing.T) {
	assert.Equal(t, RarityCommon, Wood.Rarity())
	assert.Equal(t, RarityCommon, Stone.Rarity())
	assert.Equal(t, RarityRare, Iron.Rarity())
	assert.Equal(t, RarityEpic, Gold.Rarity())
	assert.Equal(t, RarityLegendary, Diamond.Rarity())
	assert.Equal(t, "Legendary", RarityLegendary.DisplayName())
}
