package campaign

import (
	"fmt"
	"strings"

	"github.com/abhisek/numcraft/internal/problemgen"
)

// Drop is one resource stack in a loot roll.
type Drop struct {
	Resource Resource
	Amount   int
}

// Loot is the ordered result of a victory roll. Each resource appears at
// most once.
type Loot []Drop

// Amount returns how much of r the loot holds.
func (l Loot) Amount(r Resource) int {
	for _, d := range l {
		if d.Resource == r {
			return d.Amount
		}
	}
	return 0
}

// Rarity returns the rarest tier among the drops.
func (l Loot) Rarity() Rarity {
	best := RarityCommon
	for _, d := range l {
		if d.Resource.Rarity().rank() > best.rank() {
			best = d.Resource.Rarity()
		}
	}
	return best
}

// String renders the loot as "🪵×2 🪨×1".
func (l Loot) String() string {
	parts := make([]string, 0, len(l))
	for _, d := range l {
		parts = append(parts, fmt.Sprintf("%s×%d", d.Resource.Icon(), d.Amount))
	}
	return strings.Join(parts, " ")
}

// RollLoot rolls the drops for defeating the monster at stage. Every
// victory yields wood and stone; deeper stages add iron, gold and diamond.
func RollLoot(src problemgen.Source, stage int) Loot {
	amounts := make(map[Resource]int)
	chance := func(percent int) bool { return src.IntN(100) < percent }

	amounts[Wood] = 1 + src.IntN(3)
	amounts[Stone] = 1 + src.IntN(2)

	if stage >= 2 && chance(50) {
		amounts[Iron] = 1 + src.IntN(2)
	}
	if stage >= 4 && chance(40) {
		amounts[Gold] = 1
	}
	if stage >= 6 && chance(30) {
		amounts[Diamond] = 1
	}

	if stage >= 9 {
		amounts[Iron] += 1 + src.IntN(2)
		if chance(50) {
			amounts[Gold]++
		}
	}
	if stage >= 12 {
		amounts[Gold]++
		if chance(40) {
			amounts[Diamond]++
		}
	}
	if stage >= 15 {
		amounts[Diamond]++
		if chance(50) {
			amounts[Diamond]++
		}
	}

	var loot Loot
	for _, r := range AllResources() {
		if n := amounts[r]; n > 0 {
			loot = append(loot, Drop{Resource: r, Amount: n})
		}
	}
	return loot
}
