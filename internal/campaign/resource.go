package campaign

// Resource is a crafting material dropped by defeated monsters.
type Resource string

const (
	Wood    Resource = "wood"
	Stone   Resource = "stone"
	Iron    Resource = "iron"
	Gold    Resource = "gold"
	Diamond Resource = "diamond"
)

// AllResources returns all resources from most to least common.
func AllResources() []Resource {
	return []Resource{Wood, Stone, Iron, Gold, Diamond}
}

// DisplayName returns a human-readable label for the resource.
func (r Resource) DisplayName() string {
	switch r {
	case Wood:
		return "Wood"
	case Stone:
		return "Stone"
	case Iron:
		return "Iron"
	case Gold:
		return "Gold"
	case Diamond:
		return "Diamond"
	default:
		return string(r)
	}
}

// Icon returns the display icon for the resource.
func (r Resource) Icon() string {
	switch r {
	case Wood:
		return "🪵"
	case Stone:
		return "🪨"
	case Iron:
		return "⛓️"
	case Gold:
		return "🪙"
	case Diamond:
		return "💎"
	default:
		return "✦"
	}
}

// Rarity returns how rare a drop of the resource is.
func (r Resource) Rarity() Rarity {
	switch r {
	case Iron:
		return RarityRare
	case Gold:
		return RarityEpic
	case Diamond:
		return RarityLegendary
	default:
		return RarityCommon
	}
}

// Rarity is the display tier of a loot drop.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

func (r Rarity) rank() int {
	for i, x := range AllRarities() {
		if x == r {
			return i
		}
	}
	return -1
}
