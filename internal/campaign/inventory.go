package campaign

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/numcraft/internal/catalog"
)

// BasePlayerHP is the player's max HP with no armor and no food.
const BasePlayerHP = 100

var (
	ErrUnknownRecipe         = errors.New("unknown recipe")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrNoFood                = errors.New("no food of that kind")
)

// RecipeBook resolves recipe ids. *catalog.Catalog satisfies it.
type RecipeBook interface {
	Recipe(id string) (catalog.Recipe, bool)
}

// InventoryState is the persisted form of an Inventory.
type InventoryState struct {
	Resources  map[Resource]int `json:"resources"`
	Weapon     string           `json:"weapon,omitempty"`
	Armor      string           `json:"armor,omitempty"`
	Owned      []string         `json:"owned,omitempty"`
	Food       map[string]int   `json:"food,omitempty"`
	BuffHP     int              `json:"buff_hp,omitempty"`
	BuffAttack int              `json:"buff_attack,omitempty"`
}

// Inventory holds resources, crafted gear and food, and the food buff
// waiting for the next battle. It implements battle.AttackBonusProvider.
type Inventory struct {
	book  RecipeBook
	state InventoryState

	// battleAttack is the food attack locked in when the current battle
	// started.
	battleAttack int
}

// NewInventory creates an empty inventory.
func NewInventory(book RecipeBook) *Inventory {
	inv := &Inventory{book: book}
	inv.Reset()
	return inv
}

// Reset empties the inventory.
func (inv *Inventory) Reset() {
	inv.state = InventoryState{
		Resources: make(map[Resource]int),
		Food:      make(map[string]int),
	}
	inv.battleAttack = 0
}

// Count returns the amount held of r.
func (inv *Inventory) Count(r Resource) int {
	return inv.state.Resources[r]
}

// Add adds n of r. Non-positive amounts are ignored.
func (inv *Inventory) Add(r Resource, n int) {
	if n <= 0 {
		return
	}
	inv.state.Resources[r] += n
}

// AddLoot adds every drop in loot.
func (inv *Inventory) AddLoot(loot Loot) {
	for _, d := range loot {
		inv.Add(d.Resource, d.Amount)
	}
}

// CanAfford reports whether the inventory covers recipe's cost.
func (inv *Inventory) CanAfford(recipe catalog.Recipe) bool {
	for res, amount := range recipe.Cost {
		if inv.state.Resources[Resource(res)] < amount {
			return false
		}
	}
	return true
}

func (inv *Inventory) spend(recipe catalog.Recipe) error {
	if !inv.CanAfford(recipe) {
		return ErrInsufficientResources
	}
	for res, amount := range recipe.Cost {
		inv.state.Resources[Resource(res)] -= amount
	}
	return nil
}

func (inv *Inventory) recipe(id string) (catalog.Recipe, error) {
	r, ok := inv.book.Recipe(id)
	if !ok {
		return catalog.Recipe{}, ErrUnknownRecipe
	}
	return r, nil
}

// Craft builds the weapon or armor id. The new item is equipped when it
// beats what is currently equipped in its slot. It reports whether the item
// was equipped.
func (inv *Inventory) Craft(id string) (bool, error) {
	recipe, err := inv.recipe(id)
	if err != nil {
		return false, fmt.Errorf("craft %s: %w", id, err)
	}
	if recipe.Kind == catalog.KindFood {
		return false, fmt.Errorf("craft %s: food is cooked: %w", id, ErrUnknownRecipe)
	}
	if err := inv.spend(recipe); err != nil {
		return false, fmt.Errorf("craft %s: %w", id, err)
	}

	if !slices.Contains(inv.state.Owned, id) {
		inv.state.Owned = append(inv.state.Owned, id)
	}

	switch recipe.Kind {
	case catalog.KindWeapon:
		if cur, ok := inv.Weapon(); !ok || recipe.Attack > cur.Attack {
			inv.state.Weapon = id
			return true, nil
		}
	case catalog.KindArmor:
		if cur, ok := inv.Armor(); !ok || recipe.HP > cur.HP {
			inv.state.Armor = id
			return true, nil
		}
	}
	return false, nil
}

// Cook prepares one serving of the food id.
func (inv *Inventory) Cook(id string) error {
	recipe, err := inv.recipe(id)
	if err != nil {
		return fmt.Errorf("cook %s: %w", id, err)
	}
	if recipe.Kind != catalog.KindFood {
		return fmt.Errorf("cook %s: not a food: %w", id, ErrUnknownRecipe)
	}
	if err := inv.spend(recipe); err != nil {
		return fmt.Errorf("cook %s: %w", id, err)
	}
	inv.state.Food[id]++
	return nil
}

// Eat consumes one serving of id and adds its buff to the next battle.
// Buffs from several meals stack.
func (inv *Inventory) Eat(id string) error {
	recipe, err := inv.recipe(id)
	if err != nil {
		return fmt.Errorf("eat %s: %w", id, err)
	}
	if inv.state.Food[id] <= 0 {
		return fmt.Errorf("eat %s: %w", id, ErrNoFood)
	}
	inv.state.Food[id]--
	if inv.state.Food[id] == 0 {
		delete(inv.state.Food, id)
	}
	inv.state.BuffHP += recipe.HP
	inv.state.BuffAttack += recipe.Attack
	return nil
}

// FoodCount returns the servings held of id.
func (inv *Inventory) FoodCount(id string) int {
	return inv.state.Food[id]
}

// Owns reports whether the weapon or armor id has been crafted.
func (inv *Inventory) Owns(id string) bool {
	return slices.Contains(inv.state.Owned, id)
}

// Weapon returns the equipped weapon.
func (inv *Inventory) Weapon() (catalog.Recipe, bool) {
	if inv.state.Weapon == "" {
		return catalog.Recipe{}, false
	}
	return inv.book.Recipe(inv.state.Weapon)
}

// Armor returns the equipped armor.
func (inv *Inventory) Armor() (catalog.Recipe, bool) {
	if inv.state.Armor == "" {
		return catalog.Recipe{}, false
	}
	return inv.book.Recipe(inv.state.Armor)
}

// PendingBuff returns the food buff waiting for the next battle.
func (inv *Inventory) PendingBuff() (hp, attack int) {
	return inv.state.BuffHP, inv.state.BuffAttack
}

// MaxHP returns the player's max HP for the next battle.
func (inv *Inventory) MaxHP() int {
	hp := BasePlayerHP + inv.state.BuffHP
	if armor, ok := inv.Armor(); ok {
		hp += armor.HP
	}
	return hp
}

// BeginBattle consumes the pending food buff and returns the player's max
// HP for the battle. The buff's attack applies until the next BeginBattle.
func (inv *Inventory) BeginBattle() int {
	hp := inv.MaxHP()
	inv.battleAttack = inv.state.BuffAttack
	inv.state.BuffHP = 0
	inv.state.BuffAttack = 0
	return hp
}

// EquipmentAttack returns the equipped weapon's attack bonus.
func (inv *Inventory) EquipmentAttack() int {
	if w, ok := inv.Weapon(); ok {
		return w.Attack
	}
	return 0
}

// FoodAttack returns the food attack bonus of the current battle.
func (inv *Inventory) FoodAttack() int {
	return inv.battleAttack
}

// State returns a deep copy of the persistent inventory.
func (inv *Inventory) State() InventoryState {
	s := inv.state
	s.Resources = make(map[Resource]int, len(inv.state.Resources))
	for k, v := range inv.state.Resources {
		s.Resources[k] = v
	}
	s.Food = make(map[string]int, len(inv.state.Food))
	for k, v := range inv.state.Food {
		s.Food[k] = v
	}
	s.Owned = slices.Clone(inv.state.Owned)
	return s
}

// Restore replaces the inventory with s. Unknown equipment ids are dropped.
func (inv *Inventory) Restore(s InventoryState) {
	inv.Reset()
	for k, v := range s.Resources {
		inv.Add(k, v)
	}
	for k, v := range s.Food {
		if v > 0 {
			inv.state.Food[k] = v
		}
	}
	inv.state.Owned = slices.Clone(s.Owned)
	if _, ok := inv.book.Recipe(s.Weapon); ok {
		inv.state.Weapon = s.Weapon
	}
	if _, ok := inv.book.Recipe(s.Armor); ok {
		inv.state.Armor = s.Armor
	}
	inv.state.BuffHP = max(s.BuffHP, 0)
	inv.state.BuffAttack = max(s.BuffAttack, 0)
}
