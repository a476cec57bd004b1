// Package catalog holds the static stage data: areas, the monster roster
// with endless-mode scaling, per-stage time limits, and crafting recipes.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed stages.yaml
var defaultStages []byte

// Area groups consecutive stages under one theme and time limit.
type Area struct {
	Name      string `yaml:"name"`
	Icon      string `yaml:"icon"`
	TimeLimit int    `yaml:"time_limit"` // seconds per turn
}

// Label returns the icon and name, e.g. "🌿 Grassland".
func (a Area) Label() string {
	if a.Icon == "" {
		return a.Name
	}
	return a.Icon + " " + a.Name
}

// Monster is a snapshot of one stage's opponent.
type Monster struct {
	Name         string `yaml:"name"`
	Icon         string `yaml:"icon"`
	HP           int    `yaml:"hp"`
	Attack       int    `yaml:"attack"`
	Area         int    `yaml:"area"`
	Boss         bool   `yaml:"boss"`
	DeathMessage string `yaml:"death_message"`

	// EndlessLevel is 0 for authored stages and counts up from 2 for the
	// scaled stages past the end of the roster.
	EndlessLevel int `yaml:"-"`
}

// RecipeKind classifies what a recipe produces.
type RecipeKind string

const (
	KindWeapon RecipeKind = "weapon"
	KindArmor  RecipeKind = "armor"
	KindFood   RecipeKind = "food"
)

// Recipe describes a craftable weapon or armor, or a cookable food.
type Recipe struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Icon   string         `yaml:"icon"`
	Kind   RecipeKind     `yaml:"kind"`
	Attack int            `yaml:"attack"`
	HP     int            `yaml:"hp"`
	Cost   map[string]int `yaml:"cost"`
}

type endlessFile struct {
	TimeLimit     int `yaml:"time_limit"`
	GrowthPercent int `yaml:"growth_percent"`
}

type catalogFile struct {
	Endless  endlessFile `yaml:"endless"`
	Areas    []Area      `yaml:"areas"`
	Monsters []Monster   `yaml:"monsters"`
	Recipes  []Recipe    `yaml:"recipes"`
}

// Catalog is read-only after loading and safe for concurrent use.
type Catalog struct {
	areas         []Area
	monsters      []Monster
	recipes       []Recipe
	recipeIndex   map[string]int
	endlessLimit  int
	growthPercent int
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultStages)
	if err != nil {
		panic(fmt.Sprintf("embedded stage catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog override from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{
		areas:         f.Areas,
		monsters:      f.Monsters,
		recipes:       f.Recipes,
		recipeIndex:   make(map[string]int, len(f.Recipes)),
		endlessLimit:  f.Endless.TimeLimit,
		growthPercent: f.Endless.GrowthPercent,
	}
	for i := range c.monsters {
		if c.monsters[i].DeathMessage == "" {
			c.monsters[i].DeathMessage = defaultDeathMessage(c.monsters[i])
		}
	}
	for i, r := range c.recipes {
		c.recipeIndex[r.ID] = i
	}
	return c, nil
}

func (f *catalogFile) validate() error {
	if len(f.Areas) == 0 {
		return errors.New("at least one area is required")
	}
	if len(f.Monsters) == 0 {
		return errors.New("at least one monster is required")
	}
	if f.Endless.TimeLimit <= 0 {
		return errors.New("endless time_limit must be positive")
	}
	for i, a := range f.Areas {
		if a.TimeLimit <= 0 {
			return fmt.Errorf("area %d (%s): time_limit must be positive", i, a.Name)
		}
	}
	for i, m := range f.Monsters {
		if m.HP <= 0 || m.Attack <= 0 {
			return fmt.Errorf("monster %d (%s): hp and attack must be positive", i, m.Name)
		}
		if m.Area < 0 || m.Area >= len(f.Areas) {
			return fmt.Errorf("monster %d (%s): unknown area %d", i, m.Name, m.Area)
		}
	}
	seen := make(map[string]bool, len(f.Recipes))
	for _, r := range f.Recipes {
		switch r.Kind {
		case KindWeapon, KindArmor, KindFood:
		default:
			return fmt.Errorf("recipe %s: unknown kind %q", r.ID, r.Kind)
		}
		if seen[r.ID] {
			return fmt.Errorf("recipe %s: duplicate id", r.ID)
		}
		seen[r.ID] = true
	}
	return nil
}

func defaultDeathMessage(m Monster) string {
	if m.Boss {
		return fmt.Sprintf("⭐ Boss %s defeated!", m.Name)
	}
	return fmt.Sprintf("%s defeated!", m.Name)
}

// StageCount returns the number of authored stages. Stages at or beyond it
// are endless stages.
func (c *Catalog) StageCount() int {
	return len(c.monsters)
}

// Areas returns the areas in order.
func (c *Catalog) Areas() []Area {
	out := make([]Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Monster returns the opponent for stage (0-indexed). Past the authored
// roster the last monster is repeated with hp and attack grown by
// growth_percent per extra stage. Negative stages are treated as 0.
func (c *Catalog) Monster(stage int) Monster {
	stage = max(stage, 0)
	if stage < len(c.monsters) {
		return c.monsters[stage]
	}

	last := c.monsters[len(c.monsters)-1]
	extra := stage - len(c.monsters) + 1
	factor := 100 + c.growthPercent*extra

	m := last
	m.HP = last.HP * factor / 100
	m.Attack = last.Attack * factor / 100
	m.EndlessLevel = extra + 1
	m.Name = fmt.Sprintf("%s Lv.%d", last.Name, m.EndlessLevel)
	return m
}

// Area returns the area for stage. Endless stages belong to the last area.
func (c *Catalog) Area(stage int) Area {
	stage = max(stage, 0)
	if stage < len(c.monsters) {
		return c.areas[c.monsters[stage].Area]
	}
	return c.areas[len(c.areas)-1]
}

// AreaIndex returns the index of the area stage belongs to.
func (c *Catalog) AreaIndex(stage int) int {
	stage = max(stage, 0)
	if stage < len(c.monsters) {
		return c.monsters[stage].Area
	}
	return len(c.areas) - 1
}

// TimerDuration returns the per-turn time limit for stage.
func (c *Catalog) TimerDuration(stage int) time.Duration {
	stage = max(stage, 0)
	if stage < len(c.monsters) {
		return time.Duration(c.areas[c.monsters[stage].Area].TimeLimit) * time.Second
	}
	return time.Duration(c.endlessLimit) * time.Second
}

// Recipes returns every recipe in catalog order.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// RecipesOfKind returns the recipes producing kind, in catalog order.
func (c *Catalog) RecipesOfKind(kind RecipeKind) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// Recipe looks up a recipe by id.
func (c *Catalog) Recipe(id string) (Recipe, bool) {
	i, ok := c.recipeIndex[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}
