// Package inventory is the crafting camp: resources on hand, equipped gear,
// and the weapon, armor and food recipes.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
	"github.com/abhisek/numcraft/internal/ui/layout"
	"github.com/abhisek/numcraft/internal/ui/theme"
)

// Tabs in display order.
var tabs = []catalog.RecipeKind{catalog.KindWeapon, catalog.KindArmor, catalog.KindFood}

func tabLabel(k catalog.RecipeKind) string {
	switch k {
	case catalog.KindWeapon:
		return "⚔️ Weapons"
	case catalog.KindArmor:
		return "🛡️ Armor"
	default:
		return "🍖 Food"
	}
}

type keyMap struct {
	components.MenuKeys
	NextTab key.Binding
	PrevTab key.Binding
	Eat     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		MenuKeys: components.DefaultMenuKeys(),
		NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("Tab", "Switch")),
		PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
		Eat:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "Eat")),
	}
}

// InventoryScreen crafts gear and cooks and eats food.
type InventoryScreen struct {
	sess    *session.Session
	keys    keyMap
	tab     int
	cursor  int
	message string
	failed  bool
}

var _ screen.Screen = (*InventoryScreen)(nil)
var _ screen.KeyHintProvider = (*InventoryScreen)(nil)

// New creates an InventoryScreen on the weapons tab.
func New(sess *session.Session) *InventoryScreen {
	return &InventoryScreen{sess: sess, keys: defaultKeys()}
}

func (s *InventoryScreen) Init() tea.Cmd {
	return nil
}

func (s *InventoryScreen) Title() string {
	return "Craft & Cook"
}

func (s *InventoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		components.Hint(s.keys.NextTab),
		components.Hint(s.keys.Up),
	}
	if s.kind() == catalog.KindFood {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Cook"}, components.Hint(s.keys.Eat))
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Craft"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *InventoryScreen) kind() catalog.RecipeKind {
	return tabs[s.tab]
}

func (s *InventoryScreen) recipes() []catalog.Recipe {
	return s.sess.Game().Catalog().RecipesOfKind(s.kind())
}

// Selected returns the recipe under the cursor.
func (s *InventoryScreen) Selected() (catalog.Recipe, bool) {
	list := s.recipes()
	if s.cursor < 0 || s.cursor >= len(list) {
		return catalog.Recipe{}, false
	}
	return list[s.cursor], true
}

func (s *InventoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.keys.NextTab):
		s.switchTab(1)
	case key.Matches(kmsg, s.keys.PrevTab):
		s.switchTab(-1)
	case key.Matches(kmsg, s.keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(kmsg, s.keys.Down):
		if s.cursor < len(s.recipes())-1 {
			s.cursor++
		}
	case key.Matches(kmsg, s.keys.Select):
		s.produce()
	case key.Matches(kmsg, s.keys.Eat):
		s.eat()
	}
	return s, nil
}

func (s *InventoryScreen) switchTab(delta int) {
	s.tab = (s.tab + delta + len(tabs)) % len(tabs)
	s.cursor = 0
	s.message = ""
}

// produce crafts or cooks the selected recipe.
func (s *InventoryScreen) produce() {
	r, ok := s.Selected()
	if !ok {
		return
	}
	inv := s.sess.Game().Inventory()

	if r.Kind == catalog.KindFood {
		if err := inv.Cook(r.ID); err != nil {
			s.fail(r, err)
			return
		}
		s.succeed(fmt.Sprintf("Cooked %s %s. You have %d.", r.Icon, r.Name, inv.FoodCount(r.ID)))
		return
	}

	equipped, err := inv.Craft(r.ID)
	if err != nil {
		s.fail(r, err)
		return
	}
	if equipped {
		s.succeed(fmt.Sprintf("Crafted and equipped %s %s!", r.Icon, r.Name))
	} else {
		s.succeed(fmt.Sprintf("Crafted %s %s. Your current gear is stronger.", r.Icon, r.Name))
	}
}

func (s *InventoryScreen) eat() {
	r, ok := s.Selected()
	if !ok || r.Kind != catalog.KindFood {
		return
	}
	if err := s.sess.Game().Inventory().Eat(r.ID); err != nil {
		s.fail(r, err)
		return
	}
	s.succeed(fmt.Sprintf("Ate %s %s. The buff lasts for your next battle.", r.Icon, r.Name))
}

func (s *InventoryScreen) succeed(text string) {
	s.message = text
	s.failed = false
	if err := s.sess.Save(context.Background()); err != nil {
		s.message += " (not saved)"
	}
}

func (s *InventoryScreen) fail(r catalog.Recipe, err error) {
	s.failed = true
	switch {
	case errors.Is(err, campaign.ErrInsufficientResources):
		s.message = fmt.Sprintf("Not enough resources for %s.", r.Name)
	case errors.Is(err, campaign.ErrNoFood):
		s.message = fmt.Sprintf("No %s to eat. Cook some first.", r.Name)
	default:
		s.message = err.Error()
	}
}

// Message returns the last action's feedback and whether it was an error.
func (s *InventoryScreen) Message() (string, bool) {
	return s.message, s.failed
}

func (s *InventoryScreen) View(width, height int) string {
	var b strings.Builder
	inv := s.sess.Game().Inventory()

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderResources(inv)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderGear(inv)))
	b.WriteString("\n\n")

	var labels []string
	for i, k := range tabs {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		labels = append(labels, style.Render(tabLabel(k)))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(labels, "     ")))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(max(width-8, 0), 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	var rows []string
	for i, r := range s.recipes() {
		rows = append(rows, s.renderRecipe(inv, r, i == s.cursor))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	if s.message != "" {
		style := theme.Correct
		if s.failed {
			style = theme.Incorrect
		}
		b.WriteString("\n\n")
		b.WriteString(components.Center(width, style.Render(s.message)))
	}
	return b.String()
}

func renderResources(inv *campaign.Inventory) string {
	var parts []string
	for _, r := range campaign.AllResources() {
		text := fmt.Sprintf("%s %s %d", r.Icon(), r.DisplayName(), inv.Count(r))
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.RarityColor(string(r.Rarity()))).Render(text))
	}
	return strings.Join(parts, "   ")
}

func renderGear(inv *campaign.Inventory) string {
	weapon := "bare hands"
	if w, ok := inv.Weapon(); ok {
		weapon = fmt.Sprintf("%s %s (+%d ATK)", w.Icon, w.Name, w.Attack)
	}
	armor := "none"
	if a, ok := inv.Armor(); ok {
		armor = fmt.Sprintf("%s %s (+%d HP)", a.Icon, a.Name, a.HP)
	}
	line := fmt.Sprintf("Weapon: %s   Armor: %s   Max HP %d", weapon, armor, inv.MaxHP())
	if hp, atk := inv.PendingBuff(); hp > 0 || atk > 0 {
		line += lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("   Next battle: +%d HP +%d ATK", hp, atk))
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}

func (s *InventoryScreen) renderRecipe(inv *campaign.Inventory, r catalog.Recipe, selected bool) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	var effect string
	switch {
	case r.Attack > 0 && r.HP > 0:
		effect = fmt.Sprintf("+%d ATK +%d HP", r.Attack, r.HP)
	case r.Attack > 0:
		effect = fmt.Sprintf("+%d ATK", r.Attack)
	default:
		effect = fmt.Sprintf("+%d HP", r.HP)
	}

	var status string
	switch {
	case r.Kind == catalog.KindFood && inv.FoodCount(r.ID) > 0:
		status = fmt.Sprintf("×%d", inv.FoodCount(r.ID))
	case isEquipped(inv, r):
		status = "equipped"
	case inv.Owns(r.ID):
		status = "owned"
	}

	line := fmt.Sprintf("%s%s %-14s %-14s %-26s %s", cursor, r.Icon, r.Name, effect, costText(r), status)

	afford := inv.CanAfford(r)
	var style lipgloss.Style
	switch {
	case selected:
		style = theme.Selected
	case afford:
		style = theme.Unselected
	default:
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}
	return style.Render(line)
}

func isEquipped(inv *campaign.Inventory, r catalog.Recipe) bool {
	if w, ok := inv.Weapon(); ok && w.ID == r.ID {
		return true
	}
	if a, ok := inv.Armor(); ok && a.ID == r.ID {
		return true
	}
	return false
}

// costText lists the cost in resource order, e.g. "🪨×5 🪵×2".
func costText(r catalog.Recipe) string {
	var parts []string
	for _, res := range campaign.AllResources() {
		if n := r.Cost[string(res)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s×%d", res.Icon(), n))
		}
	}
	return strings.Join(parts, " ")
}
