package inventory

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/catalog"
	"github.com/abhisek/numcraft/internal/problemgen"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/store"
)

func newTestSession(t *testing.T) (*session.Session, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_").Replace(t.Name())
	st, err := store.Open("file:inventory_" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	game := campaign.New(catalog.Default(), problemgen.NewSource(5))
	s := session.New(session.Options{Game: game, Snapshots: st.SnapshotRepo()})
	t.Cleanup(s.Close)
	return s, st
}

func keyPress(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestCraftEquipsWeapon(t *testing.T) {
	sess, st := newTestSession(t)
	inv := sess.Game().Inventory()
	inv.Add(campaign.Wood, 5)

	s := New(sess)
	r, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "wooden_sword", r.ID)

	s.Update(keyPress(tea.KeyEnter, ""))
	msg, failed := s.Message()
	assert.False(t, failed)
	assert.Contains(t, msg, "equipped")
	w, ok := inv.Weapon()
	require.True(t, ok)
	assert.Equal(t, "wooden_sword", w.ID)
	assert.Zero(t, inv.Count(campaign.Wood))

	snap, err := st.SnapshotRepo().Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "wooden_sword", snap.Data.Game.Inventory.Weapon)
}

func TestCraftWithoutResources(t *testing.T) {
	sess, _ := newTestSession(t)
	s := New(sess)

	s.Update(keyPress(tea.KeyEnter, ""))
	msg, failed := s.Message()
	assert.True(t, failed)
	assert.Equal(t, "Not enough resources for Wooden Sword.", msg)
	_, ok := sess.Game().Inventory().Weapon()
	assert.False(t, ok)
}

func TestCookAndEat(t *testing.T) {
	sess, _ := newTestSession(t)
	inv := sess.Game().Inventory()
	inv.Add(campaign.Wood, 4)

	s := New(sess)
	s.Update(keyPress(tea.KeyTab, ""))
	s.Update(keyPress(tea.KeyTab, ""))
	r, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, catalog.KindFood, r.Kind)
	assert.Equal(t, "apple", r.ID)

	s.Update(keyPress(tea.KeyEnter, ""))
	s.Update(keyPress(tea.KeyEnter, ""))
	assert.Equal(t, 2, inv.FoodCount("apple"))

	s.Update(keyPress('e', "e"))
	hp, atk := inv.PendingBuff()
	assert.Equal(t, 10, hp)
	assert.Zero(t, atk)
	assert.Equal(t, 1, inv.FoodCount("apple"))
	assert.Equal(t, campaign.BasePlayerHP+10, inv.MaxHP())
}

func TestEatWithoutFood(t *testing.T) {
	sess, _ := newTestSession(t)
	s := New(sess)
	s.Update(keyPress(tea.KeyTab, ""))
	s.Update(keyPress(tea.KeyTab, ""))

	s.Update(keyPress('e', "e"))
	msg, failed := s.Message()
	assert.True(t, failed)
	assert.Contains(t, msg, "Cook some first")
}

func TestEatIgnoredOnGearTabs(t *testing.T) {
	sess, _ := newTestSession(t)
	s := New(sess)
	s.Update(keyPress('e', "e"))
	msg, _ := s.Message()
	assert.Empty(t, msg)
}

func TestTabWrapsAndResetsCursor(t *testing.T) {
	sess, _ := newTestSession(t)
	s := New(sess)
	s.Update(keyPress(tea.KeyDown, ""))
	assert.Equal(t, 1, s.cursor)

	s.Update(keyPress(tea.KeyLeft, ""))
	assert.Equal(t, catalog.KindFood, s.kind())
	assert.Zero(t, s.cursor)

	s.Update(keyPress(tea.KeyRight, ""))
	assert.Equal(t, catalog.KindWeapon, s.kind())
}

func TestView(t *testing.T) {
	sess, _ := newTestSession(t)
	inv := sess.Game().Inventory()
	inv.Add(campaign.Wood, 13)
	_, err := inv.Craft("leather_armor")
	require.NoError(t, err)

	s := New(sess)
	view := s.View(120, 40)
	for _, want := range []string{"Wood 5", "Diamond 0", "bare hands", "Leather Armor (+15 HP)", "Max HP 115", "Wooden Sword", "+3 ATK", "🪵×5"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
	assert.Equal(t, "Craft", s.KeyHints()[2].Description)
}
