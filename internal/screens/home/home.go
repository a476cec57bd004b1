// Package home is the camp: the hub the player returns to between battles.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/numcraft/internal/router"
	"github.com/abhisek/numcraft/internal/screen"
	"github.com/abhisek/numcraft/internal/screens/arena"
	"github.com/abhisek/numcraft/internal/screens/atlas"
	"github.com/abhisek/numcraft/internal/screens/history"
	"github.com/abhisek/numcraft/internal/screens/inventory"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/ui/components"
)

// Menu positions.
const (
	itemBattle = iota
	itemCraft
	itemAtlas
	itemHistory
	itemNewGame
	itemQuit
)

// HomeScreen is the camp menu.
type HomeScreen struct {
	sess         *session.Session
	menu         components.Menu
	confirmReset bool
	wiped        bool
	errMsg       string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Focuser = (*HomeScreen)(nil)

// New creates the camp for sess.
func New(sess *session.Session) *HomeScreen {
	h := &HomeScreen{sess: sess}
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	game := h.sess.Game()
	run := game.Run()
	monster := game.Catalog().Monster(run.Stage)

	newGame := "NEW GAME"
	newGameDetail := "Start over from stage 1"
	if h.confirmReset {
		newGame = "REALLY START OVER?"
		newGameDetail = "Press Enter again to wipe this run"
	}

	return []components.MenuItem{
		itemBattle: {
			Label:  "BATTLE",
			Detail: fmt.Sprintf("Stage %d · %s %s", run.Stage+1, monster.Icon, monster.Name),
			Action: func() tea.Cmd {
				return router.Push(arena.New(h.sess, arena.ModeStart))
			},
		},
		itemCraft: {
			Label:  "CRAFT & COOK",
			Detail: "Turn loot into gear and food",
			Action: func() tea.Cmd {
				return router.Push(inventory.New(h.sess))
			},
		},
		itemAtlas: {
			Label:  "STAGE ATLAS",
			Detail: "Replay any stage you have reached",
			Action: func() tea.Cmd {
				return router.Push(atlas.New(h.sess))
			},
		},
		itemHistory: {
			Label:    "HISTORY",
			Detail:   "Past battles and answers",
			Disabled: h.sess.Events() == nil,
			Action: func() tea.Cmd {
				return router.Push(history.New(h.sess.Events()))
			},
		},
		itemNewGame: {
			Label:  newGame,
			Detail: newGameDetail,
			Action: h.newGame,
		},
		itemQuit: {
			Label:  "QUIT",
			Detail: "Progress is saved",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}
}

// newGame asks for confirmation before wiping the run.
func (h *HomeScreen) newGame() tea.Cmd {
	if !h.confirmReset {
		h.confirmReset = true
		return nil
	}
	h.confirmReset = false
	h.wiped = true
	if err := h.sess.NewRun(context.Background()); err != nil {
		slog.Error("new run", "err", err)
		h.errMsg = "Could not save the new run"
	}
	return nil
}

func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	h.menu.SetItems(h.items())
	h.menu.Selected = selected
}

// Focus refreshes the camp after returning from another screen.
func (h *HomeScreen) Focus() tea.Cmd {
	h.confirmReset = false
	h.errMsg = ""
	h.refresh()
	return nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	before := h.menu.Selected
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	if h.menu.Selected != before {
		h.confirmReset = false
	}
	if h.wiped {
		h.wiped = false
		h.menu.Selected = itemBattle
	}
	h.refresh()
	return h, cmd
}

// Hero picks the art for the current state of the run.
func (h *HomeScreen) Hero() HeroVariant {
	game := h.sess.Game()
	if game.Run().BestStage >= game.Catalog().StageCount() {
		return HeroChampion
	}
	if hp, atk := game.Inventory().PendingBuff(); hp > 0 || atk > 0 {
		return HeroFed
	}
	return HeroIdle
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 34 || width < 80
	cw := components.ContentWidth(width)

	game := h.sess.Game()
	run := game.Run()
	inv := game.Inventory()
	st := stats{
		stage:      run.Stage,
		best:       run.BestStage,
		totalScore: run.TotalScore,
		maxHP:      inv.MaxHP(),
		attack:     inv.EquipmentAttack(),
	}

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, components.Center(cw, RenderHero(h.Hero())))
	}
	sections = append(sections, renderStatsBar(st, cw, compact))

	labels := make([]string, len(h.menu.Items))
	disabled := make(map[int]bool)
	for i, item := range h.menu.Items {
		labels[i] = item.Label
		disabled[i] = item.Disabled
	}
	sections = append(sections, renderMenu(labels, h.menu.Selected, disabled, cw, compact))
	if h.menu.Selected >= 0 && h.menu.Selected < len(h.menu.Items) {
		sections = append(sections, renderDetail(h.menu.Items[h.menu.Selected].Detail, cw))
	}
	if h.errMsg != "" {
		sections = append(sections, renderDetail(h.errMsg, cw))
	}

	return renderCampFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Camp"
}
