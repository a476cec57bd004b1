package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/numcraft/internal/ui/theme"
)

// HeroVariant selects which hero art to display.
type HeroVariant int

const (
	HeroIdle     HeroVariant = iota
	HeroFed                  // food buff waiting for the next battle
	HeroChampion             // every authored stage cleared
)

const heroIdle = `  ▄▄▄
 █▀▀▀█
 █ ▪ ▪█  /
 ▀▄▄▄▀  /
 ▐███▌─┼
 ▐▌ ▐▌`

const heroFed = `  ▄▄▄
 █▀▀▀█
 █ ^ ^█  /
 ▀▄▄▄▀  /   +
 ▐███▌─┼
 ▐▌ ▐▌`

const heroChampion = ` ▲▲▲▲▲
 █▀▀▀█
 █ ★ ★█  /
 ▀▄▄▄▀  /
 ▐███▌─┼
 ▐▌ ▐▌`

// RenderHero returns the hero art for the given variant.
func RenderHero(v HeroVariant) string {
	art := heroIdle
	fg := theme.Primary
	switch v {
	case HeroFed:
		art = heroFed
		fg = theme.Success
	case HeroChampion:
		art = heroChampion
		fg = theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
