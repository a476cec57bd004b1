package arena

import (
	"charm.land/bubbles/v2/key"
)

type battleKeys struct {
	Digit  key.Binding
	Delete key.Binding
	Submit key.Binding
	Flee   key.Binding
}

func defaultBattleKeys() battleKeys {
	return battleKeys{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "Answer"),
		),
		Delete: key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "Delete")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Attack")),
		Flee:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Flee")),
	}
}
