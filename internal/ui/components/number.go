package components

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators, e.g. 12,450.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
