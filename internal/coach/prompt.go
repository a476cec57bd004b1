package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/numcraft/internal/diagnosis"
)

const systemPrompt = `You are a cheerful coach in a fantasy subtraction game for children aged 6 to 9. After each battle you write one short headline and one practical tip. Use plain words and plain ASCII maths such as 13 - 5 = 8. Never shame the player.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	outcome := "lost to"
	if in.Result.Victory {
		outcome = "defeated"
	}
	fmt.Fprintf(&b, "The player %s the %s on stage %d.\n", outcome, in.Monster, in.Result.Stage+1)
	fmt.Fprintf(&b, "Accuracy: %d%%\n", in.Result.Accuracy)
	fmt.Fprintf(&b, "Best combo: %d\n", in.Result.MaxCombo)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Result.Level.Name())

	b.WriteString("\nMistakes:\n")
	if in.Mistakes.Total() == 0 {
		b.WriteString("None\n")
	}
	for _, c := range diagnosis.AllCategories() {
		if n := in.Mistakes[c]; n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", c.DisplayName(), n)
		}
	}

	b.WriteString("\nWrite the headline and a tip that targets the most frequent mistake. If there were no mistakes, suggest trying to answer faster.")
	return b.String()
}
