package coach

import "github.com/abhisek/numcraft/internal/diagnosis"

var fallbackTips = map[diagnosis.ErrorCategory]string{
	diagnosis.CategoryTimeout:       "Type your best guess before the bar runs out. A guess can still hit!",
	diagnosis.CategoryForgotBorrow:  "When the top ones digit is smaller, borrow a ten: 13 - 5 is 10 - 5 plus 3.",
	diagnosis.CategoryAddedInstead:  "Watch the sign. Minus means take away, so the answer gets smaller.",
	diagnosis.CategoryOffByOne:      "So close! Count back one more time to check your answer.",
	diagnosis.CategorySpeedRush:     "Take a breath before you press Enter. You have time.",
	diagnosis.CategoryCareless:      "You know these! Check each digit before you attack.",
	diagnosis.CategoryMisconception: "Try counting back from the big number on your fingers.",
}

// Fallback returns a fixed note chosen from the battle outcome and the
// most frequent mistake.
func Fallback(in Input) Note {
	headline := "Good try! The monster is still standing."
	if in.Result.Victory {
		headline = "Victory! " + in.Monster + " is defeated."
		if in.Mistakes.Total() == 0 {
			return Note{
				Headline: "Flawless victory!",
				Tip:      "Every answer was right. Try to beat your best combo next time.",
				Source:   SourceFallback,
			}
		}
	}

	tip, ok := fallbackTips[in.Mistakes.Top()]
	if !ok {
		tip = "Subtracting is counting back. Start at the big number and step down."
	}
	return Note{Headline: headline, Tip: tip, Source: SourceFallback}
}
