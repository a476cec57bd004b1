package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent battles, or the answers of one battle",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		battleID, _ := cmd.Flags().GetString("battle")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if battleID != "" {
			return printAnswers(cmd, s.EventRepo(), battleID)
		}

		battles, err := s.EventRepo().RecentBattles(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query battles: %w", err)
		}
		if len(battles) == 0 {
			fmt.Println("No battles recorded yet.")
			return nil
		}

		fmt.Printf("%-16s  %5s  %-18s  %-7s  %6s  %4s  %5s  %-36s  %s\n",
			"Time", "Stage", "Monster", "Result", "Score", "Acc", "Combo", "Battle", "Loot")
		fmt.Println(strings.Repeat("─", 120))
		for _, b := range battles {
			result := "defeat"
			if b.Victory {
				result = "victory"
			}
			fmt.Printf("%-16s  %5d  %-18s  %-7s  %6d  %3d%%  %5d  %-36s  %s\n",
				b.Timestamp.Local().Format("2006-01-02 15:04"),
				b.Stage+1,
				truncate(b.Monster, 18),
				result,
				b.Score,
				b.Accuracy,
				b.MaxCombo,
				b.BattleID,
				b.Loot,
			)
		}
		return nil
	},
}

func printAnswers(cmd *cobra.Command, repo store.EventRepo, battleID string) error {
	answers, err := repo.Answers(cmd.Context(), store.QueryOpts{BattleID: battleID})
	if err != nil {
		return fmt.Errorf("query answers: %w", err)
	}
	if len(answers) == 0 {
		return fmt.Errorf("no answers recorded for battle %q", battleID)
	}

	fmt.Printf("%4s  %-12s  %6s  %-9s  %7s  %5s  %s\n", "Turn", "Problem", "Given", "Result", "Time", "Combo", "Mistake")
	fmt.Println(strings.Repeat("─", 72))
	for _, a := range answers {
		given := a.Given
		if given == "" {
			given = "—"
		}
		fmt.Printf("%4d  %-12s  %6s  %-9s  %6.1fs  %5d  %s\n",
			a.Turn,
			fmt.Sprintf("%d - %d", a.A, a.B),
			given,
			a.Kind,
			float64(a.ElapsedMs)/1000,
			a.Combo,
			a.Category,
		)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of battles to show")
	historyCmd.Flags().StringP("battle", "b", "", "Show the answers of this battle ID")
}
