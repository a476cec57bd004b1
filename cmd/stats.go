package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/problemgen"
	"github.com/abhisek/numcraft/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show battle, accuracy and mistake statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		p := message.NewPrinter(language.English)

		sum, err := repo.BattleSummary(ctx)
		if err != nil {
			return fmt.Errorf("query battles: %w", err)
		}
		if sum.Battles == 0 {
			fmt.Println("No battles recorded yet. Run `numcraft` to play.")
			return nil
		}

		fmt.Println("Battles")
		fmt.Println(strings.Repeat("─", 40))
		p.Printf("%-20s %10d\n", "Fought", sum.Battles)
		p.Printf("%-20s %10d\n", "Won", sum.Victories)
		p.Printf("%-20s %9.0f%%\n", "Win rate", 100*float64(sum.Victories)/float64(sum.Battles))
		if sum.BestStage >= 0 {
			p.Printf("%-20s %10d\n", "Best stage won", sum.BestStage+1)
		}
		p.Printf("%-20s %10d\n", "Points banked", sum.TotalScore)

		levels, err := repo.LevelAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(levels) > 0 {
			fmt.Println()
			fmt.Println("Accuracy by level")
			fmt.Println(strings.Repeat("─", 40))
			for _, l := range levels {
				lvl := problemgen.Level(l.Level)
				p.Printf("%s %-8s %6d answers %8.0f%%\n", lvl.Icon(), lvl.Name(), l.Attempts, 100*l.Accuracy())
			}
		}

		counts, err := repo.MistakeCounts(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query mistakes: %w", err)
		}
		if len(counts) > 0 {
			fmt.Println()
			fmt.Println("Mistakes")
			fmt.Println(strings.Repeat("─", 40))
			for _, c := range diagnosis.AllCategories() {
				if n := counts[string(c)]; n > 0 {
					p.Printf("%-20s %10d\n", c, n)
				}
			}
		}
		return nil
	},
}
