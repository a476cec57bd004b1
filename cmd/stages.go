package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/catalog"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Browse the stage catalog",
}

var stagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stages (optionally including scaled endless stages)",
	RunE: func(cmd *cobra.Command, args []string) error {
		endless, _ := cmd.Flags().GetInt("endless")
		area, _ := cmd.Flags().GetString("area")
		if endless < 0 {
			return fmt.Errorf("--endless must not be negative")
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("%5s  %-20s  %-14s  %5s  %4s  %5s  %s\n",
			"Stage", "Monster", "Area", "HP", "ATK", "Timer", "Boss")
		fmt.Println(strings.Repeat("─", 70))

		shown := 0
		for stage := 0; stage < cat.StageCount()+endless; stage++ {
			a := cat.Area(stage)
			if area != "" && !strings.EqualFold(a.Name, area) {
				continue
			}
			m := cat.Monster(stage)
			boss := ""
			if m.Boss {
				boss = "★"
			}
			fmt.Printf("%5d  %-20s  %-14s  %5d  %4d  %4.0fs  %s\n",
				stage+1, truncate(m.Name, 20), a.Name, m.HP, m.Attack, cat.TimerDuration(stage).Seconds(), boss)
			shown++
		}
		if shown == 0 {
			return fmt.Errorf("no stages found for area %q", area)
		}

		fmt.Printf("\n%d stages\n", shown)
		return nil
	},
}

var stagesRecipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List crafting and cooking recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		fmt.Printf("%-16s  %-16s  %-7s  %4s  %4s  %s\n", "ID", "Name", "Kind", "ATK", "HP", "Cost")
		fmt.Println(strings.Repeat("─", 72))
		for _, kind := range []catalog.RecipeKind{catalog.KindWeapon, catalog.KindArmor, catalog.KindFood} {
			for _, r := range cat.RecipesOfKind(kind) {
				fmt.Printf("%-16s  %-16s  %-7s  %4d  %4d  %s\n",
					r.ID, r.Name, r.Kind, r.Attack, r.HP, formatRecipeCost(r))
			}
		}
		return nil
	},
}

// formatRecipeCost renders a cost like "stone 5, wood 2" in a stable order.
func formatRecipeCost(r catalog.Recipe) string {
	var parts []string
	for _, res := range []string{"wood", "stone", "iron", "gold", "diamond"} {
		if n := r.Cost[res]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", res, n))
		}
	}
	return strings.Join(parts, ", ")
}

func init() {
	stagesListCmd.Flags().Int("endless", 0, "Also list this many endless stages")
	stagesListCmd.Flags().String("area", "", "Only list stages in this area")

	stagesCmd.AddCommand(stagesListCmd)
	stagesCmd.AddCommand(stagesRecipesCmd)
}
