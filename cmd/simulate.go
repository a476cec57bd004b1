package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/problemgen"
	"github.com/abhisek/numcraft/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play battles with a synthetic player (no terminal UI)",
	Long: `Run battles headlessly against a fake clock with a seeded synthetic
player of the given accuracy and answer speed. Useful for balancing stages
and checking how the difficulty level responds.

Nothing is saved unless --save is given.`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.IntP("battles", "n", 20, "Number of battles to play")
	f.Float64("accuracy", 0.8, "Chance of answering correctly (0-1)")
	f.Duration("latency", 4*time.Second, "Mean time to answer")
	f.Duration("jitter", time.Second, "Answer time varies by up to this much")
	f.Bool("craft", true, "Craft better gear after each battle")
	f.Bool("retry", true, "Retry lost stages with the retry penalty")
	f.Bool("save", false, "Record battles and the final run in the database")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	battles, _ := flags.GetInt("battles")
	accuracy, _ := flags.GetFloat64("accuracy")
	latency, _ := flags.GetDuration("latency")
	jitter, _ := flags.GetDuration("jitter")
	craft, _ := flags.GetBool("craft")
	retry, _ := flags.GetBool("retry")
	save, _ := flags.GetBool("save")

	if accuracy < 0 || accuracy > 1 {
		return fmt.Errorf("accuracy %v out of range 0-1", accuracy)
	}
	if battles < 1 {
		return fmt.Errorf("battles must be at least 1")
	}

	ctx := cmd.Context()
	s := seed()
	clock := sim.NewClock(time.Now())
	opts := sessionOptions{battle: []battle.Option{battle.WithClock(clock.Now)}}
	if save {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		opts.store = st
	}
	cfg.Seed = s
	sess, err := newSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	player := sim.Player{Accuracy: accuracy, Latency: latency, Jitter: jitter, AutoCraft: craft, Retry: retry}
	simulator := sim.New(sess, clock, problemgen.NewSource(s^0x5eed), player)

	p := message.NewPrinter(language.English)
	fmt.Printf("Seed %d  accuracy %.0f%%  latency %s ± %s\n\n", s, accuracy*100, latency, jitter)
	p.Printf("%4s  %5s  %-18s  %-7s  %6s  %5s  %5s  %-8s  %s\n",
		"#", "Stage", "Monster", "Result", "Score", "Acc", "Turns", "Level", "Loot")
	fmt.Println(strings.Repeat("─", 92))

	sum, err := simulator.Run(ctx, battles, func(r sim.BattleReport) {
		result := "defeat"
		if r.Victory {
			result = "victory"
		}
		level := r.Level.Name()
		if r.Changed {
			level += " *"
		}
		p.Printf("%4d  %5d  %-18s  %-7s  %6d  %4d%%  %5d  %-8s  %s\n",
			r.Number, r.Stage+1, truncate(r.Monster, 18), result, r.Score, r.Accuracy, r.Turns, level, r.Loot)
		if len(r.Crafted) > 0 {
			fmt.Printf("      crafted %s\n", strings.Join(r.Crafted, ", "))
		}
	})
	if err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	fmt.Println(strings.Repeat("─", 92))
	p.Printf("%d battles, %d won. Best stage %d. Total score %d.\n",
		sum.Battles, sum.Victories, sum.BestStage, sum.Total)
	p.Printf("%d turns, %d correct, %d timed out.\n", sum.Turns, sum.Correct, sum.Timeouts)
	printMistakes(p, sum.Mistakes)

	if save {
		if err := sess.Save(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "save:", err)
		}
	}
	return nil
}

// printMistakes lists categories from most to least frequent.
func printMistakes(p *message.Printer, tally diagnosis.Tally) {
	if tally.Total() == 0 {
		return
	}
	cats := make([]diagnosis.ErrorCategory, 0, len(tally))
	for c := range tally {
		cats = append(cats, c)
	}
	slices.SortFunc(cats, func(a, b diagnosis.ErrorCategory) int {
		if tally[a] != tally[b] {
			return tally[b] - tally[a]
		}
		return strings.Compare(string(a), string(b))
	})
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, p.Sprintf("%s %d", c, tally[c]))
	}
	fmt.Printf("Mistakes: %s\n", strings.Join(parts, ", "))
}
