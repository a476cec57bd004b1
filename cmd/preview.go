package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/problemgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Practise problems at one level in the console (no database)",
	Long: `Generate and interactively answer problems at a fixed level.

This is a stateless tool: no battle, no saved progress, no events. Misses
are diagnosed the same way as in battle, which makes it handy for checking
the mistake classifiers and the LLM diagnosis prompt.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("level", 1, "Difficulty level: 1 (easy), 2 (medium) or 3 (hard)")
	previewCmd.Flags().Int("count", 5, "Number of problems")
}

func runPreview(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")

	level := problemgen.Level(levelVal)
	if level.Clamp() != level {
		return fmt.Errorf("invalid level %d: must be 1, 2 or 3", levelVal)
	}

	ctx := cmd.Context()
	// No EventRepo: LLM calls are not logged.
	provider := buildProvider(ctx, nil)
	diag := diagnosis.NewService(provider)
	defer diag.Close()

	gen := problemgen.New(problemgen.NewSource(seed()), problemgen.DefaultConfig())
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Level: %s %s\n\n", level.Icon(), level.Name())

	var correct, asked int
	for i := 1; i <= count; i++ {
		p := gen.Generate(level)
		fmt.Printf("── Problem %d/%d ──\n", i, count)
		fmt.Println(p.Text())

		fmt.Print("\nYour answer: ")
		start := time.Now()
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		elapsed := time.Since(start)
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}
		asked++

		if problemgen.CheckAnswer(answer, p) {
			correct++
			fmt.Printf("\033[32m✓ Correct!\033[0m (%.1fs)\n\n", elapsed.Seconds())
			continue
		}
		fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %d\n", p.Answer)

		refined := make(chan *diagnosis.DiagnosisResult, 1)
		in := &diagnosis.ClassifyInput{
			Problem:  p,
			Given:    answer,
			Elapsed:  elapsed,
			Accuracy: float64(correct) / float64(asked),
		}
		result := diag.Diagnose(ctx, in, func(r *diagnosis.DiagnosisResult) { refined <- r })
		printDiagnosis(result)
		if result.Category == diagnosis.CategoryUnclassified && provider != nil {
			select {
			case r := <-refined:
				printDiagnosis(r)
			case <-time.After(cfg.LLM.Timeout):
				fmt.Println("(LLM diagnosis timed out)")
			}
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

func printDiagnosis(r *diagnosis.DiagnosisResult) {
	line := fmt.Sprintf("Diagnosis: %s (%s", r.Category, r.ClassifierName)
	if r.Confidence > 0 {
		line += fmt.Sprintf(", %.0f%%", r.Confidence*100)
	}
	line += ")"
	if r.MisconceptionID != "" {
		line += " " + r.MisconceptionID
	}
	fmt.Println(line)
	if r.Reasoning != "" {
		fmt.Printf("  %s\n", r.Reasoning)
	}
}
