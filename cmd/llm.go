package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/llm"
	"github.com/abhisek/numcraft/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the LLM provider and inspect logged requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().RecentLLMRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-16s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Seq", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 104))
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 40)
			}
			fmt.Printf("%-6d  %-19s  %-16s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("%-28s  %-16s  %6s  %6s  %10s  %10s  %10s\n",
			"Model", "Purpose", "Calls", "Failed", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 98))

		var totalCalls, totalIn, totalOut int
		var totalCost float64
		var unknown []string
		for _, u := range usage {
			cost := "?"
			if c, ok := llm.LookupCost(u.Model); ok {
				usd := c.Cost(u.InputTokens, u.OutputTokens)
				totalCost += usd
				cost = formatCost(usd)
			} else {
				unknown = append(unknown, u.Model)
			}
			fmt.Printf("%-28s  %-16s  %6d  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 28), u.Purpose, u.Calls, u.Failures, u.InputTokens, u.OutputTokens, cost)
			totalCalls += u.Calls
			totalIn += u.InputTokens
			totalOut += u.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 98))
		label := "TOTAL"
		if len(unknown) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-28s  %-16s  %6d  %6s  %10d  %10d  %10s\n",
			label, "", totalCalls, "", totalIn, totalOut, formatCost(totalCost))
		if len(unknown) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

var pingSchema = &llm.Schema{
	Name:        "ping-reply",
	Description: "Connectivity check reply",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string"},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send a tiny request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		llmCfg := cfg.LLM
		if !llmCfg.Discover() {
			return fmt.Errorf("no LLM provider configured: set NUMCRAFT_LLM_PROVIDER or a vendor API key")
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposePing)
		provider, err := llm.NewProvider(ctx, llmCfg, s.EventRepo())
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Prompt(
			"You are a connectivity check. Reply briefly.",
			`Reply with {"reply": "pong"}.`,
			pingSchema, 32))
		if err != nil {
			return fmt.Errorf("ping %s: %w", llmCfg.Provider, err)
		}

		var out struct {
			Reply string `json:"reply"`
		}
		if err := resp.Decode(&out); err != nil {
			return err
		}
		fmt.Printf("%s / %s replied %q in %s (%d tokens)\n",
			llmCfg.Provider, resp.Model, out.Reply, time.Since(start).Round(time.Millisecond), resp.Usage.TotalTokens)
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (coach, error-diagnosis, ping)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmPingCmd)
}
