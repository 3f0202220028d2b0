package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/llm"
	"github.com/abhisek/lexis/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

// withEvents opens the database named by --db and passes its event log to fn.
func withEvents(cmd *cobra.Command, fn func(store.EventRepo) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s.EventRepo())
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")
		failed, _ := cmd.Flags().GetBool("failed")

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		return withEvents(cmd, func(events store.EventRepo) error {
			list, err := events.QueryLLMEvents(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			shown := 0
			for _, e := range list {
				if purpose != "" && e.Purpose != purpose {
					continue
				}
				if failed && e.Success {
					continue
				}
				if shown == 0 {
					fmt.Printf("%-5s  %-19s  %-14s  %-28s  %6s  %6s  %7s  %s\n",
						"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
					fmt.Println(strings.Repeat("─", 100))
				}
				shown++
				status := "✓"
				if !e.Success {
					status = "✗ " + truncate(e.ErrorMessage, 40)
				}
				fmt.Printf("%-5d  %-19s  %-14s  %-28s  %6d  %6d  %7d  %s\n",
					e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"), truncate(e.Purpose, 14),
					truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, status)
			}
			if shown == 0 {
				fmt.Println("No LLM requests recorded.")
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and response of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEvents(cmd, func(events store.EventRepo) error {
			e, err := events.GetLLMEvent(cmd.Context(), id)
			if err != nil {
				return err
			}

			fields := [][2]string{
				{"ID", strconv.FormatInt(e.ID, 10)},
				{"Time", e.Timestamp.Local().Format(time.DateTime)},
				{"Provider", e.Provider},
				{"Model", e.Model},
				{"Purpose", e.Purpose},
				{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
				{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			}
			if cost := llm.LookupCost(e.Model); cost != nil {
				fields = append(fields, [2]string{"Cost", formatCost(cost.Cost(e.InputTokens, e.OutputTokens))})
			}
			if !e.Success {
				fields = append(fields, [2]string{"Error", e.ErrorMessage})
			}
			for _, f := range fields {
				fmt.Printf("%-9s  %s\n", f[0]+":", f[1])
			}

			printBlock("REQUEST", e.RequestBody)
			printBlock("RESPONSE", e.ResponseBody)
			return nil
		})
	},
}

func printBlock(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEvents(cmd, func(events store.EventRepo) error {
			byPurpose, err := events.LLMUsageByPurpose(cmd.Context())
			if err != nil {
				return err
			}
			if len(byPurpose) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}
			printUsage("Purpose", byPurpose, nil)

			byModel, err := events.LLMUsageByModel(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println()
			printUsage("Model", byModel, func(u store.LLMUsage) (float64, bool) {
				c := llm.LookupCost(u.Name)
				if c == nil {
					return 0, false
				}
				return c.Cost(u.InputTokens, u.OutputTokens), true
			})
			return nil
		})
	},
}

// printUsage renders one usage table. With cost set, a cost column is
// added; models without known pricing show "?" and mark the total partial.
func printUsage(label string, rows []store.LLMUsage, cost func(store.LLMUsage) (float64, bool)) {
	rule := strings.Repeat("─", 84)
	fmt.Printf("%-30s  %6s  %10s  %10s  %8s", label, "Calls", "Input", "Output", "Avg Ms")
	if cost != nil {
		fmt.Printf("  %10s", "Cost")
	}
	fmt.Printf("\n%s\n", rule)

	var calls, in, out int
	var total float64
	partial := false
	for _, u := range rows {
		calls += u.Calls
		in += u.InputTokens
		out += u.OutputTokens
		fmt.Printf("%-30s  %6d  %10d  %10d  %8d", truncate(u.Name, 30), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		if cost != nil {
			if c, ok := cost(u); ok {
				total += c
				fmt.Printf("  %10s", formatCost(c))
			} else {
				partial = true
				fmt.Printf("  %10s", "?")
			}
		}
		fmt.Println()
	}

	fmt.Println(rule)
	totalLabel := "TOTAL"
	if partial {
		totalLabel = "TOTAL (partial)"
	}
	fmt.Printf("%-30s  %6d  %10d  %10d  %8s", totalLabel, calls, in, out, "")
	if cost != nil {
		fmt.Printf("  %10s", formatCost(total))
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (remote-grading, exercise-gen)")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this (e.g. 24h)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
