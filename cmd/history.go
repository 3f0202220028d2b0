package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List graded attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		onlyDaily, _ := cmd.Flags().GetBool("daily")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		entries, err := s.HistoryRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No graded attempts yet.")
			return nil
		}

		fmt.Printf("%-19s  %-32s  %7s  %-5s  %-8s  %s\n",
			"Graded", "Exercise", "Score", "Band", "Source", "Daily")
		fmt.Println(strings.Repeat("─", 90))
		for _, e := range entries {
			if onlyDaily && !e.Daily {
				continue
			}
			d := ""
			if e.Daily {
				d = "✓"
			}
			fmt.Printf("%-19s  %-32s  %6.1f%%  %-5s  %-8s  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Title, 32),
				e.Percentage,
				e.Band,
				e.Source,
				d,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	historyCmd.Flags().Bool("daily", false, "Only show daily challenges")
}
