package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "lexis",
	Short:         "Timed English exercises with grading and a daily vocabulary streak",
	Long:          "Lexis runs timed English exercises, grades them with an LLM or offline, and keeps a daily vocabulary challenge streak.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite path or postgres:// DSN (overrides LEXIS_DB env var)")
	rootCmd.PersistentFlags().String("env", "", "Runtime environment: development or production (overrides LEXIS_ENV)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database location using --db flag (highest
// priority), then LEXIS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if store.IsPostgres(p) {
			return p, nil
		}
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
