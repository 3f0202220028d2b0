package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/vocab"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the daily streak and today's challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		withVocab, _ := cmd.Flags().GetBool("vocab")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if err := rt.daily.Reset(ctx); err != nil {
			return fmt.Errorf("reset streak: %w", err)
		}
		fmt.Println("Daily streak and challenge cleared.")

		if withVocab {
			if err := rt.store.KV().Delete(ctx, vocab.PoolKey); err != nil {
				return fmt.Errorf("reset vocabulary: %w", err)
			}
			fmt.Println("Imported vocabulary removed; the built-in word list is back in use.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("vocab", false, "Also remove the imported vocabulary pool")
}
