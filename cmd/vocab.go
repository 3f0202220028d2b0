package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the daily challenge vocabulary pool",
}

var vocabImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the vocabulary pool from an XLSX or CSV file",
	Long: `Replace the vocabulary pool from a spreadsheet.

Columns are word, definition, example and translation, in that order. A
first row whose first cell is "word" is treated as a header.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := importVocab(cmd.Context(), rt, args[0]); err != nil {
			return err
		}
		words, err := vocab.Load(cmd.Context(), rt.store.KV())
		if err != nil {
			return err
		}
		fmt.Printf("Vocabulary pool now holds %d words.\n", len(words))
		return nil
	},
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the vocabulary pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		words, err := vocab.Load(cmd.Context(), rt.store.KV())
		if err != nil {
			return err
		}

		fmt.Printf("%-18s  %s\n", "Word", "Definition")
		fmt.Println(strings.Repeat("─", 72))
		for _, w := range words {
			fmt.Printf("%-18s  %s\n", truncate(w.Word, 18), truncate(w.Definition, 52))
		}
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabImportCmd)
	vocabCmd.AddCommand(vocabListCmd)
}
