package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/generator"
	"github.com/abhisek/lexis/internal/report"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an exercise with the configured LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		level, _ := cmd.Flags().GetString("level")
		skills, _ := cmd.Flags().GetStringSlice("skills")
		count, _ := cmd.Flags().GetInt("questions")
		words, _ := cmd.Flags().GetStringSlice("words")
		out, _ := cmd.Flags().GetString("output")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.provider == nil {
			return errors.New("exercise generation needs an LLM provider (set LEXIS_LLM_PROVIDER)")
		}

		req := generator.Request{
			Topic:         topic,
			Level:         level,
			QuestionCount: count,
			TargetWords:   words,
		}
		for _, s := range skills {
			skill := exercise.Skill(s)
			if !skill.Valid() {
				return fmt.Errorf("unknown skill %q", s)
			}
			req.Skills = append(req.Skills, skill)
		}

		ex, err := generator.New(rt.provider, generator.DefaultConfig()).Generate(cmd.Context(), req)
		if err != nil {
			return err
		}

		if out == "" {
			fmt.Println(report.Exercise(ex))
			return printJSON(ex)
		}
		b, err := json.MarshalIndent(ex, "", "  ")
		if err != nil {
			return fmt.Errorf("encode exercise: %w", err)
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			return fmt.Errorf("write exercise: %w", err)
		}
		fmt.Printf("Wrote %q (%d questions) to %s\n", ex.Title, ex.QuestionCount(), out)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "everyday English", "Exercise topic")
	generateCmd.Flags().StringP("level", "l", "B1", "Target CEFR level")
	generateCmd.Flags().StringSlice("skills", nil, "Skills to cover (grammar, vocabulary, reading, ...)")
	generateCmd.Flags().IntP("questions", "n", 0, "Number of questions (0 for the default)")
	generateCmd.Flags().StringSlice("words", nil, "Target vocabulary words")
	generateCmd.Flags().StringP("output", "o", "", "Write the exercise JSON to this file")
}
