package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/report"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <exercise.json> <answers.json>",
	Short: "Grade a set of answers against an exercise",
	Long: `Grade answers against an exercise and print the result.

The answers file is a JSON object keyed by question id. Text answers may
be plain strings. Fill-in-the-blank and matching answers use the tagged
form {"type": "blanks", "value": {"0": "went"}}. Unanswered questions
score zero.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		remote, _ := cmd.Flags().GetBool("remote")
		asJSON, _ := cmd.Flags().GetBool("json")
		width, _ := cmd.Flags().GetInt("width")

		ex, err := exercise.LoadFile(args[0])
		if err != nil {
			return err
		}
		answers, err := readAnswers(args[1])
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd, remote)
		if err != nil {
			return err
		}
		defer rt.Close()

		sub, err := rt.submitAnswers(ex, answers)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		res := rt.grader.Grade(ctx, ex, sub)
		if err := rt.grader.Record(ctx, ex, res, false); err != nil {
			return fmt.Errorf("record history: %w", err)
		}

		if asJSON {
			return printJSON(res)
		}
		fmt.Println(report.Result(res, width))
		return nil
	},
}

func init() {
	gradeCmd.Flags().Bool("remote", false, "Grade with the configured LLM, falling back to offline grading")
	gradeCmd.Flags().Bool("json", false, "Print the graded result as JSON")
	gradeCmd.Flags().Int("width", report.DefaultWidth, "Report width in columns")
}
