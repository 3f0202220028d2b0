package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/report"
	"github.com/abhisek/lexis/internal/vocab"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's vocabulary challenge and the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ch, st, err := todayChallenge(cmd, rt)
		if err != nil {
			return err
		}

		fmt.Println(report.Streak(st))
		fmt.Println(daily.Motivation(st.Streak))
		fmt.Println()
		if st.IsTodayCompleted {
			fmt.Println("Today's challenge is already completed. Come back tomorrow!")
			return nil
		}
		fmt.Println(report.Exercise(ch.Exercise))
		if show, _ := cmd.Flags().GetBool("json"); show {
			return printJSON(ch.Exercise)
		}
		return nil
	},
}

var dailySubmitCmd = &cobra.Command{
	Use:   "submit <answers.json>",
	Short: "Grade answers for today's challenge and update the streak",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, err := readAnswers(args[0])
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		ch, _, err := todayChallenge(cmd, rt)
		if err != nil {
			return err
		}
		sub, err := rt.submitAnswers(ch.Exercise, answers)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		res := rt.grader.Grade(ctx, ch.Exercise, sub)
		if err := rt.grader.Record(ctx, ch.Exercise, res, true); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		st, completed, err := rt.daily.CompleteChallenge(ctx, res)
		if err != nil {
			return err
		}

		fmt.Println(report.Result(res, report.DefaultWidth))
		fmt.Println()
		if !completed {
			fmt.Println("Today's challenge was already completed; the streak is unchanged.")
		}
		fmt.Println(report.Streak(st))
		fmt.Println(daily.Motivation(st.Streak))
		return nil
	},
}

// todayChallenge returns today's challenge, creating it from the stored
// vocabulary pool if needed, along with the rolled-over streak state.
func todayChallenge(cmd *cobra.Command, rt *runtime) (*daily.Challenge, daily.StreakState, error) {
	ctx := cmd.Context()
	if words, _ := cmd.Flags().GetInt("words"); words > 0 {
		rt.daily = daily.NewController(rt.store.KV(),
			daily.WithLocation(rt.cfg.Location),
			daily.WithSize(words, rt.cfg.Daily.MaxQuestions),
			daily.WithLogger(rt.log),
			daily.WithMetrics(rt.metrics),
		)
	}

	pool, err := vocab.Load(ctx, rt.store.KV())
	if err != nil {
		return nil, daily.StreakState{}, err
	}
	ch, err := rt.daily.GetOrCreateTodayChallenge(ctx, pool)
	if err != nil {
		return nil, daily.StreakState{}, err
	}
	st, err := rt.daily.State(ctx)
	if err != nil {
		return nil, daily.StreakState{}, err
	}
	return ch, st, nil
}

func init() {
	dailyCmd.PersistentFlags().Int("words", 0, "Words in a newly created challenge (overrides LEXIS_DAILY_WORDS)")
	dailyCmd.Flags().Bool("json", false, "Also print the challenge exercise as JSON")

	dailyCmd.AddCommand(dailySubmitCmd)
}
