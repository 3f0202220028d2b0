package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/api"
	"github.com/abhisek/lexis/internal/scheduler"
	"github.com/abhisek/lexis/internal/vocab"
)

const sweepTag = "attempt-sweep"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the exercise API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rt, err := openRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = rt.cfg.HTTPAddr
		}

		if rt.cfg.VocabFile != "" {
			if err := importVocab(ctx, rt, rt.cfg.VocabFile); err != nil {
				return err
			}
		}

		srv := api.NewServer(api.Deps{
			KV:       rt.store.KV(),
			History:  rt.store.HistoryRepo(),
			Grader:   rt.grader,
			Daily:    rt.daily,
			Metrics:  rt.metrics,
			Gatherer: rt.registry,
			Logger:   rt.log,
		})

		sched := scheduler.New(rt.cfg.Location, rt.log)
		if err := sched.ScheduleRollover(rt.daily); err != nil {
			return fmt.Errorf("schedule rollover: %w", err)
		}
		if err := sched.Every(10*time.Minute, sweepTag, srv.SweepAttempts); err != nil {
			return fmt.Errorf("schedule attempt sweep: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		// Catch up on a day boundary crossed while the server was down.
		if _, err := rt.daily.CheckNewDay(ctx); err != nil {
			rt.log.Warn("daily rollover check failed", zap.Error(err))
		}
		if next, ok := sched.NextRun(scheduler.RolloverTag); ok {
			rt.log.Info("daily rollover scheduled", zap.Time("next_run", next))
		}

		return srv.Run(ctx, addr)
	},
}

// importVocab loads a vocabulary file into the stored pool.
func importVocab(ctx context.Context, rt *runtime, path string) error {
	words, err := vocab.ImportFile(path)
	if err != nil {
		return fmt.Errorf("import vocabulary: %w", err)
	}
	if err := vocab.Save(ctx, rt.store.KV(), words); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}
	rt.log.Info("vocabulary imported", zap.String("path", path), zap.Int("words", len(words)))
	return nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LEXIS_HTTP_ADDR)")
}
