package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/config"
	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/llm"
	"github.com/abhisek/lexis/internal/logging"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
)

// runtime holds the dependencies shared by the commands.
type runtime struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	provider llm.Provider // nil when no LLM is configured
	grader   *grading.Service
	daily    *daily.Controller
}

// openRuntime loads configuration, opens the store and builds the grading
// pipeline and daily controller. Remote grading is wired only when remote
// is set and a provider is configured.
func openRuntime(cmd *cobra.Command, remote bool) (*runtime, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if env, _ := cmd.Flags().GetString("env"); env != "" {
		cfg.Env = env
	}

	log, err := logging.New(cfg.Env)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rt := &runtime{cfg: cfg, log: log, store: st, registry: reg, metrics: m}

	if cfg.LLM.Provider != "" {
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Remote grading and exercise generation will be unavailable.")
		} else {
			rt.provider = provider
		}
	}

	gradingOpts := []grading.Option{
		grading.WithHistory(st.HistoryRepo()),
		grading.WithLogger(log),
		grading.WithMetrics(m),
	}
	if remote && cfg.RemoteGrading && rt.provider != nil {
		gradingOpts = append(gradingOpts,
			grading.WithRemote(grading.NewRemoteGrader(rt.provider, grading.DefaultRemoteConfig()), cfg.GradingTimeout))
	}
	rt.grader = grading.NewService(gradingOpts...)

	rt.daily = daily.NewController(st.KV(),
		daily.WithLocation(cfg.Location),
		daily.WithSize(cfg.Daily.WordCount, cfg.Daily.MaxQuestions),
		daily.WithLogger(log),
		daily.WithMetrics(m),
	)
	return rt, nil
}

func (rt *runtime) Close() {
	if err := rt.store.Close(); err != nil {
		rt.log.Warn("close store", zap.Error(err))
	}
	_ = rt.log.Sync()
}

// readAnswers parses a JSON object mapping question ids to answers.
func readAnswers(path string) (map[string]exercise.AnswerValue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var answers map[string]exercise.AnswerValue
	if err := json.Unmarshal(b, &answers); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	return answers, nil
}

// submitAnswers runs answers through a session so shape and id checks
// apply, then force-submits the attempt.
func (rt *runtime) submitAnswers(ex *exercise.Exercise, answers map[string]exercise.AnswerValue) (*session.Submission, error) {
	sess := session.New(session.WithLogger(rt.log), session.WithMetrics(rt.metrics))
	if err := sess.Load(ex, session.Config{}); err != nil {
		return nil, err
	}
	for id, v := range answers {
		if _, err := sess.SetAnswer(id, v); err != nil {
			return nil, err
		}
	}
	return sess.Submit(true)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
