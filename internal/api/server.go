// Package api serves sessions, grading and the daily challenge over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/logging"
	"github.com/abhisek/lexis/internal/metrics"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
)

// Attempt retention.
const (
	GradedTTL = time.Hour
	IdleTTL   = 24 * time.Hour
)

// Deps are the collaborators a Server needs. Grader and Daily are required.
type Deps struct {
	KV       store.KV
	History  store.HistoryRepo
	Grader   *grading.Service
	Daily    *daily.Controller
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	Now      func() time.Time

	// SessionOptions are applied to every session the server creates.
	SessionOptions []session.Option
}

// Server is the HTTP boundary.
type Server struct {
	engine   *gin.Engine
	attempts *registry
	kv       store.KV
	history  store.HistoryRepo
	grader   *grading.Service
	daily    *daily.Controller
	metrics  *metrics.Metrics
	log      *zap.Logger
	now      func() time.Time
	sessOpts []session.Option

	// background gradings of timer-forced submissions
	bg sync.WaitGroup
}

// NewServer builds the router.
func NewServer(d Deps) *Server {
	s := &Server{
		attempts: newRegistry(),
		kv:       d.KV,
		history:  d.History,
		grader:   d.Grader,
		daily:    d.Daily,
		metrics:  d.Metrics,
		log:      logging.OrNop(d.Logger),
		now:      d.Now,
		sessOpts: d.SessionOptions,
	}
	if s.kv == nil {
		s.kv = store.NewMemoryKV()
	}
	if s.now == nil {
		s.now = time.Now
	}

	r := gin.New()
	r.Use(recovery(s.log), requestLogger(s.log))

	r.GET("/healthz", s.health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	{
		attempts := v1.Group("/attempts")
		attempts.POST("", s.createAttempt)
		attempts.GET("/:id", s.getAttempt)
		attempts.PUT("/:id/answers/:questionId", s.setAnswer)
		attempts.POST("/:id/hints/:questionId", s.revealHint)
		attempts.POST("/:id/submit", s.submitAttempt)

		v1.GET("/daily", s.getDaily)
		v1.POST("/daily/submit", s.submitDaily)
		v1.GET("/history", s.listHistory)
	}

	s.engine = r
	return s
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Wait blocks until background gradings finish.
func (s *Server) Wait() {
	s.bg.Wait()
}

// SweepAttempts drops graded and abandoned attempts. It is run periodically
// by the scheduler.
func (s *Server) SweepAttempts(context.Context) error {
	if n := s.attempts.sweep(s.now(), GradedTTL, IdleTTL); n > 0 {
		s.log.Info("attempts swept", zap.Int("removed", n), zap.Int("remaining", s.attempts.len()))
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "attempts": s.attempts.len()})
}
