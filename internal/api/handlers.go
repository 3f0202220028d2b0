package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/lexis/internal/daily"
	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/grading"
	"github.com/abhisek/lexis/internal/session"
	"github.com/abhisek/lexis/internal/store"
	"github.com/abhisek/lexis/internal/vocab"
)

type createAttemptRequest struct {
	Exercise         *exercise.Exercise `json:"exercise"`
	TimeLimitSeconds int                `json:"timeLimitSeconds"`

	// Resume restores a saved snapshot for the same exercise id if one exists.
	Resume bool `json:"resume"`
}

func (s *Server) createAttempt(c *gin.Context) {
	var req createAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest("invalid request body", err.Error()))
		return
	}
	if req.Exercise == nil {
		s.respondError(c, badRequest("exercise is required", nil))
		return
	}
	if req.TimeLimitSeconds < 0 {
		s.respondError(c, badRequest("timeLimitSeconds must not be negative", nil))
		return
	}

	a := &attempt{id: uuid.NewString(), createdAt: s.now()}
	opts := append([]session.Option{
		session.WithStore(s.kv),
		session.WithMetrics(s.metrics),
	}, s.sessOpts...)
	opts = append(opts, session.WithLogger(s.log.With(zap.String("attempt_id", a.id))))
	a.session = session.New(opts...)
	a.session.Subscribe(func(ev session.Event) {
		if ev.Kind == session.EventSubmitted && ev.Submission.Forced() && a.claim() {
			s.bg.Add(1)
			go func() {
				defer s.bg.Done()
				s.gradeAttempt(context.Background(), a, ev.Submission)
			}()
		}
	})

	cfg := session.Config{TimeLimitSeconds: req.TimeLimitSeconds}
	resumed := false
	if req.Resume {
		var err error
		resumed, err = a.session.Resume(c.Request.Context(), req.Exercise, cfg)
		if err != nil {
			s.respondError(c, err)
			return
		}
	} else if err := a.session.Load(req.Exercise, cfg); err != nil {
		s.respondError(c, err)
		return
	}

	// A snapshot saved after submission but before grading finished.
	if sub := a.session.Submission(); sub != nil && a.claim() {
		s.gradeAttempt(context.WithoutCancel(c.Request.Context()), a, sub)
	}

	s.attempts.put(a)
	c.JSON(http.StatusCreated, gin.H{"attempt": a.view(), "resumed": resumed})
}

func (s *Server) lookup(c *gin.Context) (*attempt, bool) {
	a, ok := s.attempts.get(c.Param("id"))
	if !ok {
		s.respondError(c, notFound("attempt"))
		return nil, false
	}
	return a, true
}

func (s *Server) getAttempt(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.view())
}

func (s *Server) setAnswer(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	var v exercise.AnswerValue
	if err := c.ShouldBindJSON(&v); err != nil {
		s.respondError(c, badRequest("invalid answer", err.Error()))
		return
	}
	p, err := a.session.SetAnswer(c.Param("questionId"), v)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p})
}

func (s *Server) revealHint(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	hints, err := a.session.RevealHint(c.Param("questionId"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questionId": c.Param("questionId"), "hints": hints})
}

type submitRequest struct {
	Force bool `json:"force"`
}

func (s *Server) submitAttempt(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	var req submitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.respondError(c, badRequest("invalid request body", err.Error()))
			return
		}
	}

	sub, err := a.session.Submit(req.Force)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if sub == nil {
		// Already submitted: grade it unless that is done or under way.
		sub = a.session.Submission()
	}
	if sub != nil && a.claim() {
		s.gradeAttempt(context.WithoutCancel(c.Request.Context()), a, sub)
	}
	c.JSON(http.StatusOK, a.view())
}

// gradeAttempt grades, records and stores the result on a. Callers claim
// the attempt first so it is graded once. It never fails.
func (s *Server) gradeAttempt(ctx context.Context, a *attempt, sub *session.Submission) {
	ex := a.session.Exercise()
	res := s.grader.Grade(ctx, ex, sub)
	if err := s.grader.Record(ctx, ex, res, false); err != nil {
		s.log.Warn("record history failed", zap.String("attempt_id", a.id), zap.Error(err))
	}
	a.setResult(res, s.now())
	if err := a.session.Discard(ctx); err != nil {
		s.log.Warn("discard snapshot failed", zap.String("attempt_id", a.id), zap.Error(err))
	}
}

type dailyView struct {
	Challenge  *daily.Challenge  `json:"challenge"`
	Streak     daily.StreakState `json:"streak"`
	Motivation string            `json:"motivation"`
}

func (s *Server) getDaily(c *gin.Context) {
	ctx := c.Request.Context()
	pool, err := vocab.Load(ctx, s.kv)
	if err != nil {
		s.respondError(c, err)
		return
	}
	ch, err := s.daily.GetOrCreateTodayChallenge(ctx, pool)
	if err != nil {
		s.respondError(c, err)
		return
	}
	st, err := s.daily.State(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailyView{Challenge: ch, Streak: st, Motivation: daily.Motivation(st.Streak)})
}

type dailySubmitRequest struct {
	Answers map[string]exercise.AnswerValue `json:"answers"`
}

type dailySubmitResponse struct {
	Result     *grading.Result   `json:"result"`
	Streak     daily.StreakState `json:"streak"`
	Completed  bool              `json:"completed"`
	Motivation string            `json:"motivation"`
}

// submitDaily grades today's challenge and advances the streak.
func (s *Server) submitDaily(c *gin.Context) {
	ctx := c.Request.Context()
	var req dailySubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, badRequest("invalid request body", err.Error()))
		return
	}

	pool, err := vocab.Load(ctx, s.kv)
	if err != nil {
		s.respondError(c, err)
		return
	}
	ch, err := s.daily.GetOrCreateTodayChallenge(ctx, pool)
	if err != nil {
		s.respondError(c, err)
		return
	}

	sess := session.New(append([]session.Option{session.WithLogger(s.log), session.WithMetrics(s.metrics)}, s.sessOpts...)...)
	if err := sess.Load(ch.Exercise, session.Config{}); err != nil {
		s.respondError(c, err)
		return
	}
	for id, v := range req.Answers {
		if _, err := sess.SetAnswer(id, v); err != nil {
			s.respondError(c, err)
			return
		}
	}
	sub, err := sess.Submit(true)
	if err != nil {
		s.respondError(c, err)
		return
	}

	gradeCtx := context.WithoutCancel(ctx)
	res := s.grader.Grade(gradeCtx, ch.Exercise, sub)
	if err := s.grader.Record(gradeCtx, ch.Exercise, res, true); err != nil {
		s.log.Warn("record history failed", zap.String("challenge_id", ch.ID), zap.Error(err))
	}
	st, completed, err := s.daily.CompleteChallenge(gradeCtx, res)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dailySubmitResponse{
		Result:     res,
		Streak:     st,
		Completed:  completed,
		Motivation: daily.Motivation(st.Streak),
	})
}

type historyView struct {
	store.HistoryEntry
	Result json.RawMessage `json:"result,omitempty"`
}

func (s *Server) listHistory(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []historyView{}})
		return
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			s.respondError(c, badRequest("limit must be between 1 and 200", v))
			return
		}
		limit = n
	}
	entries, err := s.history.List(c.Request.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		s.respondError(c, err)
		return
	}
	out := make([]historyView, len(entries))
	for i, e := range entries {
		out[i] = historyView{HistoryEntry: e}
		if c.Query("full") == "true" && e.Result != "" {
			out[i].Result = json.RawMessage(e.Result)
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
