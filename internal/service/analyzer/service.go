package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/password-analyzer/internal/content"
	"github.com/jwalitptl/password-analyzer/internal/model"
	"github.com/jwalitptl/password-analyzer/internal/session"
	"github.com/jwalitptl/password-analyzer/pkg/errors"
	"github.com/jwalitptl/password-analyzer/pkg/logger"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

type Config struct {
	DefaultLength int
	MaxLength     int
}

// Service connects the scorer and generator to per-session state. It never
// logs or exports password contents.
type Service struct {
	scorer    *strength.Scorer
	generator *strength.Generator
	sessions  *session.Store
	metrics   *metrics.Metrics
	log       *logger.Logger
	cfg       Config
	now       func() time.Time
}

func NewService(
	scorer *strength.Scorer,
	generator *strength.Generator,
	sessions *session.Store,
	m *metrics.Metrics,
	log *logger.Logger,
	cfg Config,
) *Service {
	if cfg.DefaultLength == 0 {
		cfg.DefaultLength = strength.DefaultLength
	}
	if cfg.MaxLength == 0 {
		cfg.MaxLength = 128
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		scorer:    scorer,
		generator: generator,
		sessions:  sessions,
		metrics:   m,
		log:       log,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) Score(ctx context.Context, password string) *strength.Result {
	result := s.scorer.Score(password)
	s.observe(result)

	s.log.Debug("password scored",
		"strength", string(result.Strength),
		"score", result.Score,
		"feedback_items", len(result.Feedback),
	)
	return result
}

// Generate creates a password, scores it and stores both under sessionID.
// A zero length selects the configured default.
func (s *Service) Generate(ctx context.Context, sessionID string, length int) (*model.GeneratedPassword, error) {
	if length == 0 {
		length = s.cfg.DefaultLength
	}
	if length > s.cfg.MaxLength {
		return nil, errors.BadRequest(
			"length exceeds maximum",
			fmt.Errorf("requested %d, maximum is %d", length, s.cfg.MaxLength),
		)
	}

	password := s.generator.Generate(length)
	result := s.scorer.Score(password)
	s.observe(result)

	gp := &model.GeneratedPassword{
		Password:    password,
		Length:      len(password),
		Secure:      s.generator.Secure(),
		GeneratedAt: s.now().UTC(),
		Result:      result,
	}

	if s.metrics != nil {
		s.metrics.PasswordsGenerated.Inc()
		s.metrics.GeneratedLength.Observe(float64(gp.Length))
	}

	if sessionID != "" {
		s.sessions.Save(sessionID, gp)
	}

	s.log.Debug("password generated",
		"requested_length", length,
		"length", gp.Length,
		"strength", string(result.Strength),
	)
	return gp, nil
}

// LastGenerated returns the most recent password generated for sessionID.
func (s *Service) LastGenerated(ctx context.Context, sessionID string) (*model.GeneratedPassword, error) {
	gp, ok := s.sessions.Get(sessionID)
	if s.metrics != nil {
		result := "miss"
		if ok {
			result = "hit"
		}
		s.metrics.SessionLookups.WithLabelValues(result).Inc()
	}
	if !ok {
		return nil, errors.NotFound("generated password", nil)
	}
	return gp, nil
}

func (s *Service) Forget(ctx context.Context, sessionID string) {
	s.sessions.Delete(sessionID)
}

func (s *Service) Tips(ctx context.Context) []model.TipSection {
	return content.Tips()
}

func (s *Service) observe(result *strength.Result) {
	if s.metrics == nil {
		return
	}
	s.metrics.PasswordsScored.WithLabelValues(string(result.Strength)).Inc()
	s.metrics.ScoreValue.Observe(float64(result.Score))
}
