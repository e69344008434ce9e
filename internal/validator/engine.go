package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "codehunt/pkg/errors"
	"codehunt/pkg/utils/logger"

	"go.uber.org/zap"
)

const defaultSubmissionTimeout = 60 * time.Second

// ValidateFunc runs every task of one challenge against the session's base URL.
type ValidateFunc func(ctx context.Context, s *Session) error

// Challenge is one validatable day of an event.
type Challenge struct {
	Number   string
	Validate ValidateFunc
}

// Suite is the ordered set of challenges of one event.
type Suite struct {
	Event      string
	Banner     string
	challenges []Challenge
	index      map[string]int
}

// NewSuite builds a suite; challenge order is kept for --all.
func NewSuite(event, banner string, challenges ...Challenge) *Suite {
	s := &Suite{
		Event:      event,
		Banner:     banner,
		challenges: challenges,
		index:      make(map[string]int, len(challenges)),
	}
	for i, c := range challenges {
		s.index[c.Number] = i
	}
	return s
}

// Supported lists the challenge numbers in order.
func (s *Suite) Supported() []string {
	out := make([]string, 0, len(s.challenges))
	for _, c := range s.challenges {
		out = append(out, c.Number)
	}
	return out
}

// Lookup returns the challenge with the given number.
func (s *Suite) Lookup(number string) (Challenge, bool) {
	i, ok := s.index[number]
	if !ok {
		return Challenge{}, false
	}
	return s.challenges[i], true
}

// Config controls how submissions are run.
type Config struct {
	BaseURL      string
	SubmissionID string
	Timeout      time.Duration
	Sleeper      Sleeper
	Client       ClientConfig
}

// Run validates one challenge with a submission timeout. Updates are written
// to updates; the caller owns the channel.
func Run(ctx context.Context, cfg Config, suite *Suite, number string, updates chan<- Update) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSubmissionTimeout
	}
	fields := []zap.Field{
		zap.String("id", cfg.SubmissionID),
		zap.String("url", cfg.BaseURL),
		zap.String("number", number),
	}
	logger.Info(ctx, "starting submission", fields...)

	if emit(ctx, updates, StateUpdate(StateRunning)) != nil || emit(ctx, updates, Save()) != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := Validate(runCtx, cfg, suite, number, updates)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		logger.Info(ctx, "submission timed out", fields...)
		_ = emit(ctx, updates, LogLine("Timed out"))
		_ = emit(ctx, updates, StateUpdate(StateDone))
		_ = emit(ctx, updates, Save())
	}
	logger.Info(ctx, "completed submission", fields...)
}

// Validate runs one challenge and reports its outcome. Unknown numbers only
// produce a log line. When ctx ends first the context error is returned and
// nothing further is reported.
func Validate(ctx context.Context, cfg Config, suite *Suite, number string, updates chan<- Update) error {
	challenge, ok := suite.Lookup(number)
	if !ok {
		line := fmt.Sprintf("Validating Challenge %s is not supported yet! Check for updates.", number)
		if err := emit(ctx, updates, LogLine(line)); err != nil {
			return err
		}
		return pkgerrors.Newf(pkgerrors.ChallengeUnsupported, "challenge %s is not supported", number)
	}

	session := NewSession(cfg.BaseURL, cfg.SubmissionID, updates, cfg.Sleeper, cfg.Client)
	err := challenge.Validate(ctx, session)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		var failed TaskTest
		if !errors.As(err, &failed) {
			failed = session.Current()
		}
		logger.Info(ctx, "submission failed",
			zap.String("url", cfg.BaseURL),
			zap.String("number", number),
			zap.Int("task", failed.Task),
			zap.Int("test", failed.Test),
			zap.Error(err),
		)
		if err := emit(ctx, updates, LogLine(failed.Error())); err != nil {
			return err
		}
	}
	if err := emit(ctx, updates, StateUpdate(StateDone)); err != nil {
		return err
	}
	if err := emit(ctx, updates, Save()); err != nil {
		return err
	}
	return err
}

func emit(ctx context.Context, updates chan<- Update, u Update) error {
	select {
	case updates <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
