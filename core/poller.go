package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jdelaire/calcbot/core/policy"
	"github.com/jdelaire/calcbot/core/ratelimit"
	"github.com/jdelaire/calcbot/internal/metrics"
)

const (
	defaultPollInterval = time.Second
	defaultErrorBackoff = 2 * time.Second
	sendTimeout         = 10 * time.Second
)

// Stages reported in StepError.
const (
	StageFetch = "fetch"
	StageSend  = "send"
	StagePanic = "panic"
)

// PollState is the loop state threaded through Step. LastSeen is the
// timestamp of the last message handed to the interpreter.
type PollState struct {
	LastSeen time.Time
}

// StepError reports which stage of a poll iteration failed. Fetch failures
// are retried after the normal interval; every other stage after the error
// backoff.
type StepError struct {
	Stage string
	Err   error
}

func (e *StepError) Error() string { return e.Stage + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

// Poller drives fetch → interpret → send on a fixed interval.
type Poller struct {
	fetcher  Fetcher
	interp   *Interpreter
	notifier Notifier
	policy   *policy.Policy
	throttle *ratelimit.Limiter
	logger   *slog.Logger
	interval time.Duration
	backoff  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// NewPoller creates a Poller with a 1s interval and a 2s error backoff.
func NewPoller(fetcher Fetcher, interp *Interpreter, notifier Notifier, logger *slog.Logger) *Poller {
	return &Poller{
		fetcher:  fetcher,
		interp:   interp,
		notifier: notifier,
		logger:   logger,
		interval: defaultPollInterval,
		backoff:  defaultErrorBackoff,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// WithPolicy restricts replies to chats the policy authorizes.
func (p *Poller) WithPolicy(pol *policy.Policy) *Poller {
	p.policy = pol
	return p
}

// WithThrottle paces replies per chat.
func (p *Poller) WithThrottle(l *ratelimit.Limiter) *Poller {
	p.throttle = l
	return p
}

// WithIntervals overrides the poll interval and the error backoff.
// Non-positive values keep the current setting.
func (p *Poller) WithIntervals(interval, backoff time.Duration) *Poller {
	if interval > 0 {
		p.interval = interval
	}
	if backoff > 0 {
		p.backoff = backoff
	}
	return p
}

// WithSleep replaces the sleep between iterations (for testing).
func (p *Poller) WithSleep(fn func(ctx context.Context, d time.Duration) error) *Poller {
	p.sleep = fn
	return p
}

// Run polls until ctx is cancelled and returns the final state. Errors never
// end the loop.
func (p *Poller) Run(ctx context.Context, state PollState) PollState {
	p.logger.Info("poll loop started", "interval", p.interval)
	for {
		if ctx.Err() != nil {
			p.logger.Info("poll loop stopped")
			return state
		}

		next, err := p.safeStep(ctx, state)
		state = next

		wait := p.interval
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("poll loop stopped")
				return state
			}
			wait = p.classify(err)
		}

		if err := p.sleep(ctx, wait); err != nil {
			p.logger.Info("poll loop stopped")
			return state
		}
	}
}

// Step runs one iteration. A message whose timestamp is not after
// state.LastSeen is dropped before it reaches the interpreter. LastSeen is
// advanced before the message is handled, so a message that fails to
// produce or deliver a reply is not retried.
func (p *Poller) Step(ctx context.Context, state PollState) (PollState, error) {
	msg, err := p.fetcher.FetchLatest(ctx)
	if err != nil {
		return state, &StepError{Stage: StageFetch, Err: err}
	}

	if !msg.Timestamp.After(state.LastSeen) {
		metrics.UpdatesTotal.WithLabelValues("skipped").Inc()
		return state, nil
	}
	state.LastSeen = msg.Timestamp

	return state, p.handle(ctx, msg)
}

func (p *Poller) handle(ctx context.Context, msg InboundMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &StepError{Stage: StagePanic, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if p.policy != nil {
		if err := p.policy.Authorize(msg.ChatID); err != nil {
			metrics.UpdatesTotal.WithLabelValues("rejected").Inc()
			p.logger.Debug("message rejected by policy", "chat_id", msg.ChatID, "error", err)
			return nil
		}
	}
	metrics.UpdatesTotal.WithLabelValues("processed").Inc()
	p.logger.Info("message received", "chat_id", msg.ChatID, "update_id", msg.UpdateID, "text", msg.Text)

	reply := p.interp.Interpret(ctx, msg.Text)
	metrics.CommandsTotal.WithLabelValues(reply.Command).Inc()
	if reply.Text == "" {
		return nil
	}

	if err := p.send(ctx, msg.ChatID, reply.Text); err != nil {
		return &StepError{Stage: StageSend, Err: err}
	}
	return nil
}

func (p *Poller) send(ctx context.Context, chatID int64, text string) error {
	if p.throttle != nil {
		if err := p.throttle.Wait(ctx, chatID); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}
	}

	n := Notification{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Text:      text,
		Source:    "poller",
		CreatedAt: p.now(),
	}
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := p.notifier.Send(sendCtx, n); err != nil {
		return fmt.Errorf("%s: %w", p.notifier.Name(), err)
	}

	metrics.RepliesSentTotal.Inc()
	p.logger.Info("reply sent", "id", n.ID, "chat_id", chatID, "notifier", p.notifier.Name())
	return nil
}

// safeStep turns a panic anywhere in Step into an error.
func (p *Poller) safeStep(ctx context.Context, state PollState) (next PollState, err error) {
	next = state
	defer func() {
		if r := recover(); r != nil {
			err = &StepError{Stage: StagePanic, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return p.Step(ctx, state)
}

// classify logs err and returns how long to wait before the next iteration.
func (p *Poller) classify(err error) time.Duration {
	var se *StepError
	if !errors.As(err, &se) {
		se = &StepError{Stage: StagePanic, Err: err}
	}

	if se.Stage == StageFetch {
		if errors.Is(err, ErrNoUpdate) {
			return p.interval
		}
		metrics.PollErrorsTotal.WithLabelValues(StageFetch).Inc()
		p.logger.Debug("fetch failed", "error", err)
		return p.interval
	}

	metrics.PollErrorsTotal.WithLabelValues(se.Stage).Inc()
	p.logger.Error("poll iteration failed", "stage", se.Stage, "error", se.Err)
	return p.backoff
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
