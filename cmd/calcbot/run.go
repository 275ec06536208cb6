package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jdelaire/calcbot/adapters/telegram_notifier"
	"github.com/jdelaire/calcbot/adapters/telegram_receiver"
	"github.com/jdelaire/calcbot/core"
	"github.com/jdelaire/calcbot/core/ops"
	"github.com/jdelaire/calcbot/core/policy"
	"github.com/jdelaire/calcbot/core/ratelimit"
	"github.com/jdelaire/calcbot/internal/config"
	"github.com/jdelaire/calcbot/internal/keychain"
	"github.com/jdelaire/calcbot/internal/logging"
	"github.com/jdelaire/calcbot/internal/metrics"
)

// runBot polls Telegram until ctx is cancelled. Configuration errors,
// including a missing token, are returned before the loop starts.
func runBot(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if err := config.ResolveToken(&cfg, keychain.Token); err != nil {
		return err
	}

	receiver := telegram_receiver.New(cfg.Token, logger).
		WithBaseURL(cfg.BaseURL).
		WithTimeout(cfg.FetchTimeout)
	notifier := telegram_notifier.New(cfg.Token).WithBaseURL(cfg.BaseURL)

	poller := core.NewPoller(receiver, core.NewInterpreter(ops.Builtin()), notifier, logger).
		WithIntervals(cfg.PollInterval, cfg.ErrorBackoff).
		WithPolicy(policy.New(cfg.AllowedChats)).
		WithThrottle(ratelimit.New(cfg.SendRate, cfg.SendBurst))

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	logger.Info("calcbot started",
		"allowed_chats", len(cfg.AllowedChats),
		"metrics_addr", cfg.MetricsAddr,
	)
	state := poller.Run(ctx, core.PollState{})
	logger.Info("calcbot stopped", "last_seen", state.LastSeen)
	return nil
}
