package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CALCBOT"

// Keys read through viper.
const (
	KeyTelegramToken   = "telegram.token"
	KeyTelegramBaseURL = "telegram.base_url"
	KeyPollInterval    = "poll.interval"
	KeyErrorBackoff    = "poll.error_backoff"
	KeyFetchTimeout    = "poll.fetch_timeout"
	KeySendRate        = "send.rate_per_chat"
	KeySendBurst       = "send.burst"
	KeyAllowedChats    = "policy.allowed_chats"
	KeyMetricsAddr     = "metrics.addr"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyLogFile         = "logging.file"
)

// ErrMissingToken is returned when no bot token is configured anywhere.
var ErrMissingToken = errors.New("telegram bot token not found: add TELEGRAM_TOKEN=<token> to .env or run `calcbot token set <token>`")

// Config holds all configuration for the bot.
type Config struct {
	Token   string
	BaseURL string

	PollInterval time.Duration
	ErrorBackoff time.Duration
	FetchTimeout time.Duration

	// Send throttle, per chat
	SendRate  float64
	SendBurst int

	AllowedChats []int64 // empty allows every chat
	MetricsAddr  string  // empty disables the metrics listener

	LogLevel  string
	LogFormat string
	LogFile   string // empty logs to stderr
}

// NewViper returns a viper instance with defaults and environment bindings.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTelegramBaseURL, "https://api.telegram.org")
	v.SetDefault(KeyPollInterval, time.Second)
	v.SetDefault(KeyErrorBackoff, 2*time.Second)
	v.SetDefault(KeyFetchTimeout, 10*time.Second)
	v.SetDefault(KeySendRate, 1.0)
	v.SetDefault(KeySendBurst, 3)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	_ = v.BindEnv(KeyTelegramToken, envPrefix+"_TELEGRAM_TOKEN", "TELEGRAM_TOKEN")
	_ = v.BindEnv(KeyAllowedChats)
	_ = v.BindEnv(KeyMetricsAddr)
	_ = v.BindEnv(KeyLogFile)
	return v
}

// ReadFile reads path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads .env from the working directory and from the directory
// of the running executable. Variables already set in the environment win.
// It returns the files that were loaded.
func LoadDotEnv() []string {
	candidates := []string{".env"}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), ".env"))
	}
	return loadDotEnv(candidates)
}

func loadDotEnv(candidates []string) []string {
	var loaded []string
	seen := make(map[string]bool)
	for _, path := range candidates {
		abs, err := filepath.Abs(path)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if err := godotenv.Load(abs); err == nil {
			loaded = append(loaded, abs)
		}
	}
	return loaded
}

// Load builds a Config from v and validates it. The token may be empty;
// use ResolveToken to fill it in from the keychain.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Token:        strings.TrimSpace(v.GetString(KeyTelegramToken)),
		BaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString(KeyTelegramBaseURL)), "/"),
		PollInterval: v.GetDuration(KeyPollInterval),
		ErrorBackoff: v.GetDuration(KeyErrorBackoff),
		FetchTimeout: v.GetDuration(KeyFetchTimeout),
		SendRate:     v.GetFloat64(KeySendRate),
		SendBurst:    v.GetInt(KeySendBurst),
		MetricsAddr:  strings.TrimSpace(v.GetString(KeyMetricsAddr)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		LogFile:      strings.TrimSpace(v.GetString(KeyLogFile)),
	}

	chats, err := parseChatIDs(v.GetStringSlice(KeyAllowedChats))
	if err != nil {
		return Config{}, err
	}
	cfg.AllowedChats = chats

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%s must not be empty", KeyTelegramBaseURL)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyPollInterval, c.PollInterval)
	}
	if c.ErrorBackoff <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyErrorBackoff, c.ErrorBackoff)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", KeyFetchTimeout, c.FetchTimeout)
	}
	if c.SendBurst < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeySendBurst, c.SendBurst)
	}
	return nil
}

// parseChatIDs accepts list entries and comma-separated strings, since env
// values arrive as a single string.
func parseChatIDs(raw []string) ([]int64, error) {
	var ids []int64
	for _, item := range raw {
		for _, field := range strings.Split(item, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid chat id %q", KeyAllowedChats, field)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ResolveToken fills cfg.Token from lookup when it is not already set.
// A lookup failure or empty result yields ErrMissingToken.
func ResolveToken(cfg *Config, lookup func() (string, error)) error {
	if cfg.Token != "" {
		return nil
	}
	if lookup != nil {
		if token, err := lookup(); err == nil && strings.TrimSpace(token) != "" {
			cfg.Token = strings.TrimSpace(token)
			return nil
		}
	}
	return ErrMissingToken
}
