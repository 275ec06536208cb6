package telegram_receiver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jdelaire/calcbot/core"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second
)

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message"`
}

// Optional fields are pointers so a missing field is distinguishable from a zero value.
type message struct {
	MessageID int64   `json:"message_id"`
	From      *user   `json:"from"`
	Chat      *chat   `json:"chat"`
	Date      *int64  `json:"date"`
	Text      *string `json:"text"`
}

type user struct {
	ID int64 `json:"id"`
}

type chat struct {
	ID *int64 `json:"id"`
}

// Receiver fetches the newest message from the Telegram Bot API.
type Receiver struct {
	botToken string
	logger   *slog.Logger
	client   *http.Client
	baseURL  string
}

// New creates a Telegram receiver.
func New(botToken string, logger *slog.Logger) *Receiver {
	return &Receiver{
		botToken: botToken,
		logger:   logger,
		client:   &http.Client{Timeout: defaultTimeout},
		baseURL:  defaultBaseURL,
	}
}

// WithBaseURL overrides the Telegram API base URL (for testing).
func (r *Receiver) WithBaseURL(baseURL string) *Receiver {
	r.baseURL = strings.TrimRight(baseURL, "/")
	return r
}

// WithTimeout overrides the per-request HTTP timeout.
func (r *Receiver) WithTimeout(d time.Duration) *Receiver {
	if d > 0 {
		r.client.Timeout = d
	}
	return r
}

// FetchLatest requests only the most recent update. It returns
// core.ErrNoUpdate when there is no message with chat, text and date, and a
// wrapped error for transport, status or decoding failures. Every failure is
// logged here so callers can treat them alike.
func (r *Receiver) FetchLatest(ctx context.Context) (core.InboundMessage, error) {
	msg, err := r.fetchLatest(ctx)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrNoUpdate):
		r.logger.Debug("no new update", "reason", err)
	case ctx.Err() != nil:
	default:
		r.logger.Error("fetch updates failed", "error", err)
	}
	return msg, err
}

func (r *Receiver) fetchLatest(ctx context.Context) (core.InboundMessage, error) {
	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?offset=-1&limit=1", r.baseURL, r.botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return core.InboundMessage{}, fmt.Errorf("create request: %w", redact(err))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return core.InboundMessage{}, fmt.Errorf("http get: %w", redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.InboundMessage{}, fmt.Errorf("api status: %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return core.InboundMessage{}, fmt.Errorf("decode response: %w", err)
	}

	if !apiResp.OK {
		return core.InboundMessage{}, fmt.Errorf("api returned ok=false: %s", apiResp.Description)
	}

	var updates []update
	if len(apiResp.Result) == 0 {
		return core.InboundMessage{}, fmt.Errorf("%w: no result field", core.ErrNoUpdate)
	}
	if err := json.Unmarshal(apiResp.Result, &updates); err != nil {
		return core.InboundMessage{}, fmt.Errorf("decode updates: %w", err)
	}

	if len(updates) == 0 {
		return core.InboundMessage{}, fmt.Errorf("%w: empty result", core.ErrNoUpdate)
	}

	u := updates[len(updates)-1]
	m := u.Message
	switch {
	case m == nil:
		return core.InboundMessage{}, fmt.Errorf("%w: update %d has no message", core.ErrNoUpdate, u.UpdateID)
	case m.Chat == nil || m.Chat.ID == nil:
		return core.InboundMessage{}, fmt.Errorf("%w: update %d has no chat", core.ErrNoUpdate, u.UpdateID)
	case m.Text == nil:
		return core.InboundMessage{}, fmt.Errorf("%w: update %d has no text", core.ErrNoUpdate, u.UpdateID)
	case m.Date == nil:
		return core.InboundMessage{}, fmt.Errorf("%w: update %d has no date", core.ErrNoUpdate, u.UpdateID)
	}

	var userID int64
	if m.From != nil {
		userID = m.From.ID
	}

	return core.InboundMessage{
		UpdateID:  u.UpdateID,
		ChatID:    *m.Chat.ID,
		UserID:    userID,
		Text:      *m.Text,
		Timestamp: time.Unix(*m.Date, 0),
	}, nil
}

// redact drops the request URL, which embeds the bot token, from transport errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
