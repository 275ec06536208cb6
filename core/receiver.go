package core

import (
	"context"
	"errors"
)

// ErrNoUpdate is returned by a Fetcher when there is no usable message:
// an empty update feed, or a newest update without chat, text or date.
var ErrNoUpdate = errors.New("no new update")

// Fetcher retrieves the most recent inbound message from the platform.
type Fetcher interface {
	FetchLatest(ctx context.Context) (InboundMessage, error)
}
