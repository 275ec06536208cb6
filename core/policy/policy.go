package policy

import "fmt"

// Policy authorizes inbound messages against an optional chat allowlist.
type Policy struct {
	allowed map[int64]bool
}

// New creates a Policy that authorizes only the given chat IDs.
// An empty list authorizes every chat.
func New(chatIDs []int64) *Policy {
	allowed := make(map[int64]bool, len(chatIDs))
	for _, id := range chatIDs {
		allowed[id] = true
	}
	return &Policy{allowed: allowed}
}

// Authorize checks whether a message from chatID should be answered.
func (p *Policy) Authorize(chatID int64) error {
	if len(p.allowed) == 0 || p.allowed[chatID] {
		return nil
	}
	return fmt.Errorf("unauthorized chat: %d", chatID)
}
