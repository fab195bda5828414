package dialogue

import (
	"context"

	"roombook/models"
)

// SessionStore persists per-conversation state between turns. Get returns
// (nil, nil) for an unknown session; eviction on commit/cancel is explicit
// via Delete, idle eviction is the store's job.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.Conversation, error)
	Put(ctx context.Context, conv *models.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}
