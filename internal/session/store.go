package session

import (
	"context"
	"time"

	"github.com/lamnt/koctrack-backend/internal/app/model"
)

// Session is the server-side state behind an opaque bearer token.
type Session struct {
	UserID   string         `json:"userId"`
	Username string         `json:"username"`
	Role     model.UserRole `json:"role"`
	IssuedAt time.Time      `json:"issuedAt"`
}

// Store keeps issued sessions keyed by token. Implementations must treat
// Delete as idempotent and never return an expired session from Get.
type Store interface {
	Put(ctx context.Context, token string, sess Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	// Prune drops expired sessions. Backends with native TTL may no-op.
	Prune(ctx context.Context) error
}
