package ports

import (
	"context"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

// SessionStore is the durable credential store. Load returns
// domain.ErrSessionNotFound when no session is persisted.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}
