package ports

import (
	"context"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// Notifier is told about committed lifecycle transitions. Implementations must
// not block the caller and the caller ignores the outcome.
type Notifier interface {
	Notify(ctx context.Context, event domain.DonationEvent)
}

// IdempotencyStore remembers which donation a client-supplied key produced.
// Keys arrive already scoped to the caller.
type IdempotencyStore interface {
	// Lookup returns the donation id stored under key, or found=false.
	Lookup(ctx context.Context, key string) (donationID string, found bool, err error)
	// Reserve binds key to donationID if the key is free. The first caller
	// wins; later callers get reserved=false until the key expires.
	Reserve(ctx context.Context, key, donationID string) (reserved bool, err error)
	// Release frees a key whose donation was never stored.
	Release(ctx context.Context, key string) error
}
