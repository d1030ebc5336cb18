// Package notify delivers donation lifecycle events to people. Sinks are
// driven by the queue dispatcher; a failing sink never affects the transition
// that produced the event.
package notify

import (
	"context"
	"fmt"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// Sink delivers one event somewhere.
type Sink interface {
	Name() string
	Send(ctx context.Context, event domain.DonationEvent) error
}

// Message renders event as a short human-readable line.
func Message(event domain.DonationEvent) string {
	switch event.Type {
	case domain.EventCreated:
		return fmt.Sprintf("🥗 New donation %q available for pickup at %s (offered by %s)",
			event.Title, event.Address, event.Actor.Name)
	case domain.EventClaimed:
		return fmt.Sprintf("✋ Donation %q claimed by %s", event.Title, event.Actor.Name)
	case domain.EventDelivered:
		return fmt.Sprintf("✅ Donation %q delivered by %s", event.Title, event.Actor.Name)
	default:
		return fmt.Sprintf("Donation %q: %s", event.Title, event.Type)
	}
}
