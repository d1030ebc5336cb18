package domain

import "time"

// EventType names a successful lifecycle step worth telling people about.
type EventType string

const (
	EventCreated   EventType = "donation.created"
	EventClaimed   EventType = "donation.claimed"
	EventDelivered EventType = "donation.delivered"
)

// DonationEvent is handed to the notification sink after a transition commits.
type DonationEvent struct {
	Type       EventType
	DonationID string
	Title      string
	Address    string
	Actor      Identity
	DonorID    string
	OccurredAt time.Time
}
