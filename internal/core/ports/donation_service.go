package ports

import (
	"context"
	"time"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// CreateDonationInput carries all data needed to offer a new donation.
type CreateDonationInput struct {
	Donor          domain.Identity
	Title          string
	Description    string
	Quantity       string
	ExpiryTime     time.Time
	Address        string
	Lat            float64
	Lng            float64
	ImageURL       string
	IdempotencyKey string
}

// DonationView is a donation paired with its effective status at read time.
type DonationView struct {
	Donation        domain.Donation
	EffectiveStatus domain.DonationStatus
}

// CreateDonationResult is returned by CreateDonation.
type CreateDonationResult struct {
	DonationView
	// AlreadyExisted is true when the idempotency key matched an earlier create.
	AlreadyExisted bool
}

// ListDonationsInput carries the list endpoint query.
type ListDonationsInput struct {
	Status     domain.DonationStatus // optional, compared against effective status
	DonorID    string
	ClaimantID string
}

// DonationService defines the donation lifecycle use cases.
type DonationService interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error)
	GetDonation(ctx context.Context, id string) (*DonationView, error)
	ListDonations(ctx context.Context, input ListDonationsInput) ([]DonationView, error)
	Claim(ctx context.Context, id string, volunteer domain.Identity) (*DonationView, error)
	MarkDelivered(ctx context.Context, id string, caller domain.Identity) (*DonationView, error)
}
