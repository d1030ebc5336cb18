package ports

import (
	"context"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// DonationFilter carries the stored-field filters a repository can apply.
// Effective status is time-dependent, so status filtering happens in the
// service layer after loading.
type DonationFilter struct {
	DonorID    string // optional
	ClaimantID string // optional
}

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	FindByID(ctx context.Context, id string) (*domain.Donation, error)
	// List returns donations matching filter, newest first.
	List(ctx context.Context, filter DonationFilter) ([]*domain.Donation, error)
	// CompareAndSwap replaces the stored donation with next only if its stored
	// status still equals expected. It returns domain.ErrInvalidTransition when
	// another writer got there first and domain.ErrDonationNotFound for an
	// unknown id.
	CompareAndSwap(ctx context.Context, id string, expected domain.DonationStatus, next *domain.Donation) error
}
