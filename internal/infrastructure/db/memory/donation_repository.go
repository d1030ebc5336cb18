// Package memory provides process-local repositories. They are the default
// store and the one the service tests run against.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

type donationRecord struct {
	mu       sync.Mutex
	donation domain.Donation
}

// DonationRepository keeps donations in a map guarded per record, so claims on
// different donations never contend.
type DonationRepository struct {
	mu      sync.RWMutex
	records map[string]*donationRecord
}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{records: make(map[string]*donationRecord)}
}

func (r *DonationRepository) Create(_ context.Context, d *domain.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[d.ID]; ok {
		return domain.ErrDuplicateDonation
	}
	r.records[d.ID] = &donationRecord{donation: *d}
	return nil
}

func (r *DonationRepository) record(id string) (*donationRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	return rec, ok
}

func (r *DonationRepository) FindByID(_ context.Context, id string) (*domain.Donation, error) {
	rec, ok := r.record(id)
	if !ok {
		return nil, domain.ErrDonationNotFound
	}
	rec.mu.Lock()
	clone := rec.donation
	rec.mu.Unlock()
	return &clone, nil
}

func (r *DonationRepository) List(_ context.Context, f ports.DonationFilter) ([]*domain.Donation, error) {
	r.mu.RLock()
	recs := make([]*donationRecord, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	out := make([]*domain.Donation, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		clone := rec.donation
		rec.mu.Unlock()

		if f.DonorID != "" && clone.DonorID != f.DonorID {
			continue
		}
		if f.ClaimantID != "" && clone.ClaimedBy != f.ClaimantID {
			continue
		}
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DonationRepository) CompareAndSwap(_ context.Context, id string, expected domain.DonationStatus, next *domain.Donation) error {
	rec, ok := r.record(id)
	if !ok {
		return domain.ErrDonationNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.donation.Status != expected {
		return domain.ErrInvalidTransition
	}
	rec.donation = *next
	return nil
}
