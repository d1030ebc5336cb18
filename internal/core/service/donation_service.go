package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// DonationService owns every donation status transition. It holds no donation
// state of its own; the repository is the single source of truth.
type DonationService struct {
	repo     ports.DonationRepository
	idem     ports.IdempotencyStore
	notifier ports.Notifier
	clock    ports.Clock
	logger   zerolog.Logger
}

// NewDonationService wires the lifecycle manager. idem and notifier may be nil;
// a nil clock falls back to SystemClock.
func NewDonationService(
	repo ports.DonationRepository,
	idem ports.IdempotencyStore,
	notifier ports.Notifier,
	clock ports.Clock,
	logger zerolog.Logger,
) *DonationService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DonationService{
		repo:     repo,
		idem:     idem,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// CreateDonation offers a new donation. If an idempotency key is provided and
// the same donor already used it, the previously created donation is returned
// without side effects.
func (s *DonationService) CreateDonation(ctx context.Context, input ports.CreateDonationInput) (*ports.CreateDonationResult, error) {
	if !input.Donor.Role.Can(domain.ActionCreateDonation) {
		return nil, fmt.Errorf("create donation: %w", domain.ErrForbidden)
	}

	var idemKey string
	if input.IdempotencyKey != "" && s.idem != nil && input.Donor.ID != "" {
		idemKey = input.Donor.ID + ":" + input.IdempotencyKey
		if existing := s.replay(ctx, idemKey); existing != nil {
			return s.replayed(existing), nil
		}
	}

	now := s.clock.Now().UTC()
	if err := validateCreate(input, now); err != nil {
		return nil, err
	}

	donation := &domain.Donation{
		ID:          uuid.NewString(),
		DonorID:     input.Donor.ID,
		DonorName:   input.Donor.Name,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Quantity:    strings.TrimSpace(input.Quantity),
		Location: domain.Location{
			Address:     strings.TrimSpace(input.Address),
			Coordinates: domain.Coordinates{Lat: input.Lat, Lng: input.Lng},
		},
		ImageURL:   input.ImageURL,
		Status:     domain.StatusOpen,
		CreatedAt:  now,
		ExpiryTime: input.ExpiryTime.UTC(),
	}

	reserved := false
	if idemKey != "" {
		ok, err := s.idem.Reserve(ctx, idemKey, donation.ID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("idempotency reserve failed, creating anyway")
		case !ok:
			// Another request with this key got there first.
			if existing := s.replay(ctx, idemKey); existing != nil {
				return s.replayed(existing), nil
			}
			return nil, fmt.Errorf("create donation: %w: request with this idempotency key is in progress", domain.ErrDuplicateDonation)
		default:
			reserved = true
		}
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		s.logger.Error().Err(err).Msg("failed to create donation")
		if reserved {
			if rerr := s.idem.Release(ctx, idemKey); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", input.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create donation: %w", err)
	}

	s.notify(ctx, domain.EventCreated, donation, input.Donor, now)
	s.logger.Info().Str("donation_id", donation.ID).Str("donor_id", donation.DonorID).Msg("donation created")

	return &ports.CreateDonationResult{DonationView: view(donation, now)}, nil
}

func (s *DonationService) replayed(d *domain.Donation) *ports.CreateDonationResult {
	return &ports.CreateDonationResult{
		DonationView:   view(d, s.clock.Now()),
		AlreadyExisted: true,
	}
}

// replay resolves a donor-scoped key to the donation it produced. A key whose
// donation is not stored yet (create still in flight) yields nil.
func (s *DonationService) replay(ctx context.Context, key string) *domain.Donation {
	id, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug().Err(err).Str("idempotency_key", key).Msg("idempotency key has no stored donation yet")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("donation_id", existing.ID).Msg("idempotent replay")
	return existing
}

func validateCreate(in ports.CreateDonationInput, now time.Time) error {
	var missing []string
	if in.Donor.ID == "" {
		missing = append(missing, "donor")
	}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		missing = append(missing, "quantity")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if in.ExpiryTime.IsZero() {
		missing = append(missing, "expiry_time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	if !in.ExpiryTime.After(now) {
		return fmt.Errorf("%w: expiry time must be in the future", domain.ErrValidation)
	}
	return nil
}

// GetDonation returns a single donation with its effective status.
func (s *DonationService) GetDonation(ctx context.Context, id string) (*ports.DonationView, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	v := view(d, s.clock.Now())
	return &v, nil
}

// ListDonations returns the donations matching input, filtering on effective status.
func (s *DonationService) ListDonations(ctx context.Context, input ports.ListDonationsInput) ([]ports.DonationView, error) {
	all, err := s.repo.List(ctx, ports.DonationFilter{DonorID: input.DonorID, ClaimantID: input.ClaimantID})
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}

	now := s.clock.Now()
	matched := FilterDonations(all, DonationQuery{
		Status:     input.Status,
		DonorID:    input.DonorID,
		ClaimantID: input.ClaimantID,
	}, now)

	out := make([]ports.DonationView, len(matched))
	for i, d := range matched {
		out[i] = view(d, now)
	}
	return out, nil
}

// Claim reserves an open, unexpired donation for volunteer. Of two concurrent
// claims only the first to reach the repository wins.
func (s *DonationService) Claim(ctx context.Context, id string, volunteer domain.Identity) (*ports.DonationView, error) {
	if volunteer.ID == "" || strings.TrimSpace(volunteer.Name) == "" {
		return nil, fmt.Errorf("claim donation: %w: volunteer identity is required", domain.ErrValidation)
	}
	if !volunteer.Role.Can(domain.ActionClaimDonation) {
		return nil, fmt.Errorf("claim donation: %w", domain.ErrForbidden)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("claim donation: %w", err)
	}

	now := s.clock.Now().UTC()
	if eff := domain.EffectiveStatus(current, now); !eff.CanTransitionTo(domain.StatusClaimed) {
		return nil, fmt.Errorf("claim donation: %w (donation %s is %s)", domain.ErrInvalidTransition, id, eff)
	}

	next := current.Claim(volunteer, now)
	if err := s.commit(ctx, current.Status, &next); err != nil {
		return nil, fmt.Errorf("claim donation: %w", err)
	}

	s.notify(ctx, domain.EventClaimed, &next, volunteer, now)
	s.logger.Info().Str("donation_id", id).Str("volunteer_id", volunteer.ID).Msg("donation claimed")

	v := view(&next, now)
	return &v, nil
}

// MarkDelivered completes a claimed donation. Only the claimant may do so.
func (s *DonationService) MarkDelivered(ctx context.Context, id string, caller domain.Identity) (*ports.DonationView, error) {
	if !caller.Role.Can(domain.ActionDeliverDonation) {
		return nil, fmt.Errorf("deliver donation: %w", domain.ErrForbidden)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deliver donation: %w", err)
	}

	now := s.clock.Now().UTC()
	if eff := domain.EffectiveStatus(current, now); !eff.CanTransitionTo(domain.StatusDelivered) {
		return nil, fmt.Errorf("deliver donation: %w (donation %s is %s)", domain.ErrInvalidTransition, id, eff)
	}
	if current.ClaimedBy != caller.ID {
		return nil, fmt.Errorf("deliver donation: %w: only the claimant can mark it delivered", domain.ErrForbidden)
	}

	next := current.Deliver(now)
	if err := s.commit(ctx, current.Status, &next); err != nil {
		return nil, fmt.Errorf("deliver donation: %w", err)
	}

	s.notify(ctx, domain.EventDelivered, &next, caller, now)
	s.logger.Info().Str("donation_id", id).Str("volunteer_id", caller.ID).Msg("donation delivered")

	v := view(&next, now)
	return &v, nil
}

// commit checks the record invariants and swaps next in if nobody moved the
// donation away from expected in the meantime.
func (s *DonationService) commit(ctx context.Context, expected domain.DonationStatus, next *domain.Donation) error {
	if err := next.Validate(); err != nil {
		return err
	}
	return s.repo.CompareAndSwap(ctx, next.ID, expected, next)
}

func (s *DonationService) notify(ctx context.Context, t domain.EventType, d *domain.Donation, actor domain.Identity, at time.Time) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, domain.DonationEvent{
		Type:       t,
		DonationID: d.ID,
		Title:      d.Title,
		Address:    d.Location.Address,
		Actor:      actor,
		DonorID:    d.DonorID,
		OccurredAt: at,
	})
}

func view(d *domain.Donation, now time.Time) ports.DonationView {
	return ports.DonationView{Donation: *d, EffectiveStatus: domain.EffectiveStatus(d, now)}
}
