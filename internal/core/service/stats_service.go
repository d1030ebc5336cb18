package service

import (
	"context"
	"fmt"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// StatsService loads the collections and runs the pure aggregation helpers.
type StatsService struct {
	donations ports.DonationRepository
	users     ports.UserRepository
	clock     ports.Clock
}

func NewStatsService(donations ports.DonationRepository, users ports.UserRepository, clock ports.Clock) *StatsService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StatsService{donations: donations, users: users, clock: clock}
}

func (s *StatsService) Overview(ctx context.Context) (*ports.Overview, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	ds, err := s.allDonations(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	o := BuildOverview(users, ds, s.clock.Now())
	return &o, nil
}

func (s *StatsService) DonorSummary(ctx context.Context, donorID string) (*ports.DonorSummary, error) {
	ds, err := s.donations.List(ctx, ports.DonationFilter{DonorID: donorID})
	if err != nil {
		return nil, fmt.Errorf("donor summary: %w", err)
	}
	sum := SummarizeDonor(ds, donorID, s.clock.Now())
	return &sum, nil
}

func (s *StatsService) VolunteerSummary(ctx context.Context, volunteerID string) (*ports.VolunteerSummary, error) {
	ds, err := s.allDonations(ctx)
	if err != nil {
		return nil, fmt.Errorf("volunteer summary: %w", err)
	}
	sum := SummarizeVolunteer(ds, volunteerID, s.clock.Now())
	return &sum, nil
}

func (s *StatsService) UserActivity(ctx context.Context) ([]ports.UserActivity, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user activity: %w", err)
	}
	ds, err := s.allDonations(ctx)
	if err != nil {
		return nil, fmt.Errorf("user activity: %w", err)
	}
	return BuildUserActivity(users, ds), nil
}

func (s *StatsService) allDonations(ctx context.Context) ([]*domain.Donation, error) {
	return s.donations.List(ctx, ports.DonationFilter{})
}
