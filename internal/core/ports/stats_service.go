package ports

import (
	"context"

	"github.com/zerowaste/connect-share/internal/core/domain"
)

// Overview is the admin dashboard summary.
type Overview struct {
	TotalUsers         int
	Donors             int
	Volunteers         int
	Admins             int
	TotalDonations     int
	ActiveDonations    int
	CompletedDonations int
	ExpiredDonations   int
	SuccessRate        int
	ByStatus           map[domain.DonationStatus]int
}

// DonorSummary is the donor dashboard summary.
type DonorSummary struct {
	Total     int
	Open      int
	Claimed   int
	Delivered int
	Expired   int
}

// VolunteerSummary is the volunteer dashboard summary.
type VolunteerSummary struct {
	Available int
	Claimed   int
	Delivered int
}

// UserActivity is a user plus the read-only counters projected from donations.
type UserActivity struct {
	User           domain.User
	TotalDonations int
	TotalClaims    int
}

// StatsService computes dashboard aggregates.
type StatsService interface {
	Overview(ctx context.Context) (*Overview, error)
	DonorSummary(ctx context.Context, donorID string) (*DonorSummary, error)
	VolunteerSummary(ctx context.Context, volunteerID string) (*VolunteerSummary, error)
	UserActivity(ctx context.Context) ([]UserActivity, error)
}
