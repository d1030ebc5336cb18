package service

import (
	"math"
	"sort"
	"time"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// DonationQuery selects donations by effective status and attribution.
// Zero fields match everything.
type DonationQuery struct {
	Status     domain.DonationStatus
	DonorID    string
	ClaimantID string
}

// FilterDonations returns the donations matching q at now, newest first.
func FilterDonations(ds []*domain.Donation, q DonationQuery, now time.Time) []*domain.Donation {
	out := make([]*domain.Donation, 0, len(ds))
	for _, d := range ds {
		if q.DonorID != "" && d.DonorID != q.DonorID {
			continue
		}
		if q.ClaimantID != "" && d.ClaimedBy != q.ClaimantID {
			continue
		}
		if q.Status != "" && domain.EffectiveStatus(d, now) != q.Status {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// CountByStatus tallies donations by effective status. Every status is present.
func CountByStatus(ds []*domain.Donation, now time.Time) map[domain.DonationStatus]int {
	counts := make(map[domain.DonationStatus]int, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		counts[st] = 0
	}
	for _, d := range ds {
		counts[domain.EffectiveStatus(d, now)]++
	}
	return counts
}

// CountByRole tallies users by role. Every role is present.
func CountByRole(users []*domain.User) map[domain.Role]int {
	counts := make(map[domain.Role]int, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		counts[r] = 0
	}
	for _, u := range users {
		counts[u.Role]++
	}
	return counts
}

// SuccessRate returns delivered/total as a whole percentage, 0 when total is 0.
func SuccessRate(delivered, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(delivered) * 100 / float64(total)))
}

// SummarizeDonor computes the donor dashboard counters for donorID.
func SummarizeDonor(ds []*domain.Donation, donorID string, now time.Time) ports.DonorSummary {
	mine := FilterDonations(ds, DonationQuery{DonorID: donorID}, now)
	counts := CountByStatus(mine, now)
	return ports.DonorSummary{
		Total:     len(mine),
		Open:      counts[domain.StatusOpen],
		Claimed:   counts[domain.StatusClaimed],
		Delivered: counts[domain.StatusDelivered],
		Expired:   counts[domain.StatusExpired],
	}
}

// SummarizeVolunteer computes the volunteer dashboard counters: donations
// anyone can still claim, and this volunteer's own claims by status.
func SummarizeVolunteer(ds []*domain.Donation, volunteerID string, now time.Time) ports.VolunteerSummary {
	available := CountByStatus(ds, now)[domain.StatusOpen]
	mine := CountByStatus(FilterDonations(ds, DonationQuery{ClaimantID: volunteerID}, now), now)
	return ports.VolunteerSummary{
		Available: available,
		Claimed:   mine[domain.StatusClaimed],
		Delivered: mine[domain.StatusDelivered],
	}
}

// BuildOverview computes the admin dashboard counters.
func BuildOverview(users []*domain.User, ds []*domain.Donation, now time.Time) ports.Overview {
	roles := CountByRole(users)
	statuses := CountByStatus(ds, now)
	return ports.Overview{
		TotalUsers:         len(users),
		Donors:             roles[domain.RoleDonor],
		Volunteers:         roles[domain.RoleVolunteer],
		Admins:             roles[domain.RoleAdmin],
		TotalDonations:     len(ds),
		ActiveDonations:    statuses[domain.StatusOpen] + statuses[domain.StatusClaimed],
		CompletedDonations: statuses[domain.StatusDelivered],
		ExpiredDonations:   statuses[domain.StatusExpired],
		SuccessRate:        SuccessRate(statuses[domain.StatusDelivered], len(ds)),
		ByStatus:           statuses,
	}
}

// BuildUserActivity pairs each user with the number of donations they made
// and claims they hold.
func BuildUserActivity(users []*domain.User, ds []*domain.Donation) []ports.UserActivity {
	donated := make(map[string]int)
	claimed := make(map[string]int)
	for _, d := range ds {
		donated[d.DonorID]++
		if d.ClaimedBy != "" {
			claimed[d.ClaimedBy]++
		}
	}

	out := make([]ports.UserActivity, 0, len(users))
	for _, u := range users {
		a := ports.UserActivity{User: *u}
		switch u.Role {
		case domain.RoleDonor:
			a.TotalDonations = donated[u.ID]
		case domain.RoleVolunteer:
			a.TotalClaims = claimed[u.ID]
		case domain.RoleAdmin:
		}
		out = append(out, a)
	}
	return out
}
