package domain

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openDonation() *Donation {
	return &Donation{
		ID:         "d1",
		DonorID:    "u1",
		DonorName:  "Ana",
		Title:      "Bread",
		Quantity:   "10 loaves",
		Location:   Location{Address: "1 Main St"},
		Status:     StatusOpen,
		CreatedAt:  t0,
		ExpiryTime: t0.Add(time.Hour),
	}
}

func TestEffectiveStatus(t *testing.T) {
	vol := Identity{ID: "v1", Name: "Vic", Role: RoleVolunteer}
	open := openDonation()
	claimed := open.Claim(vol, t0)
	delivered := claimed.Deliver(t0.Add(time.Minute))

	tests := []struct {
		name string
		d    *Donation
		now  time.Time
		want DonationStatus
	}{
		{"open before expiry", open, t0.Add(59 * time.Minute), StatusOpen},
		{"open at expiry", open, t0.Add(time.Hour), StatusExpired},
		{"open after expiry", open, t0.Add(2 * time.Hour), StatusExpired},
		{"claimed before expiry", &claimed, t0.Add(time.Minute), StatusClaimed},
		{"claimed after expiry", &claimed, t0.Add(2 * time.Hour), StatusExpired},
		{"delivered after expiry", &delivered, t0.Add(48 * time.Hour), StatusDelivered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveStatus(tt.d, tt.now); got != tt.want {
				t.Fatalf("EffectiveStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to DonationStatus
		want     bool
	}{
		{StatusOpen, StatusClaimed, true},
		{StatusClaimed, StatusDelivered, true},
		{StatusOpen, StatusDelivered, false},
		{StatusClaimed, StatusClaimed, false},
		{StatusDelivered, StatusClaimed, false},
		{StatusExpired, StatusClaimed, false},
		{StatusOpen, StatusExpired, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestClaimAndDeliverKeepInvariants(t *testing.T) {
	vol := Identity{ID: "v1", Name: "Vic", Role: RoleVolunteer}
	open := openDonation()
	if err := open.Validate(); err != nil {
		t.Fatalf("open donation invalid: %v", err)
	}

	claimed := open.Claim(vol, t0.Add(time.Minute))
	if err := claimed.Validate(); err != nil {
		t.Fatalf("claimed donation invalid: %v", err)
	}
	if open.Status != StatusOpen || open.ClaimedBy != "" {
		t.Fatalf("Claim mutated the receiver: %+v", open)
	}

	delivered := claimed.Deliver(t0.Add(2 * time.Minute))
	if err := delivered.Validate(); err != nil {
		t.Fatalf("delivered donation invalid: %v", err)
	}
	if delivered.ClaimedBy != "v1" || delivered.VolunteerName != "Vic" {
		t.Fatalf("delivery lost claim attribution: %+v", delivered)
	}
}

func TestValidate_Inconsistent(t *testing.T) {
	ts := t0
	tests := []struct {
		name   string
		mutate func(d *Donation)
	}{
		{"partial claim", func(d *Donation) { d.ClaimedBy = "v1" }},
		{"open with claim", func(d *Donation) {
			d.ClaimedBy, d.VolunteerName, d.ClaimedAt = "v1", "Vic", &ts
		}},
		{"claimed without claim", func(d *Donation) { d.Status = StatusClaimed }},
		{"delivered without claim", func(d *Donation) {
			d.Status = StatusDelivered
			d.DeliveredAt = &ts
		}},
		{"unknown status", func(d *Donation) { d.Status = "lost" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openDonation()
			tt.mutate(d)
			if err := d.Validate(); !errors.Is(err, ErrInconsistentDonation) {
				t.Fatalf("expected ErrInconsistentDonation, got %v", err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if st, err := ParseStatus(" Claimed "); err != nil || st != StatusClaimed {
		t.Fatalf("ParseStatus = %q, %v", st, err)
	}
	if _, err := ParseStatus("pending"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles {
		got, err := ParseRole(string(r))
		if err != nil || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, err)
		}
	}
	if _, err := ParseRole("client"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRoleCan(t *testing.T) {
	tests := []struct {
		role Role
		act  Action
		want bool
	}{
		{RoleDonor, ActionCreateDonation, true},
		{RoleDonor, ActionClaimDonation, false},
		{RoleVolunteer, ActionClaimDonation, true},
		{RoleVolunteer, ActionDeliverDonation, true},
		{RoleVolunteer, ActionCreateDonation, false},
		{RoleAdmin, ActionViewOverview, true},
		{RoleAdmin, ActionClaimDonation, false},
		{Role("ghost"), ActionViewDonations, false},
	}
	for _, tt := range tests {
		if got := tt.role.Can(tt.act); got != tt.want {
			t.Errorf("%s.Can(%s) = %v, want %v", tt.role, tt.act, got, tt.want)
		}
	}
}
