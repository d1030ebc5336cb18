package domain

import (
	"fmt"
	"strings"
	"time"
)

// DonationStatus represents the lifecycle state of a donation.
type DonationStatus string

const (
	StatusOpen      DonationStatus = "open"
	StatusClaimed   DonationStatus = "claimed"
	StatusDelivered DonationStatus = "delivered"
	StatusExpired   DonationStatus = "expired"
)

// AllStatuses lists every status in display order.
var AllStatuses = []DonationStatus{StatusOpen, StatusClaimed, StatusDelivered, StatusExpired}

// validTransitions defines the explicit state machine transitions.
// Expiry is derived from the clock and never appears here.
var validTransitions = map[DonationStatus][]DonationStatus{
	StatusOpen:    {StatusClaimed},
	StatusClaimed: {StatusDelivered},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseStatus converts a query value into a DonationStatus.
func ParseStatus(s string) (DonationStatus, error) {
	switch st := DonationStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusOpen, StatusClaimed, StatusDelivered, StatusExpired:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Location is a pickup point. The address and coordinates are stored as given.
type Location struct {
	Address     string      `json:"address" bson:"address"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
}

// Donation is the core aggregate root: one offer of surplus food.
type Donation struct {
	ID          string         `json:"id" bson:"_id"`
	DonorID     string         `json:"donor_id" bson:"donor_id"`
	DonorName   string         `json:"donor_name" bson:"donor_name"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Quantity    string         `json:"quantity" bson:"quantity"`
	Location    Location       `json:"location" bson:"location"`
	ImageURL    string         `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Status      DonationStatus `json:"status" bson:"status"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	ExpiryTime  time.Time      `json:"expiry_time" bson:"expiry_time"`

	ClaimedBy     string     `json:"claimed_by,omitempty" bson:"claimed_by,omitempty"`
	VolunteerName string     `json:"volunteer_name,omitempty" bson:"volunteer_name,omitempty"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty" bson:"claimed_at,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
}

// EffectiveStatus returns the status of d as observed at now. A donation that
// has not been delivered is expired once now reaches its expiry time, whatever
// its stored status says. Every read of a donation's status goes through here.
func EffectiveStatus(d *Donation, now time.Time) DonationStatus {
	if d.Status == StatusDelivered {
		return StatusDelivered
	}
	if !now.Before(d.ExpiryTime) {
		return StatusExpired
	}
	return d.Status
}

// hasClaim reports whether the claim fields are populated. The second result
// is false when they are only partially populated.
func (d *Donation) hasClaim() (claimed bool, consistent bool) {
	set := 0
	if d.ClaimedBy != "" {
		set++
	}
	if d.VolunteerName != "" {
		set++
	}
	if d.ClaimedAt != nil {
		set++
	}
	return set == 3, set == 0 || set == 3
}

// Validate checks the record-level invariants: claim attribution is all or
// nothing, delivery implies a claim, and the stored status agrees with the
// populated fields.
func (d *Donation) Validate() error {
	claimed, consistent := d.hasClaim()
	if !consistent {
		return fmt.Errorf("%w: claim fields must be set together", ErrInconsistentDonation)
	}
	delivered := d.DeliveredAt != nil
	if delivered && !claimed {
		return fmt.Errorf("%w: delivered without claim", ErrInconsistentDonation)
	}

	switch d.Status {
	case StatusOpen, StatusExpired:
		if claimed || delivered {
			return fmt.Errorf("%w: status %s with claim data", ErrInconsistentDonation, d.Status)
		}
	case StatusClaimed:
		if !claimed || delivered {
			return fmt.Errorf("%w: status claimed requires claim and no delivery", ErrInconsistentDonation)
		}
	case StatusDelivered:
		if !claimed || !delivered {
			return fmt.Errorf("%w: status delivered requires claim and delivery", ErrInconsistentDonation)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInconsistentDonation, d.Status)
	}
	return nil
}

// Claim returns a copy of d claimed by volunteer at ts.
func (d Donation) Claim(volunteer Identity, ts time.Time) Donation {
	claimedAt := ts
	d.Status = StatusClaimed
	d.ClaimedBy = volunteer.ID
	d.VolunteerName = volunteer.Name
	d.ClaimedAt = &claimedAt
	return d
}

// Deliver returns a copy of d delivered at ts.
func (d Donation) Deliver(ts time.Time) Donation {
	deliveredAt := ts
	d.Status = StatusDelivered
	d.DeliveredAt = &deliveredAt
	return d
}
