package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type coordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

type locationRequest struct {
	Address     string             `json:"address"      validate:"required"`
	Coordinates coordinatesRequest `json:"coordinates"`
}

type createDonationRequest struct {
	Title       string          `json:"title"       validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Quantity    string          `json:"quantity"    validate:"required,max=120"`
	ExpiryTime  time.Time       `json:"expiry_time" validate:"required"`
	Location    locationRequest `json:"location"    validate:"required"`
	ImageURL    string          `json:"image_url"   validate:"omitempty,url"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// domain struct changes.

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationResponse struct {
	Address     string              `json:"address"`
	Coordinates coordinatesResponse `json:"coordinates"`
}

type donationLinks struct {
	Self    string `json:"self"`
	Claim   string `json:"claim,omitempty"`
	Deliver string `json:"deliver,omitempty"`
}

type donationResponse struct {
	ID            string           `json:"id"`
	DonorID       string           `json:"donor_id"`
	DonorName     string           `json:"donor_name"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Quantity      string           `json:"quantity"`
	Location      locationResponse `json:"location"`
	ImageURL      string           `json:"image_url,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	ExpiryTime    time.Time        `json:"expiry_time"`
	ClaimedBy     string           `json:"claimed_by,omitempty"`
	VolunteerName string           `json:"volunteer_name,omitempty"`
	ClaimedAt     *time.Time       `json:"claimed_at,omitempty"`
	DeliveredAt   *time.Time       `json:"delivered_at,omitempty"`
	Links         donationLinks    `json:"_links"`
}

type listDonationsResponse struct {
	Data  []donationResponse `json:"data"`
	Count int                `json:"count"`
}
