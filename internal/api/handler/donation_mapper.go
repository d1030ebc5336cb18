package handler

import (
	"time"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createDonationRequest, donor domain.Identity, idempotencyKey string) ports.CreateDonationInput {
	return ports.CreateDonationInput{
		Donor:          donor,
		Title:          req.Title,
		Description:    req.Description,
		Quantity:       req.Quantity,
		ExpiryTime:     req.ExpiryTime,
		Address:        req.Location.Address,
		Lat:            req.Location.Coordinates.Lat,
		Lng:            req.Location.Coordinates.Lng,
		ImageURL:       req.ImageURL,
		IdempotencyKey: idempotencyKey,
	}
}

// --- Service result → HTTP response ---

func toDonationResponse(v ports.DonationView) donationResponse {
	d := v.Donation
	resp := donationResponse{
		ID:          d.ID,
		DonorID:     d.DonorID,
		DonorName:   d.DonorName,
		Title:       d.Title,
		Description: d.Description,
		Quantity:    d.Quantity,
		Location: locationResponse{
			Address: d.Location.Address,
			Coordinates: coordinatesResponse{
				Lat: d.Location.Coordinates.Lat,
				Lng: d.Location.Coordinates.Lng,
			},
		},
		ImageURL:      d.ImageURL,
		Status:        string(v.EffectiveStatus),
		CreatedAt:     d.CreatedAt.UTC(),
		ExpiryTime:    d.ExpiryTime.UTC(),
		ClaimedBy:     d.ClaimedBy,
		VolunteerName: d.VolunteerName,
		ClaimedAt:     utcPtr(d.ClaimedAt),
		DeliveredAt:   utcPtr(d.DeliveredAt),
		Links:         donationLinks{Self: "/donations/" + d.ID},
	}

	switch v.EffectiveStatus {
	case domain.StatusOpen:
		resp.Links.Claim = "/donations/" + d.ID + "/claim"
	case domain.StatusClaimed:
		resp.Links.Deliver = "/donations/" + d.ID + "/deliver"
	case domain.StatusDelivered, domain.StatusExpired:
	}
	return resp
}

func toListResponse(views []ports.DonationView) listDonationsResponse {
	items := make([]donationResponse, len(views))
	for i, v := range views {
		items[i] = toDonationResponse(v)
	}
	return listDonationsResponse{Data: items, Count: len(items)}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
