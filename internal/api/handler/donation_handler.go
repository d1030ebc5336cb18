package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zerowaste/connect-share/internal/api/metrics"
	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// HeaderIdempotencyKey lets donors retry a create without duplicating the offer.
const HeaderIdempotencyKey = "Idempotency-Key"

// DonationHandler exposes the donation lifecycle over HTTP.
// Every error is returned to the central HTTPErrorHandler.
type DonationHandler struct {
	svc ports.DonationService
	log zerolog.Logger
}

func NewDonationHandler(svc ports.DonationService, log zerolog.Logger) *DonationHandler {
	return &DonationHandler{svc: svc, log: log}
}

// Create offers a new donation on behalf of the authenticated donor.
//
// @Summary      Create a donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Client-generated key for safe retries"
// @Param        body             body      createDonationRequest  true   "Donation details"
// @Success      201              {object}  donationResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	donor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := c.Request().Header.Get(HeaderIdempotencyKey)
	result, err := h.svc.CreateDonation(c.Request().Context(), toCreateInput(req, donor, key))
	if err != nil {
		return err
	}

	metrics.DonationsCreatedTotal.WithLabelValues(strconv.FormatBool(result.AlreadyExisted)).Inc()
	if result.AlreadyExisted {
		h.log.Debug().Str("donation_id", result.Donation.ID).Str("idempotency_key", key).Msg("replayed create")
		c.Response().Header().Set("Idempotent-Replayed", "true")
	}
	return c.JSON(http.StatusCreated, toDonationResponse(result.DonationView))
}

// List returns donations filtered by effective status, donor or claimant.
//
// @Summary      List donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "open | claimed | delivered | expired"
// @Param        donorId     query     string  false  "Donor user id"
// @Param        claimantId  query     string  false  "Volunteer user id"
// @Success      200         {object}  listDonationsResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	in := ports.ListDonationsInput{
		DonorID:    c.QueryParam("donorId"),
		ClaimantID: c.QueryParam("claimantId"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, err := domain.ParseStatus(raw)
		if err != nil {
			return err
		}
		in.Status = st
	}

	views, err := h.svc.ListDonations(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(views))
}

// Get returns a single donation with its effective status.
//
// @Summary      Get a donation
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  donationResponse
// @Failure      404  {object}  errorResponse
// @Router       /donations/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	v, err := h.svc.GetDonation(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDonationResponse(*v))
}

// Claim reserves an open donation for the authenticated volunteer.
// Of two concurrent claims exactly one succeeds; the other gets 409.
//
// @Summary      Claim a donation
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  donationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /donations/{id}/claim [post]
func (h *DonationHandler) Claim(c echo.Context) error {
	volunteer, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	v, err := h.svc.Claim(c.Request().Context(), c.Param("id"), volunteer)
	recordTransition(domain.StatusClaimed, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDonationResponse(*v))
}

// Deliver marks a claimed donation as delivered. Only the claimant may do this.
//
// @Summary      Mark a donation delivered
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Donation ID"
// @Success      200  {object}  donationResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /donations/{id}/deliver [post]
func (h *DonationHandler) Deliver(c echo.Context) error {
	caller, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	v, err := h.svc.MarkDelivered(c.Request().Context(), c.Param("id"), caller)
	recordTransition(domain.StatusDelivered, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDonationResponse(*v))
}

func recordTransition(to domain.DonationStatus, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidTransition):
		result = "invalid_transition"
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	case errors.Is(err, domain.ErrDonationNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.TransitionsTotal.WithLabelValues(string(to), result).Inc()
}
