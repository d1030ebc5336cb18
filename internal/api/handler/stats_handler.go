package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zerowaste/connect-share/internal/core/domain"
	"github.com/zerowaste/connect-share/internal/core/ports"
)

// StatsHandler serves the dashboards and the admin user list.
type StatsHandler struct {
	svc ports.StatsService
}

func NewStatsHandler(svc ports.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

type overviewResponse struct {
	TotalUsers         int            `json:"total_users"`
	Donors             int            `json:"donors"`
	Volunteers         int            `json:"volunteers"`
	Admins             int            `json:"admins"`
	TotalDonations     int            `json:"total_donations"`
	ActiveDonations    int            `json:"active_donations"`
	CompletedDonations int            `json:"completed_donations"`
	ExpiredDonations   int            `json:"expired_donations"`
	SuccessRate        int            `json:"success_rate"`
	ByStatus           map[string]int `json:"by_status"`
}

type donorSummaryResponse struct {
	Role      string `json:"role"`
	Total     int    `json:"total"`
	Open      int    `json:"open"`
	Claimed   int    `json:"claimed"`
	Delivered int    `json:"delivered"`
	Expired   int    `json:"expired"`
}

type volunteerSummaryResponse struct {
	Role      string `json:"role"`
	Available int    `json:"available"`
	Claimed   int    `json:"claimed"`
	Delivered int    `json:"delivered"`
}

type userActivityResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	TotalDonations int       `json:"total_donations"`
	TotalClaims    int       `json:"total_claims"`
}

type listUsersResponse struct {
	Data  []userActivityResponse `json:"data"`
	Count int                    `json:"count"`
}

func toOverviewResponse(o *ports.Overview) overviewResponse {
	by := make(map[string]int, len(o.ByStatus))
	for st, n := range o.ByStatus {
		by[string(st)] = n
	}
	return overviewResponse{
		TotalUsers:         o.TotalUsers,
		Donors:             o.Donors,
		Volunteers:         o.Volunteers,
		Admins:             o.Admins,
		TotalDonations:     o.TotalDonations,
		ActiveDonations:    o.ActiveDonations,
		CompletedDonations: o.CompletedDonations,
		ExpiredDonations:   o.ExpiredDonations,
		SuccessRate:        o.SuccessRate,
		ByStatus:           by,
	}
}

// Overview returns platform-wide counters.
//
// @Summary      Admin overview
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  overviewResponse
// @Failure      403  {object}  errorResponse
// @Router       /stats/overview [get]
func (h *StatsHandler) Overview(c echo.Context) error {
	o, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOverviewResponse(o))
}

// Me returns the dashboard summary for the caller's role.
//
// @Summary      Personal dashboard
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  donorSummaryResponse
// @Router       /stats/me [get]
func (h *StatsHandler) Me(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	switch who.Role {
	case domain.RoleDonor:
		s, err := h.svc.DonorSummary(ctx, who.ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, donorSummaryResponse{
			Role:      string(who.Role),
			Total:     s.Total,
			Open:      s.Open,
			Claimed:   s.Claimed,
			Delivered: s.Delivered,
			Expired:   s.Expired,
		})
	case domain.RoleVolunteer:
		s, err := h.svc.VolunteerSummary(ctx, who.ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, volunteerSummaryResponse{
			Role:      string(who.Role),
			Available: s.Available,
			Claimed:   s.Claimed,
			Delivered: s.Delivered,
		})
	case domain.RoleAdmin:
		return h.Overview(c)
	default:
		return echo.NewHTTPError(http.StatusForbidden, "unknown role")
	}
}

// Users lists every account with its donation and claim counters.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *StatsHandler) Users(c echo.Context) error {
	activity, err := h.svc.UserActivity(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userActivityResponse, len(activity))
	for i, a := range activity {
		out[i] = userActivityResponse{
			ID:             a.User.ID,
			Email:          a.User.Email,
			Name:           a.User.Name,
			Role:           string(a.User.Role),
			Phone:          a.User.Phone,
			CreatedAt:      a.User.CreatedAt.UTC(),
			TotalDonations: a.TotalDonations,
			TotalClaims:    a.TotalClaims,
		}
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: out, Count: len(out)})
}
