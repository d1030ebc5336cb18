package domain

// Action is something a user may attempt on donations or dashboards.
type Action string

const (
	ActionCreateDonation  Action = "create_donation"
	ActionClaimDonation   Action = "claim_donation"
	ActionDeliverDonation Action = "deliver_donation"
	ActionViewDonations   Action = "view_donations"
	ActionViewOverview    Action = "view_overview"
	ActionListUsers       Action = "list_users"
)

// Can reports whether role r is allowed to perform a.
func (r Role) Can(a Action) bool {
	switch r {
	case RoleDonor:
		return a == ActionCreateDonation || a == ActionViewDonations
	case RoleVolunteer:
		return a == ActionClaimDonation || a == ActionDeliverDonation || a == ActionViewDonations
	case RoleAdmin:
		return a == ActionViewDonations || a == ActionViewOverview || a == ActionListUsers
	}
	return false
}
