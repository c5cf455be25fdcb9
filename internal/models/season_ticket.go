package models

// SeasonTicketPlan is a prepaid bundle of session credits redeemable
// against future bookings.
type SeasonTicketPlan struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	PassCount int    `json:"pass_count"`
}
