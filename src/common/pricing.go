package common

import (
	"etb/src/models"
	"etb/src/types"

	"github.com/shopspring/decimal"
)

// ResolvePrice returns the price the purchaser is expected to pay: the member
// price when the user holds an active membership, the public price otherwise.
// Missing membership info counts as no membership.
func ResolvePrice(event *models.Event, membership *types.MembershipInfo) decimal.Decimal {
	if membership != nil && membership.HasMembership && membership.Status == types.MEMBERSHIP_ACTIVE {
		return event.MemberPrice
	}
	return event.PublicPrice
}
