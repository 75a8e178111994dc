package common

import (
	"etb/src/models"
	"etb/src/types"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolvePrice(t *testing.T) {
	event := &models.Event{
		MemberPrice: decimal.NewFromInt(50),
		PublicPrice: decimal.NewFromInt(80),
	}

	tests := []struct {
		name       string
		membership *types.MembershipInfo
		expected   decimal.Decimal
	}{
		{"active member", &types.MembershipInfo{HasMembership: true, Status: types.MEMBERSHIP_ACTIVE}, event.MemberPrice},
		{"inactive member", &types.MembershipInfo{HasMembership: true, Status: types.MEMBERSHIP_INACTIVE}, event.PublicPrice},
		{"no membership", &types.MembershipInfo{HasMembership: false}, event.PublicPrice},
		{"missing info", nil, event.PublicPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := ResolvePrice(event, tt.membership)
			assert.True(t, price.Equal(tt.expected), "expected %s, got %s", tt.expected.String(), price.String())
		})
	}
}
