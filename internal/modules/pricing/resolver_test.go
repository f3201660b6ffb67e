package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_FullTierSet(t *testing.T) {
	p := TierPrices{
		RetailCents:        10000,
		Wholesale1Cents:    9000,
		Wholesale2Cents:    8500,
		Wholesale3Cents:    8000,
		TrainerCents:       9500,
		FederationRepCents: 9200,
		RRPCents:           11000,
	}

	tests := []struct {
		role Role
		want int64
	}{
		{RoleRetail, 10000},
		{RoleWholesale1, 9000},
		{RoleWholesale2, 8500},
		{RoleWholesale3, 8000},
		{RoleTrainer, 9500},
		{RoleFederationRep, 9200},
		{Role("unknown"), 10000},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Resolve(p, tc.role), "role %s", tc.role)
	}
}

func TestResolve_WholesaleFallbackChain(t *testing.T) {
	// wholesale3 missing -> level2
	p := TierPrices{RetailCents: 10000, Wholesale1Cents: 9000, Wholesale2Cents: 8500}
	assert.Equal(t, int64(8500), Resolve(p, RoleWholesale3))

	// level2 also missing -> level1
	p.Wholesale2Cents = 0
	assert.Equal(t, int64(9000), Resolve(p, RoleWholesale3))

	// chain exhausted -> retail
	p.Wholesale1Cents = 0
	assert.Equal(t, int64(10000), Resolve(p, RoleWholesale3))
}

func TestResolve_FederationRepFallsBackThroughTrainer(t *testing.T) {
	p := TierPrices{RetailCents: 10000, TrainerCents: 9500}
	assert.Equal(t, int64(9500), Resolve(p, RoleFederationRep))

	p.TrainerCents = 0
	assert.Equal(t, int64(10000), Resolve(p, RoleFederationRep))
}

func TestShowRRP(t *testing.T) {
	assert.False(t, ShowRRP(RoleRetail))
	assert.True(t, ShowRRP(RoleWholesale2))
	assert.True(t, ShowRRP(RoleTrainer))
	assert.True(t, ShowRRP(RoleFederationRep))
}
