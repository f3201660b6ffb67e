package pricing

// Role is the customer classification that decides which price tier applies.
type Role string

const (
	RoleRetail        Role = "retail"
	RoleWholesale1    Role = "wholesale_level1"
	RoleWholesale2    Role = "wholesale_level2"
	RoleWholesale3    Role = "wholesale_level3"
	RoleTrainer       Role = "trainer"
	RoleFederationRep Role = "federation_rep"
)

// TierPrices holds every per-role price of a product variant, in cents.
// A zero value means the tier has no price of its own.
type TierPrices struct {
	RetailCents        int64
	Wholesale1Cents    int64
	Wholesale2Cents    int64
	Wholesale3Cents    int64
	TrainerCents       int64
	FederationRepCents int64
	RRPCents           int64
}

// Resolve picks the applicable price for a role. Each tier falls back to the
// next-more-general tier and ultimately to retail, so a price is always
// returned as long as retail is set.
//
// Chain: wholesale3 -> wholesale2 -> wholesale1 -> retail,
// federation rep -> trainer -> retail.
func Resolve(p TierPrices, r Role) int64 {
	switch r {
	case RoleWholesale3:
		return firstSet(p.Wholesale3Cents, p.Wholesale2Cents, p.Wholesale1Cents, p.RetailCents)
	case RoleWholesale2:
		return firstSet(p.Wholesale2Cents, p.Wholesale1Cents, p.RetailCents)
	case RoleWholesale1:
		return firstSet(p.Wholesale1Cents, p.RetailCents)
	case RoleFederationRep:
		return firstSet(p.FederationRepCents, p.TrainerCents, p.RetailCents)
	case RoleTrainer:
		return firstSet(p.TrainerCents, p.RetailCents)
	default:
		return p.RetailCents
	}
}

// ShowRRP reports whether the recommended retail price is displayed next to
// the resolved price. Only B2B roles see it.
func ShowRRP(r Role) bool {
	switch r {
	case RoleWholesale1, RoleWholesale2, RoleWholesale3, RoleTrainer, RoleFederationRep:
		return true
	default:
		return false
	}
}

// IsB2B reports whether the role buys on wholesale terms.
func IsB2B(r Role) bool { return ShowRRP(r) }

func firstSet(prices ...int64) int64 {
	for _, p := range prices {
		if p > 0 {
			return p
		}
	}
	return 0
}
