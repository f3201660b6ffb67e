package auth

import (
	"context"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/modules/pricing"
)

// Account is the storefront's view of a signed-in customer.
type Account struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Company   string
	Role      pricing.Role
}

// API is the remote accounts service used for sign-in. Logout is
// best-effort: a remote failure never blocks local session teardown.
type API interface {
	Login(ctx context.Context, email, password string) (Account, string, error)
	Logout(ctx context.Context, token string) error
}
