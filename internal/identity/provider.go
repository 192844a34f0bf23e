// Package identity implements the identity provider: account creation,
// credential checks, and bearer-token issue/verify. The rest of the
// application only ever asks it "is this token valid, and for whom".
package identity

import (
	"context"

	"github.com/s-kanako/france-keijiban/internal/models"
)

// Provider is the contract the HTTP layer depends on. The concrete
// implementation is swappable in tests.
type Provider interface {
	// SignUp creates an account. Email, password, and name are required;
	// a duplicate email is a validation error.
	SignUp(ctx context.Context, email, password, name string) (*models.User, error)

	// Login checks credentials and returns a bearer token for the account.
	Login(ctx context.Context, email, password string) (string, *models.User, error)

	// VerifyToken validates a bearer token and resolves the account it
	// was issued to. Any parse, expiry, or lookup failure is unauthorized.
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}
