// server/internal/auth/authenticator.go
package auth

import (
	"context"
	"errors"
	"fmt"

	"facility-accounts-api-server/internal/models"
	"facility-accounts-api-server/internal/store"
)

// ErrInvalidCredentials covers unknown usernames, wrong passwords, unusable
// credentials and inactive accounts alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AccountFinder resolves a login identity. Login is by username, not email.
type AccountFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Verifier checks a password against a stored credential.
type Verifier interface {
	Verify(password, credential string) bool
}

type Authenticator struct {
	finder   AccountFinder
	verifier Verifier
}

func NewAuthenticator(finder AccountFinder, verifier Verifier) *Authenticator {
	return &Authenticator{finder: finder, verifier: verifier}
}

// Authenticate returns the account when username and password match an active account.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := a.finder.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !a.verifier.Verify(password, account.Credential()) {
		return nil, ErrInvalidCredentials
	}
	if !account.Enabled() {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}
