package sessions

import (
	"context"

	"github.com/jrsteele09/go-tenant-client/tenants"
)

// Credentials are what a user presents at login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// TokenPair is the credential pair issued by the backend. RefreshToken may
// be empty for backends that do not issue one.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// LoginResult is the backend's response to a successful login or
// registration: tokens, the user record, and the tenants the user may act
// within.
type LoginResult struct {
	TokenPair
	User    User                 `json:"user"`
	Tenants []tenants.Membership `json:"tenants"`
}

// Backend defines the authentication endpoints the Store depends on.
// Implementations must return errors.ErrInvalidCredentials (wrapped is
// fine) when the backend rejects the credentials, and
// errors.ErrInvalidRefreshToken when a refresh exchange is refused.
type Backend interface {
	// Login exchanges credentials for a session
	Login(ctx context.Context, credentials Credentials) (*LoginResult, error)

	// Register creates an account and logs it in, in one exchange
	Register(ctx context.Context, registration Registration) (*LoginResult, error)

	// Refresh exchanges a refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
