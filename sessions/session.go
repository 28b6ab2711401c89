// Package sessions owns the client-side session: the authenticated user,
// the raw token pair, and their durable persistence. All mutation of
// session state goes through the Store; everything else only reads.
package sessions

// User is the authenticated identity as reported by the backend on login
// or registration.
type User struct {
	ID              string   `json:"id"`
	Email           string   `json:"email"`
	DisplayName     string   `json:"displayName"`
	DefaultTenantID string   `json:"defaultTenantId,omitempty"`
	IsSuperAdmin    bool     `json:"isSuperAdmin"`
	Roles           []string `json:"roles,omitempty"`
	Permissions     []string `json:"permissions,omitempty"`
}

// Session is the broadcast state of the Store. Authenticated is true iff
// both a non-empty access token and a user record are present.
type Session struct {
	User          *User
	AccessToken   string
	RefreshToken  string
	Authenticated bool
}
