// Package tenants holds the client's view of multi-tenancy: the memberships
// the authenticated user may act within, and the single active tenant that
// scopes outgoing requests.
package tenants

// Membership pairs the current user with one tenant they may act as, plus
// their role within it. The set is replaced wholesale on every login or
// session restore, never patched.
type Membership struct {
	TenantID string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Snapshot is the broadcast state of the tenant context. ActiveTenantID is
// "" when no tenant is active (e.g. a super-admin operating tenant-free).
type Snapshot struct {
	ActiveTenantID string
	Memberships    []Membership
}
