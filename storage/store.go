// Package storage is the durable key/value port behind the session and
// tenant stores. Keys are partitioned by owner: the session store owns the
// token/user/tenant-list keys, the tenant context owns the active tenant id.
package storage

// Durable keys. Every key has exactly one writing owner.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyTenants      = "tenants"
	KeyActiveTenant = "active_tenant_id"
)

// Store defines the interface for durable client-side state. Reads and
// writes are synchronous; implementations must tolerate deletes of absent
// keys.
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool)

	// Set stores value under key, replacing any prior value
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error
	Delete(key string) error
}
