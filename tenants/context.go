package tenants

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-tenant-client/internal/pubsub"
	"github.com/jrsteele09/go-tenant-client/storage"
)

// Context is the tenant context store. It owns the active tenant id and the
// current membership list, enforces that the active id is always a member,
// and persists the active id under its own durable key so a tenant choice
// outlives a single login (but never a logout).
type Context struct {
	mu          sync.RWMutex
	active      string
	memberships []Membership

	store     storage.Store
	log       zerolog.Logger
	broadcast *pubsub.Broadcaster[Snapshot]
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) ContextOption {
	return func(c *Context) {
		c.log = log
	}
}

// NewContext creates a tenant context backed by the given durable store.
func NewContext(store storage.Store, options ...ContextOption) (*Context, error) {
	if store == nil {
		return nil, errors.New("[NewContext] storage is required")
	}
	c := &Context{
		store:     store,
		log:       zerolog.Nop(),
		broadcast: pubsub.New[Snapshot](),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Seed replaces the membership list and resolves the active tenant. The
// resolution order, first match wins:
//  1. a previously persisted tenant id, if still a member
//  2. defaultTenantID, if a member
//  3. the first membership
//  4. none
//
// Called by the session store whenever a session is established or restored.
func (c *Context) Seed(memberships []Membership, defaultTenantID string) {
	c.mu.Lock()
	c.memberships = make([]Membership, len(memberships))
	copy(c.memberships, memberships)
	c.active = c.resolveActive(defaultTenantID)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Debug().
		Str("active_tenant_id", snapshot.ActiveTenantID).
		Int("memberships", len(snapshot.Memberships)).
		Msg("Tenant context seeded")
	c.broadcast.Publish(snapshot)
}

// resolveActive must be called with the lock held.
func (c *Context) resolveActive(defaultTenantID string) string {
	if persisted, ok := c.store.Get(storage.KeyActiveTenant); ok && c.isMemberLocked(persisted) {
		return persisted
	}
	if defaultTenantID != "" && c.isMemberLocked(defaultTenantID) {
		return defaultTenantID
	}
	if len(c.memberships) > 0 {
		return c.memberships[0].TenantID
	}
	return ""
}

// SetActive switches the active tenant. An id that is not in the current
// membership list is rejected: the prior value is kept and a warning is
// logged, no error is raised. The returned bool lets callers detect the
// rejection if they care; most UI call sites treat switching as best-effort.
// When persist is true the new id is written to durable storage.
func (c *Context) SetActive(tenantID string, persist bool) bool {
	c.mu.Lock()
	if !c.isMemberLocked(tenantID) {
		c.mu.Unlock()
		c.log.Warn().
			Str("tenant_id", tenantID).
			Msg("Rejected switch to tenant outside membership list")
		return false
	}
	c.active = tenantID
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.broadcast.Publish(snapshot)
	if persist {
		if err := c.store.Set(storage.KeyActiveTenant, tenantID); err != nil {
			c.log.Warn().Err(err).Msg("Failed to persist active tenant id")
		}
	}
	return true
}

// ActiveTenantID returns the active tenant id, "" if none.
func (c *Context) ActiveTenantID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// HasActiveTenant reports whether a tenant is currently active.
func (c *Context) HasActiveTenant() bool {
	return c.ActiveTenantID() != ""
}

// ActiveMembership returns the membership row for the active tenant, nil if
// no tenant is active.
func (c *Context) ActiveMembership() *Membership {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.memberships {
		if c.memberships[i].TenantID == c.active {
			m := c.memberships[i]
			return &m
		}
	}
	return nil
}

// Memberships returns a copy of the current membership list.
func (c *Context) Memberships() []Membership {
	c.mu.RLock()
	defer c.mu.RUnlock()
	memberships := make([]Membership, len(c.memberships))
	copy(memberships, c.memberships)
	return memberships
}

// Clear wipes the durable key, empties the membership list and nulls the
// active id. Only the session store's logout/failed-restore path calls this.
func (c *Context) Clear() {
	c.mu.Lock()
	c.active = ""
	c.memberships = nil
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	if err := c.store.Delete(storage.KeyActiveTenant); err != nil {
		c.log.Warn().Err(err).Msg("Failed to clear active tenant id")
	}
	c.broadcast.Publish(snapshot)
}

// Subscribe registers fn for state changes. The latest snapshot, if any, is
// replayed immediately; delivery is synchronous and in subscription order.
func (c *Context) Subscribe(fn func(Snapshot)) func() {
	return c.broadcast.Subscribe(fn)
}

func (c *Context) isMemberLocked(tenantID string) bool {
	if tenantID == "" {
		return false
	}
	for _, m := range c.memberships {
		if m.TenantID == tenantID {
			return true
		}
	}
	return false
}

func (c *Context) snapshotLocked() Snapshot {
	memberships := make([]Membership, len(c.memberships))
	copy(memberships, c.memberships)
	return Snapshot{ActiveTenantID: c.active, Memberships: memberships}
}
