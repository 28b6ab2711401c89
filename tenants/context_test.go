package tenants_test

import (
	"testing"

	"github.com/jrsteele09/go-tenant-client/storage"
	"github.com/jrsteele09/go-tenant-client/tenants"
	"github.com/stretchr/testify/require"
)

var memberships = []tenants.Membership{
	{TenantID: "A", Name: "Tenant A", Role: "admin"},
	{TenantID: "B", Name: "Tenant B", Role: "member"},
}

func newContext(t *testing.T, store storage.Store) *tenants.Context {
	t.Helper()
	ctx, err := tenants.NewContext(store)
	require.NoError(t, err)
	return ctx
}

func TestNewContext(t *testing.T) {
	t.Run("rejects missing storage", func(t *testing.T) {
		_, err := tenants.NewContext(nil)
		require.Error(t, err)
	})
}

func TestSeedResolution(t *testing.T) {
	t.Run("persisted id wins over default and first", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(storage.KeyActiveTenant, "B"))

		ctx := newContext(t, store)
		ctx.Seed(memberships, "A")
		require.Equal(t, "B", ctx.ActiveTenantID())
	})

	t.Run("stale persisted id is skipped", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(storage.KeyActiveTenant, "gone"))

		ctx := newContext(t, store)
		ctx.Seed(memberships, "B")
		require.Equal(t, "B", ctx.ActiveTenantID())
	})

	t.Run("default hint wins over first in list", func(t *testing.T) {
		ctx := newContext(t, storage.NewMemory())
		ctx.Seed(memberships, "B")
		require.Equal(t, "B", ctx.ActiveTenantID())
	})

	t.Run("falls back to first membership", func(t *testing.T) {
		ctx := newContext(t, storage.NewMemory())
		ctx.Seed(memberships, "")
		require.Equal(t, "A", ctx.ActiveTenantID())

		ctx2 := newContext(t, storage.NewMemory())
		ctx2.Seed(memberships, "not-a-member")
		require.Equal(t, "A", ctx2.ActiveTenantID())
	})

	t.Run("empty memberships resolve to none regardless of hint", func(t *testing.T) {
		ctx := newContext(t, storage.NewMemory())
		ctx.Seed(nil, "B")
		require.Empty(t, ctx.ActiveTenantID())
		require.False(t, ctx.HasActiveTenant())
	})
}

func TestSetActive(t *testing.T) {
	t.Run("valid switch updates state and persists", func(t *testing.T) {
		store := storage.NewMemory()
		ctx := newContext(t, store)
		ctx.Seed(memberships, "")

		require.True(t, ctx.SetActive("B", true))
		require.Equal(t, "B", ctx.ActiveTenantID())

		persisted, ok := store.Get(storage.KeyActiveTenant)
		require.True(t, ok)
		require.Equal(t, "B", persisted)
	})

	t.Run("invalid id keeps prior value", func(t *testing.T) {
		store := storage.NewMemory()
		ctx := newContext(t, store)
		ctx.Seed(memberships, "")

		require.False(t, ctx.SetActive("Z", true))
		require.Equal(t, "A", ctx.ActiveTenantID())
		_, ok := store.Get(storage.KeyActiveTenant)
		require.False(t, ok)
	})

	t.Run("switch without persist leaves storage untouched", func(t *testing.T) {
		store := storage.NewMemory()
		ctx := newContext(t, store)
		ctx.Seed(memberships, "")

		require.True(t, ctx.SetActive("B", false))
		_, ok := store.Get(storage.KeyActiveTenant)
		require.False(t, ok)
	})
}

func TestActiveMembership(t *testing.T) {
	ctx := newContext(t, storage.NewMemory())
	require.Nil(t, ctx.ActiveMembership())

	ctx.Seed(memberships, "B")
	m := ctx.ActiveMembership()
	require.NotNil(t, m)
	require.Equal(t, "Tenant B", m.Name)
	require.Equal(t, "member", m.Role)
}

func TestClear(t *testing.T) {
	store := storage.NewMemory()
	ctx := newContext(t, store)
	ctx.Seed(memberships, "")
	require.True(t, ctx.SetActive("B", true))

	ctx.Clear()
	require.Empty(t, ctx.ActiveTenantID())
	require.Empty(t, ctx.Memberships())
	_, ok := store.Get(storage.KeyActiveTenant)
	require.False(t, ok)

	// clearing twice is harmless
	ctx.Clear()
}

func TestSubscribe(t *testing.T) {
	ctx := newContext(t, storage.NewMemory())
	ctx.Seed(memberships, "")

	var seen []string
	cancel := ctx.Subscribe(func(s tenants.Snapshot) {
		seen = append(seen, s.ActiveTenantID)
	})
	defer cancel()

	// replay-one: latest state arrives on subscription
	require.Equal(t, []string{"A"}, seen)

	ctx.SetActive("B", false)
	require.Equal(t, []string{"A", "B"}, seen)

	cancel()
	ctx.SetActive("A", false)
	require.Equal(t, []string{"A", "B"}, seen)
}
