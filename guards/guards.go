// Package guards provides the navigation-time predicates that gate
// protected areas. A guard is a pure function over the two stores' current
// state; it never performs the redirect itself, it only decides.
package guards

import "net/url"

// Decision is a guard's verdict: allow, or block with a redirect target.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow permits navigation.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Redirect blocks navigation and names where to send the user instead.
func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

// Guard evaluates a navigation attempt to target (the intended path).
type Guard func(target string) Decision

// SessionState is the slice of the session store a guard reads.
// Satisfied by *sessions.Store.
type SessionState interface {
	IsAuthenticated() bool
}

// TenantState is the slice of the tenant context a guard reads.
// Satisfied by *tenants.Context.
type TenantState interface {
	HasActiveTenant() bool
}

// RequireAuthenticated gates any protected area. An unauthenticated user is
// redirected to loginPath with the intended target attached as a returnUrl
// parameter. Token expiry is deliberately not checked here; an expired
// token is caught by the first real request's 401.
func RequireAuthenticated(session SessionState, loginPath string) Guard {
	return func(target string) Decision {
		if session.IsAuthenticated() {
			return Allow()
		}
		query := url.Values{"returnUrl": {target}}
		return Redirect(loginPath + "?" + query.Encode())
	}
}

// RequireTenant gates tenant-scoped areas: without an active tenant the
// user is sent to the tenant-selection screen. Orthogonal to
// RequireAuthenticated and composable with it via AllOf.
func RequireTenant(tenant TenantState, selectPath string) Guard {
	return func(target string) Decision {
		if tenant.HasActiveTenant() {
			return Allow()
		}
		return Redirect(selectPath)
	}
}

// AllOf combines guards; the first non-allow decision wins. Tenant-scoped
// routes compose RequireAuthenticated and RequireTenant through this rather
// than relying on registration order.
func AllOf(guards ...Guard) Guard {
	return func(target string) Decision {
		for _, guard := range guards {
			if decision := guard(target); !decision.Allowed {
				return decision
			}
		}
		return Allow()
	}
}
