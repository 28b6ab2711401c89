// Package transport decorates outgoing requests with the session's identity
// and tenant scope, and normalizes every HTTP failure into one stable error
// contract. The interceptor order is fixed and expressed as a literal slice
// in NewPipeline, not by registration order.
package transport

import "net/http"

// Outbound headers added by the pipeline.
const (
	HeaderAuthorization = "Authorization"
	HeaderTenantID      = "X-Tenant-Id"
)

// BearerValue builds the Authorization header value for a raw access token.
// The HTTP façade shares this so its headers can never drift from the
// pipeline's.
func BearerValue(accessToken string) string {
	return "Bearer " + accessToken
}

// TokenSource yields the current access token, "" when logged out.
// Satisfied by *sessions.Store.
type TokenSource interface {
	CurrentAccessToken() string
}

// TenantSource yields the active tenant id, "" when none is active.
// Satisfied by *tenants.Context.
type TenantSource interface {
	ActiveTenantID() string
}

// RequestTransform is a pure request interceptor: it returns the request
// unchanged, or a clone with headers added. It never inspects responses.
type RequestTransform func(*http.Request) *http.Request

// Identity attaches "Authorization: Bearer <token>" when a token is
// present; absent a token the request passes through untouched.
func Identity(tokens TokenSource) RequestTransform {
	return func(req *http.Request) *http.Request {
		accessToken := tokens.CurrentAccessToken()
		if accessToken == "" {
			return req
		}
		clone := req.Clone(req.Context())
		clone.Header.Set(HeaderAuthorization, BearerValue(accessToken))
		return clone
	}
}

// Tenant attaches "X-Tenant-Id: <id>" for the active tenant. With no active
// tenant (super-admin in global mode) the request passes through with no
// header; this header is the only channel through which tenant scope
// reaches the backend.
func Tenant(tenants TenantSource) RequestTransform {
	return func(req *http.Request) *http.Request {
		tenantID := tenants.ActiveTenantID()
		if tenantID == "" {
			return req
		}
		clone := req.Clone(req.Context())
		clone.Header.Set(HeaderTenantID, tenantID)
		return clone
	}
}
