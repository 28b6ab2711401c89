// Package token decodes the unverified payload of a bearer token for
// display and UX hints. Nothing here is a trust boundary: signatures are
// never checked, and the backend remains the only authority on whether a
// token is actually acceptable.
package token

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-tenant-client/internal/utils"
)

// NowTimeFunc is the time source for expiry checks (injectable for testing)
var NowTimeFunc = time.Now

// Payload holds the claims this client cares about from a decoded token.
type Payload struct {
	Subject   string   `json:"sub"`
	Email     string   `json:"email,omitempty"`
	TenantID  string   `json:"tenantId,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// Decode splits rawToken into its three dot-separated segments and parses
// the middle segment without verifying the signature. It returns nil for
// anything malformed: wrong segment count, non-base64 payload, non-JSON
// claims.
func Decode(rawToken string) *Payload {
	if strings.TrimSpace(rawToken) == "" {
		return nil
	}

	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil
	}

	claims, ok := unverifiedToken.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	tenantID, _ := claims["tenantId"].(string)
	iat, _ := claims["iat"].(float64)
	exp, _ := claims["exp"].(float64)

	var roles []string
	if claimRoles, ok := claims["roles"].([]any); ok {
		roles = utils.ToStringSlice(claimRoles)
	}

	return &Payload{
		Subject:   sub,
		Email:     email,
		TenantID:  tenantID,
		Roles:     roles,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}
}

// IsExpired reports whether rawToken's exp claim is in the past. Fail
// closed: an undecodable token, or one without an exp claim, counts as
// expired.
func IsExpired(rawToken string) bool {
	payload := Decode(rawToken)
	if payload == nil {
		return true
	}
	return payload.ExpiresAt < NowTimeFunc().Unix()
}

// UserID returns the sub claim, or "" if the token cannot be decoded or
// carries no subject.
func UserID(rawToken string) string {
	payload := Decode(rawToken)
	if payload == nil {
		return ""
	}
	return payload.Subject
}

// TenantID returns the tenantId claim, or "" when absent.
func TenantID(rawToken string) string {
	payload := Decode(rawToken)
	if payload == nil {
		return ""
	}
	return payload.TenantID
}
