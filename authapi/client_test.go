package authapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-tenant-client/authapi"
	apperrors "github.com/jrsteele09/go-tenant-client/internal/errors"
	"github.com/jrsteele09/go-tenant-client/sessions"
)

const loginResponse = `{
	"accessToken": "access-1",
	"refreshToken": "refresh-1",
	"expiresIn": 3600,
	"user": {"id": "user-1", "email": "user@example.com", "displayName": "User One", "defaultTenantId": "B"},
	"tenants": [
		{"id": "A", "name": "Tenant A", "role": "admin"},
		{"id": "B", "name": "Tenant B", "role": "member"}
	]
}`

func TestLogin(t *testing.T) {
	t.Run("success decodes the full payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)
			require.NotEmpty(t, r.Header.Get("X-Request-Id"))

			var credentials sessions.Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&credentials))
			require.Equal(t, "user@example.com", credentials.Email)

			w.Write([]byte(loginResponse))
		}))
		defer server.Close()

		c := authapi.New(server.URL)
		result, err := c.Login(context.Background(), sessions.Credentials{Email: "user@example.com", Password: "pw"})
		require.NoError(t, err)

		require.Equal(t, "access-1", result.AccessToken)
		require.Equal(t, "refresh-1", result.RefreshToken)
		require.Equal(t, int64(3600), result.ExpiresIn)
		require.Equal(t, "user-1", result.User.ID)
		require.Equal(t, "B", result.User.DefaultTenantID)
		require.Len(t, result.Tenants, 2)
		require.Equal(t, "Tenant A", result.Tenants[0].Name)
	})

	t.Run("401 maps to invalid credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := authapi.New(server.URL)
		_, err := c.Login(context.Background(), sessions.Credentials{})
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("5xx maps to internal error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := authapi.New(server.URL)
		_, err := c.Login(context.Background(), sessions.Credentials{})
		require.ErrorIs(t, err, apperrors.ErrInternal)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("success returns the new pair", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/refresh", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			require.Equal(t, "refresh-1", payload["refreshToken"])

			w.Write([]byte(`{"accessToken":"access-2","refreshToken":"refresh-2"}`))
		}))
		defer server.Close()

		c := authapi.New(server.URL)
		pair, err := c.Refresh(context.Background(), "refresh-1")
		require.NoError(t, err)
		require.Equal(t, "access-2", pair.AccessToken)
		require.Equal(t, "refresh-2", pair.RefreshToken)
	})

	t.Run("rejection maps to invalid refresh token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := authapi.New(server.URL)
		_, err := c.Refresh(context.Background(), "stale")
		require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/register", r.URL.Path)
		w.Write([]byte(loginResponse))
	}))
	defer server.Close()

	c := authapi.New(server.URL)
	result, err := c.Register(context.Background(), sessions.Registration{Email: "new@example.com", Password: "pw", DisplayName: "New"})
	require.NoError(t, err)
	require.Equal(t, "user-1", result.User.ID)
}
