package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-tenant-client/storage"
)

const errorBodyLimit = 64 * 1024

// Navigator is the sink for forced redirects. The hosting environment
// decides what "navigate" means; tests record, the CLI logs.
type Navigator interface {
	Navigate(path string)
}

// SessionInvalidator tears down the in-memory session after an
// authorization denial. Satisfied by *sessions.Store.
type SessionInvalidator interface {
	Logout()
}

// ErrorNormalizer observes the true network/backend outcome at the end of
// the pipeline. An authorization denial tears the local session's token out
// of durable storage and forces navigation to the login path; every failure
// is rewritten into an APIError.
type ErrorNormalizer struct {
	storage     storage.Store
	navigator   Navigator
	invalidator SessionInvalidator
	loginPath   string
	log         zerolog.Logger
	nowTime     func() time.Time
}

// NormalizerOption configures an ErrorNormalizer.
type NormalizerOption func(*ErrorNormalizer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) NormalizerOption {
	return func(n *ErrorNormalizer) {
		n.nowTime = nowFunc
	}
}

// WithNormalizerLogger sets the diagnostic logger.
func WithNormalizerLogger(log zerolog.Logger) NormalizerOption {
	return func(n *ErrorNormalizer) {
		n.log = log
	}
}

// WithSessionInvalidator makes an authorization denial destroy the
// in-memory session as well as the durable token, so guards and the
// identity interceptor stop treating the process as authenticated.
func WithSessionInvalidator(invalidator SessionInvalidator) NormalizerOption {
	return func(n *ErrorNormalizer) {
		n.invalidator = invalidator
	}
}

// NewErrorNormalizer builds the pipeline's terminal stage.
func NewErrorNormalizer(store storage.Store, navigator Navigator, loginPath string, options ...NormalizerOption) *ErrorNormalizer {
	n := &ErrorNormalizer{
		storage:   store,
		navigator: navigator,
		loginPath: loginPath,
		log:       zerolog.Nop(),
		nowTime:   time.Now,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// errorBody is the error payload shape backends are expected to return.
type errorBody struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// Observe inspects the downstream outcome. Successful responses pass
// through untouched. Transport errors and HTTP failures both come back as
// an *APIError; the response is fully consumed and closed in the failure
// case so the caller holds exactly one contract.
func (n *ErrorNormalizer) Observe(req *http.Request, resp *http.Response, err error) (*http.Response, error) {
	path := defaultPath
	if req != nil && req.URL != nil && req.URL.Path != "" {
		path = req.URL.Path
	}

	if err != nil {
		return nil, newAPIError(err.Error(), 0, defaultErrorCode, path, n.nowTime())
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		n.forceReauthentication(path)
	}

	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	resp.Body.Close()
	_ = json.Unmarshal(raw, &body)

	return nil, newAPIError(body.Message, resp.StatusCode, body.ErrorCode, path, n.nowTime())
}

// forceReauthentication handles an authorization denial from any endpoint:
// the stored access token is removed unconditionally, the in-memory session
// is destroyed, and the user is sent to the login screen. There is no retry
// or refresh attempt here, only immediate forced re-authentication.
func (n *ErrorNormalizer) forceReauthentication(path string) {
	if err := n.storage.Delete(storage.KeyAccessToken); err != nil {
		n.log.Warn().Err(err).Msg("Failed to remove access token after denial")
	}
	if n.invalidator != nil {
		n.invalidator.Logout()
	}
	n.log.Info().Str("path", path).Msg("Authorization denied, forcing re-authentication")
	if n.navigator != nil {
		n.navigator.Navigate(n.loginPath)
	}
}
