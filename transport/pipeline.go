package transport

import (
	"errors"
	"net/http"
)

// Pipeline composes the ordered request transforms with the error
// normalizer and implements http.RoundTripper, so it can sit behind a plain
// *http.Client. The wire contract is that identity and tenant headers are
// both present before the request leaves the client; the normalizer runs
// last so it observes the raw outcome.
//
// Failures surface as *APIError. When the pipeline is driven through
// *http.Client the error arrives wrapped in *url.Error; use errors.As to
// recover the APIError.
type Pipeline struct {
	transforms []RequestTransform
	normalizer *ErrorNormalizer
	base       http.RoundTripper
}

var _ http.RoundTripper = (*Pipeline)(nil)

// NewPipeline builds the fixed chain: identity → tenant → (network) →
// error normalization. base defaults to http.DefaultTransport.
func NewPipeline(tokens TokenSource, tenants TenantSource, normalizer *ErrorNormalizer, base http.RoundTripper) (*Pipeline, error) {
	if tokens == nil {
		return nil, errors.New("[NewPipeline] token source is required")
	}
	if tenants == nil {
		return nil, errors.New("[NewPipeline] tenant source is required")
	}
	if normalizer == nil {
		return nil, errors.New("[NewPipeline] error normalizer is required")
	}
	if base == nil {
		base = http.DefaultTransport
	}
	return &Pipeline{
		transforms: []RequestTransform{
			Identity(tokens),
			Tenant(tenants),
		},
		normalizer: normalizer,
		base:       base,
	}, nil
}

// RoundTrip applies each transform in order, performs the request, and
// hands the outcome to the normalizer.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	for _, transform := range p.transforms {
		req = transform(req)
	}
	resp, err := p.base.RoundTrip(req)
	return p.normalizer.Observe(req, resp, err)
}

// Client wraps the pipeline in a ready-to-use *http.Client.
func (p *Pipeline) Client() *http.Client {
	return &http.Client{Transport: p}
}
