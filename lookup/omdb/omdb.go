package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"omdb_proxy/lookup"

	gojson "github.com/goccy/go-json"
)

const (
	DefaultEndpoint = "http://www.omdbapi.com/"
	DefaultTimeout  = 10 * time.Second
)

// HTTPClient represents the subset of *http.Client used by the service.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds what the OMDb service needs to talk to the API.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	Client   HTTPClient
}

// Service implements lookup.Service against the OMDb API.
type Service struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	client   HTTPClient
}

// New creates an OMDb service, filling unset fields with defaults.
func New(cfg Config) *Service {
	s := &Service{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		timeout:  cfg.Timeout,
		client:   cfg.Client,
	}
	if s.endpoint == "" {
		s.endpoint = DefaultEndpoint
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Lookup implements lookup.Service
func (s *Service) Lookup(ctx context.Context, q lookup.Query) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := s.buildUpstreamRequest(ctx, q)
	if err != nil {
		return nil, &lookup.Error{Kind: lookup.UpstreamError, Err: fmt.Errorf("fail to build upstream request: %w", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, transportError("fail to call upstream api", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError("fail to read upstream response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &lookup.Error{Kind: lookup.UpstreamError, Err: fmt.Errorf("upstream api returned status %d: %.200s", resp.StatusCode, body)}
	}
	if !gojson.Valid(body) {
		return nil, &lookup.Error{Kind: lookup.UpstreamError, Err: fmt.Errorf("upstream api returned invalid json: %.200s", body)}
	}

	return json.RawMessage(body), nil
}

func (s *Service) buildUpstreamRequest(ctx context.Context, q lookup.Query) (*http.Request, error) {
	param := q.Kind.Param()
	if param == "" {
		return nil, fmt.Errorf("unknown lookup kind %s", q.Kind)
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("fail to parse endpoint %q: %w", s.endpoint, err)
	}
	values := u.Query()
	values.Set(param, q.Value)
	values.Set("apikey", s.apiKey)
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fail to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func transportError(msg string, err error) error {
	kind := lookup.UpstreamUnavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = lookup.UpstreamTimeout
	}
	return &lookup.Error{Kind: kind, Err: fmt.Errorf("%s: %w", msg, err)}
}
