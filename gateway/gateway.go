package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"omdb_proxy/cache"
	"omdb_proxy/logger"
	"omdb_proxy/lookup"

	gojson "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Cache states reported in the X-Cache header and the request log.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheShared = "SHARED"
	CacheBypass = "BYPASS"
)

// Gateway answers movie lookups from the cache, falling back to upstream.
type Gateway struct {
	cache    cache.Service
	upstream lookup.Service
	flight   singleflight.Group
}

// New creates a Gateway serving lookups from cacheSvc and upstream.
func New(cacheSvc cache.Service, upstream lookup.Service) *Gateway {
	return &Gateway{
		cache:    cacheSvc,
		upstream: upstream,
	}
}

// Handle resolves the lookup in values and returns the JSON body and HTTP
// status to answer with.
func (g *Gateway) Handle(ctx context.Context, values url.Values) ([]byte, int) {
	body, status, _ := g.serve(ctx, values)
	return body, status
}

// Lookup returns the upstream body for q, from the cache when present.
// Concurrent lookups of the same uncached key share one upstream call.
func (g *Gateway) Lookup(ctx context.Context, q lookup.Query) (json.RawMessage, error) {
	body, _, err := g.lookup(ctx, q)
	return body, err
}

func (g *Gateway) serve(ctx context.Context, values url.Values) ([]byte, int, string) {
	q, err := lookup.ParseQuery(values)
	if err != nil {
		logger.Debugf("Rejected lookup %q: %s", values.Encode(), err)
		return errorBody(lookup.KindOf(err)), lookup.KindOf(err).Status(), CacheBypass
	}

	body, state, err := g.lookup(ctx, q)
	if err != nil {
		kind := lookup.KindOf(err)
		logger.Errorf("Error fetching data from OMDB API for %s: %s", q, err)
		return errorBody(kind), kind.Status(), state
	}
	return body, http.StatusOK, state
}

func (g *Gateway) lookup(ctx context.Context, q lookup.Query) (json.RawMessage, string, error) {
	key := cache.KeyFor(q)
	if body, ok := g.cached(ctx, key); ok {
		logger.Debugf("Hit cache: %s", key)
		return body, CacheHit, nil
	}

	// The flight outlives a caller that goes away; the upstream timeout bounds it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := g.flight.Do(key.String(), func() (interface{}, error) {
		if body, ok := g.cached(flightCtx, key); ok {
			return body, nil
		}
		body, err := g.upstream.Lookup(flightCtx, q)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", q, err)
		}
		if err := g.cache.Set(flightCtx, key, body); err != nil {
			logger.Warnf("Failed to cache %s: %s", key, err)
		}
		return body, nil
	})

	state := CacheMiss
	if shared {
		state = CacheShared
	}
	if err != nil {
		return nil, state, err
	}
	return v.(json.RawMessage), state, nil
}

func (g *Gateway) cached(ctx context.Context, key cache.Key) (json.RawMessage, bool) {
	body, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		logger.Warnf("Failed to read cache for %s: %s", key, err)
		return nil, false
	}
	return body, ok
}

func errorBody(kind lookup.ErrorKind) []byte {
	body, _ := gojson.Marshal(map[string]string{"error": kind.Message()})
	return body
}
