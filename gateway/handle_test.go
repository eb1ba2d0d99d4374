package gateway

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"omdb_proxy/cache/memory"
	"omdb_proxy/lookup/omdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAPIKey = "test-key"

func newUpstreamServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestRouter(endpoint string) (*gin.Engine, *memory.Service) {
	store := memory.New()
	upstream := omdb.New(omdb.Config{Endpoint: endpoint, APIKey: testAPIKey})
	return NewRouter(New(store, upstream), false), store
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRouterIdentifierScenario(t *testing.T) {
	srv, calls := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("i") != "tt1375666" || q.Get("apikey") != testAPIKey {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"Title":"Inception","imdbID":"tt1375666"}`))
	})
	router, _ := newTestRouter(srv.URL)

	first := get(router, "/?i=tt1375666")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, `{"Title":"Inception","imdbID":"tt1375666"}`, first.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Equal(t, CacheMiss, first.Header().Get("X-Cache"))

	second := get(router, "/?i=tt1375666")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, CacheHit, second.Header().Get("X-Cache"))

	assert.EqualValues(t, 1, calls.Load())
}

func TestRouterNetworkErrorScenario(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()
	router, store := newTestRouter(endpoint)

	w := get(router, "/?t=Unobtainium")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Failed to fetch data from OMDB API"}`, w.Body.String())
	assert.Equal(t, 0, store.Len())
}

func TestRouterMissingParameters(t *testing.T) {
	srv, calls := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	router, _ := newTestRouter(srv.URL)

	w := get(router, "/")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required query parameter: i or t"}`, w.Body.String())
	assert.EqualValues(t, 0, calls.Load())
}

func TestRouterTitleWithReservedCharacters(t *testing.T) {
	title := "Fast & Furious #1"
	var got string
	srv, _ := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("t")
		w.Write([]byte(`{"Title":"Fast & Furious"}`))
	})
	router, _ := newTestRouter(srv.URL)

	w := get(router, "/?t="+url.QueryEscape(title))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, title, got)
}

func TestRouterIdentifierThenTitleCollision(t *testing.T) {
	srv, calls := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("i") {
			w.Write([]byte(`{"by":"identifier"}`))
			return
		}
		w.Write([]byte(`{"by":"title"}`))
	})
	router, _ := newTestRouter(srv.URL)

	assert.Equal(t, `{"by":"identifier"}`, get(router, "/?i=X").Body.String())
	assert.Equal(t, `{"by":"title"}`, get(router, "/?t=X").Body.String())
	assert.EqualValues(t, 2, calls.Load())
}

func TestRouterUpstreamStatusErrorIsNotCached(t *testing.T) {
	srv, calls := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	router, store := newTestRouter(srv.URL)

	w := get(router, "/?i=tt0000001")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, `{"error":"Invalid response from OMDB API"}`, w.Body.String())

	get(router, "/?i=tt0000001")
	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, 0, store.Len())
}

func TestRouterServesCachedOMDbErrorPayload(t *testing.T) {
	srv, calls := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})
	router, _ := newTestRouter(srv.URL)

	for i := 0; i < 2; i++ {
		w := get(router, "/?t=Nope")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `{"Response":"False","Error":"Movie not found!"}`, w.Body.String())
	}
	assert.EqualValues(t, 1, calls.Load())
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newUpstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	router, _ := newTestRouter(srv.URL)

	w := get(router, "/?i=tt0000001")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/?i=tt0000001", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestDebugRoutesOnlyInDebugMode(t *testing.T) {
	g := New(memory.New(), omdb.New(omdb.Config{APIKey: testAPIKey}))

	assert.Equal(t, http.StatusNotFound, get(NewRouter(g, false), "/debug/pprof/cmdline").Code)
	assert.Equal(t, http.StatusOK, get(NewRouter(g, true), "/debug/pprof/cmdline").Code)
}
