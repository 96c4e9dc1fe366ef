package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Set("X-Cache", "MISS")
	body := []byte(`{"items":[]}`)

	enc, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(enc)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", gotHdr.Get("Content-Type"))
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, bytes.Repeat([]byte{0xff}, 8)} {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Errorf("decodePayload accepted %v", bs)
		}
	}
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	e := echo.New()
	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/search/items")
		return cacheKey("cache", c)
	}
	a := mk("/v1/search/items?query=watch")
	b := mk("/v1/search/items?query=ring")
	if a == b {
		t.Error("different queries share one cache key")
	}
	if a != mk("/v1/search/items?query=watch") {
		t.Error("same request hashed to different keys")
	}
}

func TestRedisCacheNoopWithoutClient(t *testing.T) {
	// With no Redis client the middleware must pass requests straight
	// through untouched.
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/items", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !called {
		t.Error("next handler was not invoked")
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Errorf("no-op middleware set X-Cache=%q", rec.Header().Get("X-Cache"))
	}
}
