package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"

	"github.com/glyphsearch/glyphmatch/pkg/cache"
	"github.com/glyphsearch/glyphmatch/pkg/variant"
)

func newTestServer(t *testing.T, pc *cache.PatternCache) *Server {
	t.Helper()
	// Ⅱ only: folded key "ii", no entry for "i"
	m := variant.NewMatcher([]variant.CodePointRange{{Lo: 0x2161, Hi: 0x2161}})
	return New(m, pc)
}

func doGet(t *testing.T, s *Server, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.App().Test(req, fiber.TestConfig{Timeout: 10 * time.Second, FailOnTimeout: true})
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	resp := doGet(t, s, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
	if body["keys"].(float64) < 1 {
		t.Error("expected at least one map key reported")
	}
}

func TestFoldEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	resp := doGet(t, s, "/v1/fold?q="+url.QueryEscape("Ĥéĺĺó"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[FoldResponse](t, resp)
	if body.Folded != "hello" {
		t.Errorf("folded = %q, want %q", body.Folded, "hello")
	}
	if body.RequestID == "" {
		t.Error("missing request_id")
	}
}

func TestPatternEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	resp := doGet(t, s, "/v1/pattern?q=ii")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[PatternResponse](t, resp)
	if !body.HasVariants {
		t.Fatal("expected variants for input ii")
	}
	if body.Pattern != "(?:ii|Ⅱ)" {
		t.Errorf("pattern = %q, want %q", body.Pattern, "(?:ii|Ⅱ)")
	}
	if body.Cached {
		t.Error("response marked cached without a cache")
	}
}

func TestPatternEndpointNoVariants(t *testing.T) {
	s := newTestServer(t, nil)
	resp := doGet(t, s, "/v1/pattern?q=xyz123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decode[PatternResponse](t, resp)
	if body.HasVariants || body.Pattern != "" {
		t.Errorf("expected no variants, got pattern %q", body.Pattern)
	}
}

func TestPatternEndpointMissingQuery(t *testing.T) {
	s := newTestServer(t, nil)
	for _, path := range []string{"/v1/pattern", "/v1/fold"} {
		resp := doGet(t, s, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s without q: status = %d, want 400", path, resp.StatusCode)
		}
	}
}

func TestPatternEndpointUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	pc := cache.New(mr.Addr(), time.Minute)
	t.Cleanup(func() { _ = pc.Close() })
	s := newTestServer(t, pc)

	first := decode[PatternResponse](t, doGet(t, s, "/v1/pattern?q=ii"))
	if first.Cached {
		t.Error("first request should not be served from cache")
	}
	second := decode[PatternResponse](t, doGet(t, s, "/v1/pattern?q=ii"))
	if !second.Cached {
		t.Error("second request should be served from cache")
	}
	if second.Pattern != first.Pattern || !second.HasVariants {
		t.Errorf("cached response differs: %+v vs %+v", second, first)
	}

	// equivalent spellings share the folded cache key
	third := decode[PatternResponse](t, doGet(t, s, "/v1/pattern?q="+url.QueryEscape("Ⅱ")))
	if !third.Cached {
		t.Error("fold-equivalent input should hit the same cache entry")
	}
}

func TestPatternEndpointSurvivesCacheOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	pc := cache.New(mr.Addr(), time.Minute)
	t.Cleanup(func() { _ = pc.Close() })
	s := newTestServer(t, pc)
	mr.Close()

	resp := doGet(t, s, "/v1/pattern?q=ii")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite cache outage", resp.StatusCode)
	}
	body := decode[PatternResponse](t, resp)
	if !body.HasVariants || body.Cached {
		t.Errorf("unexpected response during outage: %+v", body)
	}
}
