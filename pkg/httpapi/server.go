// Package httpapi exposes the pattern engine over HTTP so non-Go search
// stacks can fetch variant patterns for their queries.
package httpapi

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/glyphsearch/glyphmatch/pkg/cache"
	"github.com/glyphsearch/glyphmatch/pkg/variant"
)

// PatternResponse is the body of GET /v1/pattern.
type PatternResponse struct {
	RequestID   string `json:"request_id"`
	Input       string `json:"input"`
	Folded      string `json:"folded"`
	Pattern     string `json:"pattern,omitempty"`
	HasVariants bool   `json:"has_variants"`
	Cached      bool   `json:"cached"`
}

// FoldResponse is the body of GET /v1/fold.
type FoldResponse struct {
	RequestID string `json:"request_id"`
	Input     string `json:"input"`
	Folded    string `json:"folded"`
}

type healthResponse struct {
	Status        string `json:"status"`
	Keys          int    `json:"keys"`
	MultiCharKeys int    `json:"multi_char_keys"`
	CacheHealthy  *bool  `json:"cache_healthy,omitempty"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// Server serves fold and pattern lookups for one Matcher. The cache is
// optional; cache failures degrade to recomputation, never to request
// failures.
type Server struct {
	matcher *variant.Matcher
	cache   *cache.PatternCache
	app     *fiber.App
}

// New wires routes for matcher. pc may be nil to disable caching.
func New(matcher *variant.Matcher, pc *cache.PatternCache) *Server {
	s := &Server{
		matcher: matcher,
		cache:   pc,
		app:     fiber.New(fiber.Config{AppName: "glyphmatch"}),
	}
	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/v1/fold", s.handleFold)
	s.app.Get("/v1/pattern", s.handlePattern)
	return s
}

// App exposes the fiber application for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	resp := healthResponse{
		Status:        "ok",
		Keys:          s.matcher.KeyCount(),
		MultiCharKeys: s.matcher.MultiKeyCount(),
	}
	if s.cache != nil {
		healthy := s.cache.Healthy(c.Context())
		resp.CacheHealthy = &healthy
	}
	return c.JSON(resp)
}

func (s *Server) handleFold(c fiber.Ctx) error {
	requestID := uuid.NewString()
	input := c.Query("q")
	if input == "" {
		return badRequest(c, requestID, "missing query parameter q")
	}
	return c.JSON(FoldResponse{
		RequestID: requestID,
		Input:     input,
		Folded:    variant.Fold(input),
	})
}

func (s *Server) handlePattern(c fiber.Ctx) error {
	requestID := uuid.NewString()
	input := c.Query("q")
	if input == "" {
		return badRequest(c, requestID, "missing query parameter q")
	}

	folded := variant.Fold(input)
	resp := PatternResponse{
		RequestID: requestID,
		Input:     input,
		Folded:    folded,
	}

	if s.cache != nil {
		pattern, hasVariant, hit, err := s.cache.Lookup(c.Context(), folded)
		if err != nil {
			// treat a broken cache as a miss
			log.Printf("[httpapi] cache lookup failed (request %s): %v", requestID, err)
		} else if hit {
			resp.Pattern = pattern
			resp.HasVariants = hasVariant
			resp.Cached = true
			return c.JSON(resp)
		}
	}

	pattern, ok := s.matcher.Pattern(input)
	resp.Pattern = pattern
	resp.HasVariants = ok
	if s.cache != nil {
		if err := s.cache.Store(c.Context(), folded, pattern, ok); err != nil {
			log.Printf("[httpapi] cache store failed (request %s): %v", requestID, err)
		}
	}
	return c.JSON(resp)
}

func badRequest(c fiber.Ctx, requestID, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		RequestID: requestID,
		Error:     msg,
	})
}
