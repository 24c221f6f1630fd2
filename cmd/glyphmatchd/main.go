// Command glyphmatchd serves Unicode variant patterns over HTTP.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glyphsearch/glyphmatch/pkg/cache"
	"github.com/glyphsearch/glyphmatch/pkg/config"
	"github.com/glyphsearch/glyphmatch/pkg/httpapi"
	"github.com/glyphsearch/glyphmatch/pkg/variant"
)

func main() {
	configPath := flag.String("config", os.Getenv("GLYPHMATCH_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("glyphmatchd: %v", err)
	}

	// build the map eagerly so the first request does not pay for it
	start := time.Now()
	matcher := variant.NewMatcher(cfg.CodePointRanges())
	matcher.MinReplaced = cfg.MinReplaced
	log.Printf("glyphmatchd: variant map ready: %d keys (%d multi-char) in %s",
		matcher.KeyCount(), matcher.MultiKeyCount(), time.Since(start).Round(time.Millisecond))

	var pc *cache.PatternCache
	if cfg.Redis.Enabled {
		pc = cache.New(cfg.Redis.Addr, cfg.CacheTTL())
		defer func() { _ = pc.Close() }()
		log.Printf("glyphmatchd: pattern cache enabled at %s", cfg.Redis.Addr)
	}

	srv := httpapi.New(matcher, pc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("glyphmatchd: listening on %s", cfg.Server.Addr)
		errCh <- srv.Listen(cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("glyphmatchd: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("glyphmatchd: shutdown: %v", err)
		}
		log.Print("glyphmatchd: stopped")
	}
}
