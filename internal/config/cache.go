package config

import (
	"os"
	"strings"
	"time"
)

// CacheConfig controls the Redis response cache in front of the public
// recipe, blog and rating reads.  Entries live for TTL unless the
// namespace has an override in NamespaceTTL; any successful write to a
// namespace purges it regardless.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	NamespaceTTL map[string]time.Duration
	KeyStrategy  string // "path" or "path_query"
	Prefix       string
	MaxBodyBytes int
}

// TTLFor returns the lifetime of entries in namespace ns.
func (c CacheConfig) TTLFor(ns string) time.Duration {
	if d, ok := c.NamespaceTTL[ns]; ok && d > 0 {
		return d
	}
	return c.TTL
}

// LoadCacheConfig reads the CACHE_* variables.  CACHE_NS_TTL takes a list
// such as "ratings=10s,recipes=1m"; entries that do not parse are skipped.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      splitSet(getenv("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		NamespaceTTL: parseNamespaceTTL(os.Getenv("CACHE_NS_TTL")),
		KeyStrategy:  strings.ToLower(getenv("CACHE_KEY_STRATEGY", "path_query")),
		Prefix:       getenv("CACHE_PREFIX", "recipe-api:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.KeyStrategy != "path" {
		cfg.KeyStrategy = "path_query"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	return cfg
}

// splitSet turns "get, head" into {"GET", "HEAD"}.
func splitSet(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			m[p] = true
		}
	}
	return m
}

func parseNamespaceTTL(s string) map[string]time.Duration {
	out := map[string]time.Duration{}
	for _, pair := range strings.Split(s, ",") {
		ns, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || ns == "" {
			continue
		}
		if d, err := time.ParseDuration(strings.TrimSpace(raw)); err == nil && d > 0 {
			out[strings.TrimSpace(ns)] = d
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
