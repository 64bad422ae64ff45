package cache

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"jobtrail-utils/internal/config"
	"jobtrail-utils/pkg/models"
	"jobtrail-utils/pkg/utils"
)

// Store is the result cache contract. Only successful parses are stored;
// the orchestrator owns the skip-cache decision and never consults a store
// on a bypassed request.
type Store interface {
	Get(ctx context.Context, rawURL string) (*models.ParsedJobData, bool)
	Set(ctx context.Context, rawURL string, data *models.ParsedJobData)
	Delete(ctx context.Context, rawURL string)
	Stats(ctx context.Context) Stats
	Close() error
}

// Stats reports cache counters for the stats endpoint.
type Stats struct {
	Backend string
	Entries int
	Hits    uint64
	Misses  uint64
}

// New selects a store backend from configuration, mirroring the engine
// factory pattern: memory is the default, redis is opt-in for deployments
// that want parse results shared across instances.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return NewMemoryStore(cfg.Cache.MaxEntries, cfg.Cache.TTL), nil
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}

// jobParamKeys is the allow-list of query parameters that identify a job
// posting. Everything else (tracking params, session state) is dropped so
// URL variants of the same posting share one cache entry.
var jobParamKeys = []string{
	"currentJobId", "jk", "gh_jid", "lever-source",
	"job", "jobid", "job_id", "id", "position",
}

// NormalizeURL builds the cache key: lowercase host minus www., lowercase
// path, and only the allow-listed job-identifier query parameters. URLs
// that do not parse fall back to their lowercased raw form.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return strings.ToLower(rawURL)
	}

	host := utils.RegistrableDomain(u.Hostname())
	path := strings.ToLower(strings.TrimRight(u.Path, "/"))

	kept := url.Values{}
	for key, vals := range u.Query() {
		if !isJobParam(key) {
			continue
		}
		for _, v := range vals {
			kept.Add(key, v)
		}
	}

	key := host + path
	if len(kept) > 0 {
		// Deterministic ordering so equivalent URLs produce equal keys.
		keys := make([]string, 0, len(kept))
		for k := range kept {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var pairs []string
		for _, k := range keys {
			for _, v := range kept[k] {
				pairs = append(pairs, k+"="+v)
			}
		}
		key += "?" + strings.Join(pairs, "&")
	}
	return key
}

func isJobParam(key string) bool {
	lower := strings.ToLower(key)
	for _, allowed := range jobParamKeys {
		la := strings.ToLower(allowed)
		if lower == la || strings.Contains(lower, la) {
			return true
		}
	}
	return false
}
