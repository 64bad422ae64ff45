package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"jobtrail-utils/pkg/models"
)

// MemoryStore is the default in-process cache: capacity-bounded with
// oldest-first eviction, a fixed TTL, and recency refreshed on every hit.
// Nothing survives a process restart.
type MemoryStore struct {
	entries *ttlcache.Cache[string, *models.ParsedJobData]
}

// NewMemoryStore creates an in-memory store with the given bounds.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	entries := ttlcache.New[string, *models.ParsedJobData](
		ttlcache.WithTTL[string, *models.ParsedJobData](ttl),
		ttlcache.WithCapacity[string, *models.ParsedJobData](uint64(maxEntries)),
	)
	go entries.Start()

	return &MemoryStore{entries: entries}
}

func (m *MemoryStore) Get(_ context.Context, rawURL string) (*models.ParsedJobData, bool) {
	// Get touches the entry, refreshing its age; expired entries are
	// never returned.
	item := m.entries.Get(NormalizeURL(rawURL))
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (m *MemoryStore) Set(_ context.Context, rawURL string, data *models.ParsedJobData) {
	m.entries.Set(NormalizeURL(rawURL), data, ttlcache.DefaultTTL)
}

func (m *MemoryStore) Delete(_ context.Context, rawURL string) {
	m.entries.Delete(NormalizeURL(rawURL))
}

func (m *MemoryStore) Stats(_ context.Context) Stats {
	metrics := m.entries.Metrics()
	return Stats{
		Backend: "memory",
		Entries: m.entries.Len(),
		Hits:    metrics.Hits,
		Misses:  metrics.Misses,
	}
}

func (m *MemoryStore) Close() error {
	m.entries.Stop()
	return nil
}
