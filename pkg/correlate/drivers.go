package correlate

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// driverEntry is the last known pilot -> vehicle binding.
type driverEntry struct {
	ship     string
	lastSeen time.Time
}

// driverCache holds pilot -> vehicle associations with lazy TTL pruning.
// An optional Redis client gives the cache a write-through backing store
// so associations survive a process restart; with no client configured the
// in-memory map is authoritative.
type driverCache struct {
	entries map[string]driverEntry
	ttl     time.Duration
	now     func() time.Time

	rdb *redis.Client
	ctx context.Context
}

func newDriverCache(now func() time.Time, rdb *redis.Client) *driverCache {
	return &driverCache{
		entries: make(map[string]driverEntry),
		ttl:     driverTTL,
		now:     now,
		rdb:     rdb,
		ctx:     context.Background(),
	}
}

func (dc *driverCache) put(name, ship string) {
	if name == "" {
		return
	}
	dc.entries[name] = driverEntry{ship: ship, lastSeen: dc.now()}

	if dc.rdb != nil {
		key := "killfeed:driver:" + name
		if err := dc.rdb.Set(dc.ctx, key, ship, dc.ttl).Err(); err != nil {
			log.Printf("Redis set error: %v", err)
		}
	}
}

// ship returns the vehicle associated with a pilot, if the association is
// still within its TTL. Stale entries are pruned at this read point.
func (dc *driverCache) ship(name string) (string, bool) {
	dc.prune()
	if entry, ok := dc.entries[name]; ok {
		return entry.ship, true
	}

	if dc.rdb != nil {
		key := "killfeed:driver:" + name
		ship, err := dc.rdb.Get(dc.ctx, key).Result()
		if err == nil {
			dc.entries[name] = driverEntry{ship: ship, lastSeen: dc.now()}
			return ship, true
		}
	}

	return "", false
}

// reverseLookup finds a pilot whose associated vehicle identifier contains
// the given token. Used to turn entity identifiers back into names.
func (dc *driverCache) reverseLookup(token string) (string, bool) {
	dc.prune()
	for name, entry := range dc.entries {
		if entry.ship != "" && strings.Contains(entry.ship, token) {
			return name, true
		}
	}
	return "", false
}

func (dc *driverCache) prune() {
	t := dc.now()
	for name, entry := range dc.entries {
		if t.Sub(entry.lastSeen) > dc.ttl {
			delete(dc.entries, name)
		}
	}
}

func (dc *driverCache) len() int {
	return len(dc.entries)
}
