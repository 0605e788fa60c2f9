package recommend

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

// ResultCache remembers successful AI rankings. Entries are keyed by disaster
// type, the user's location rounded to roughly 100 m, and the candidate ids,
// so a hit always refers to the same candidate set. Distances are recomputed
// on every hit.
type ResultCache struct {
	c *cache.Cache
}

// NewResultCache creates a cache with the given TTL. A cleanupInterval of 0
// disables the background janitor.
func NewResultCache(ttl, cleanupInterval time.Duration) *ResultCache {
	return &ResultCache{c: cache.New(ttl, cleanupInterval)}
}

func cacheKey(dt models.DisasterType, user models.Location, candidateIDs []string) string {
	return fmt.Sprintf("%s|%.3f,%.3f|%s", dt, user.Latitude, user.Longitude, strings.Join(candidateIDs, ","))
}

func (rc *ResultCache) get(key string) ([]rankEntry, bool) {
	if rc == nil {
		return nil, false
	}
	v, ok := rc.c.Get(key)
	if !ok {
		return nil, false
	}
	entries, ok := v.([]rankEntry)
	return entries, ok
}

func (rc *ResultCache) set(key string, entries []rankEntry) {
	if rc == nil {
		return
	}
	rc.c.Set(key, append([]rankEntry(nil), entries...), cache.DefaultExpiration)
}

func (rc *ResultCache) Len() int {
	if rc == nil {
		return 0
	}
	return rc.c.ItemCount()
}

func (rc *ResultCache) Flush() {
	if rc != nil {
		rc.c.Flush()
	}
}
