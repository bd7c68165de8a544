package orbital

import (
	"fmt"

	"github.com/orbitforge/astrosim/pkg/astromath"
)

const (
	// defaultCacheCapacity bounds the number of memoized state vectors.
	defaultCacheCapacity = 1000

	// defaultTimeTolerance is the maximum Julian-date distance (days) a
	// cached entry may sit from a request and still count as a hit.
	defaultTimeTolerance = 0.01
)

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	Size     int     `json:"size"`
	Capacity int     `json:"capacity"`
	HitRate  float64 `json:"hit_rate_percent"`
}

type cacheEntry struct {
	julianDate  float64
	position    astromath.Vector3
	velocity    astromath.Vector3
	accessCount int
}

// stateCache memoizes (elements, date, central mass) -> state vector.
// The access counter is incremented only when an entry is inserted, never
// on later hits, so the eviction pass degenerates to FIFO by insertion
// order. That corner is intentional externally observable behavior; do not
// "fix" it to true LRU.
type stateCache struct {
	entries   map[string]*cacheEntry
	order     []string // insertion order, oldest first
	capacity  int
	tolerance float64
	hits      uint64
	misses    uint64
}

func newStateCache(capacity int, tolerance float64) *stateCache {
	return &stateCache{
		entries:   make(map[string]*cacheEntry, capacity),
		capacity:  capacity,
		tolerance: tolerance,
	}
}

// cacheKey folds the elements, the date rounded to a fixed precision and
// the central mass into a deterministic string key.
func cacheKey(el Elements, julianDate, centralMass float64) string {
	return fmt.Sprintf("%.10f|%.10f|%.6f|%.6f|%.6f|%.6f|%.6f|%.2f|%.6e",
		el.SemiMajorAxis, el.Eccentricity, el.Inclination,
		el.LongitudeOfAscendingNode, el.ArgumentOfPerihelion,
		el.MeanAnomalyAtEpoch, el.Epoch, julianDate, centralMass)
}

func (s *stateCache) get(el Elements, julianDate, centralMass float64) (astromath.Vector3, astromath.Vector3, bool) {
	key := cacheKey(el, julianDate, centralMass)
	entry, ok := s.entries[key]
	if !ok {
		s.misses++
		return astromath.Vector3{}, astromath.Vector3{}, false
	}

	// A stale entry whose exact date drifted outside the tolerance window
	// is evicted and recomputed.
	if diff := entry.julianDate - julianDate; diff > s.tolerance || diff < -s.tolerance {
		s.remove(key)
		s.misses++
		return astromath.Vector3{}, astromath.Vector3{}, false
	}

	s.hits++
	return entry.position, entry.velocity, true
}

func (s *stateCache) put(el Elements, julianDate, centralMass float64, position, velocity astromath.Vector3) {
	key := cacheKey(el, julianDate, centralMass)
	if existing, ok := s.entries[key]; ok {
		existing.julianDate = julianDate
		existing.position = position
		existing.velocity = velocity
		existing.accessCount++
		return
	}

	if len(s.entries) >= s.capacity {
		s.evictLeastAccessed()
	}

	s.entries[key] = &cacheEntry{
		julianDate:  julianDate,
		position:    position,
		velocity:    velocity,
		accessCount: 1,
	}
	s.order = append(s.order, key)
}

// evictLeastAccessed drops the entry with the smallest access count,
// scanning in insertion order so ties fall on the oldest entry.
func (s *stateCache) evictLeastAccessed() {
	victim := ""
	lowest := 0
	for _, key := range s.order {
		entry, ok := s.entries[key]
		if !ok {
			continue
		}
		if victim == "" || entry.accessCount < lowest {
			victim = key
			lowest = entry.accessCount
		}
	}
	if victim != "" {
		s.remove(victim)
	}
}

func (s *stateCache) remove(key string) {
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *stateCache) stats() CacheStats {
	total := s.hits + s.misses
	rate := 0.0
	if total > 0 {
		rate = float64(s.hits) / float64(total) * 100
	}
	return CacheStats{
		Hits:     s.hits,
		Misses:   s.misses,
		Size:     len(s.entries),
		Capacity: s.capacity,
		HitRate:  rate,
	}
}

func (s *stateCache) clear() {
	s.entries = make(map[string]*cacheEntry, s.capacity)
	s.order = s.order[:0]
	s.hits = 0
	s.misses = 0
}
