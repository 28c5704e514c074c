package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Created                map[string]uint64
	Updated                map[string]uint64
	Deleted                map[string]uint64
	Associations           map[string]uint64
	ProductCacheHits       uint64
	ProductCacheMisses     uint64
	RequestCount           uint64
	RequestDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests and the
// /metrics endpoint.
type InMemoryRecorder struct {
	mu           sync.Mutex
	created      map[string]uint64
	updated      map[string]uint64
	deleted      map[string]uint64
	associations map[string]uint64

	productCacheHits       uint64
	productCacheMisses     uint64
	requestCount           uint64
	requestDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		created:      make(map[string]uint64),
		updated:      make(map[string]uint64),
		deleted:      make(map[string]uint64),
		associations: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Created:                copyCounts(m.created),
		Updated:                copyCounts(m.updated),
		Deleted:                copyCounts(m.deleted),
		Associations:           copyCounts(m.associations),
		ProductCacheHits:       atomic.LoadUint64(&m.productCacheHits),
		ProductCacheMisses:     atomic.LoadUint64(&m.productCacheMisses),
		RequestCount:           atomic.LoadUint64(&m.requestCount),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
	}
}

// IncCreated increments the created counter for entity.
func (m *InMemoryRecorder) IncCreated(entity string) {
	m.inc(m.created, entity)
}

// IncUpdated increments the updated counter for entity.
func (m *InMemoryRecorder) IncUpdated(entity string) {
	m.inc(m.updated, entity)
}

// IncDeleted increments the deleted counter for entity.
func (m *InMemoryRecorder) IncDeleted(entity string) {
	m.inc(m.deleted, entity)
}

// IncAssociation increments the association counter for op.
func (m *InMemoryRecorder) IncAssociation(op string) {
	m.inc(m.associations, op)
}

// IncProductCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncProductCacheHit() {
	atomic.AddUint64(&m.productCacheHits, 1)
}

// IncProductCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncProductCacheMiss() {
	atomic.AddUint64(&m.productCacheMisses, 1)
}

// ObserveRequestDuration records an HTTP request duration.
func (m *InMemoryRecorder) ObserveRequestDuration(duration time.Duration) {
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
}

func (m *InMemoryRecorder) inc(counts map[string]uint64, key string) {
	m.mu.Lock()
	counts[key]++
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
