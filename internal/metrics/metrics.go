// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Entity names used as metric labels.
const (
	EntityUser    = "user"
	EntityProduct = "product"
	EntityOrder   = "order"
)

// Association operations.
const (
	AssociationAdded   = "added"
	AssociationRemoved = "removed"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Entity lifecycle metrics
	IncCreated(entity string)
	IncUpdated(entity string)
	IncDeleted(entity string)

	// Order/product association metrics
	IncAssociation(op string)

	// Product cache metrics
	IncProductCacheHit()
	IncProductCacheMiss()

	// HTTP metrics
	ObserveRequestDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
