package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncCreated is a no-op.
func (n *NoopRecorder) IncCreated(entity string) {}

// IncUpdated is a no-op.
func (n *NoopRecorder) IncUpdated(entity string) {}

// IncDeleted is a no-op.
func (n *NoopRecorder) IncDeleted(entity string) {}

// IncAssociation is a no-op.
func (n *NoopRecorder) IncAssociation(op string) {}

// IncProductCacheHit is a no-op.
func (n *NoopRecorder) IncProductCacheHit() {}

// IncProductCacheMiss is a no-op.
func (n *NoopRecorder) IncProductCacheMiss() {}

// ObserveRequestDuration is a no-op.
func (n *NoopRecorder) ObserveRequestDuration(duration time.Duration) {}
