package handler

import (
	"fmt"
	"net/http"

	"github.com/storefront/storefront/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

var metricEntities = []string{metrics.EntityUser, metrics.EntityProduct, metrics.EntityOrder}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	for _, e := range metricEntities {
		writeMetric(w, "storefront_entities_created_total{entity=%q} %d\n", e, snap.Created[e])
	}
	for _, e := range metricEntities {
		writeMetric(w, "storefront_entities_updated_total{entity=%q} %d\n", e, snap.Updated[e])
	}
	for _, e := range metricEntities {
		writeMetric(w, "storefront_entities_deleted_total{entity=%q} %d\n", e, snap.Deleted[e])
	}

	for _, op := range []string{metrics.AssociationAdded, metrics.AssociationRemoved} {
		writeMetric(w, "storefront_order_products_total{op=%q} %d\n", op, snap.Associations[op])
	}

	writeMetric(w, "storefront_product_cache_hits_total %d\n", snap.ProductCacheHits)
	writeMetric(w, "storefront_product_cache_misses_total %d\n", snap.ProductCacheMisses)

	writeMetric(w, "storefront_http_request_duration_seconds_count %d\n", snap.RequestCount)
	writeMetric(w, "storefront_http_request_duration_seconds_sum %.6f\n", float64(snap.RequestDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
