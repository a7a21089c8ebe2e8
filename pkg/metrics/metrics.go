// Package metrics provides the centralized Prometheus metrics reference for
// the orders dashboard. All metrics are defined in their owning packages
// (client, batch, detailcache, httpapi) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the dashboard.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Trade API Client Metrics (pkg/client):
//   - trade_api_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - trade_api_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - trade_api_errors_total{class} (Counter): Errors by class (client, server, network)
//
// Batch Metrics (pkg/batch):
//   - batch_fetches_total (Counter): Detail batches processed
//   - batch_fetch_duration_seconds (Histogram): Duration of one batch
//   - batch_fetch_results_total{result} (Counter): Per-id outcomes (fetched, cache_hit, failed)
//   - batch_fetch_failures_total{error_class} (Counter): Dropped fetches by error class
//
// Detail Cache Metrics (pkg/detailcache):
//   - detail_cache_hits_total (Counter): Cache hits
//   - detail_cache_misses_total (Counter): Cache misses
//   - detail_cache_flushes_total (Counter): Full flushes triggered by the entry ceiling
//   - detail_cache_entries (Gauge): Current entry count
//
// HTTP Metrics (internal/httpapi):
//   - dashboard_http_requests_total{method, path, status} (Counter): Requests by route
//   - dashboard_http_request_duration_seconds{path} (Histogram): Request duration by route
//
// Example Prometheus Queries:
//
//   # Detail cache hit rate
//   rate(detail_cache_hits_total[5m]) /
//   (rate(detail_cache_hits_total[5m]) + rate(detail_cache_misses_total[5m]))
//
//   # Share of batch ids dropped by failures
//   rate(batch_fetch_results_total{result="failed"}[5m]) /
//   sum(rate(batch_fetch_results_total[5m]))
//
//   # P95 trade API latency
//   histogram_quantile(0.95, rate(trade_api_request_duration_seconds_bucket[5m]))
