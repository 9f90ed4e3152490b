// Package metrics holds the service's Prometheus counters. They register
// on the default registry; the server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReceiptsParsed counts receipt drafts produced by the parser,
	// including degenerate single-item fallbacks.
	ReceiptsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabsplit_receipts_parsed_total",
		Help: "Receipt drafts produced by the parser.",
	})

	// DetectorFallbacks counts captures where the sample receipt replaced
	// a failed or empty text detection.
	DetectorFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabsplit_detector_fallbacks_total",
		Help: "Text detections replaced by the canned sample receipt.",
	})

	// SettlementsComputed counts settlement calculations served.
	SettlementsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tabsplit_settlements_computed_total",
		Help: "Settlement calculations served.",
	})
)
