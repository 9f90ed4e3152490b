package ocr

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tabsplit/tabsplit/internal/metrics"
)

// SampleText is the canned receipt substituted when no text is available.
// Parsing it yields the demo draft: three items, subtotal 22.97, tax 2.07,
// total 25.04.
const SampleText = "Burger $12.99\n" +
	"Fries $5.99\n" +
	"Drink $3.99\n" +
	"Subtotal: $22.97\n" +
	"Tax: $2.07\n" +
	"Total: $25.04"

// Fallback wraps a primary detector and degrades to SampleText when the
// primary fails or comes back empty. A capture therefore always yields an
// editable draft; detection errors never reach the parsing or settlement
// logic. A nil primary always serves the sample.
type Fallback struct {
	primary TextDetector
}

// NewFallback wraps primary with sample-text degradation.
func NewFallback(primary TextDetector) *Fallback {
	return &Fallback{primary: primary}
}

// DetectText returns the primary detector's text, or SampleText when the
// primary errors or detects nothing. It never returns an error.
func (f *Fallback) DetectText(ctx context.Context, image []byte, contentType string) (string, error) {
	if f.primary == nil {
		metrics.DetectorFallbacks.Inc()
		return SampleText, nil
	}

	text, err := f.primary.DetectText(ctx, image, contentType)
	if err != nil {
		slog.Warn("text detection failed, serving sample receipt", "error", err)
		metrics.DetectorFallbacks.Inc()
		return SampleText, nil
	}
	if strings.TrimSpace(text) == "" {
		slog.Warn("text detection returned no text, serving sample receipt")
		metrics.DetectorFallbacks.Inc()
		return SampleText, nil
	}
	return text, nil
}

// Close closes the wrapped detector.
func (f *Fallback) Close() error {
	if f.primary == nil {
		return nil
	}
	return f.primary.Close()
}
