// Package ocr is the boundary to external document-text-detection
// services. A detector turns a receipt image into a raw block of text;
// interpreting that text is the receipt package's job.
package ocr

import "context"

// TextDetector extracts the printed text from a receipt image.
type TextDetector interface {
	// DetectText analyzes a receipt image or PDF and returns its text,
	// one printed line per output line.
	DetectText(ctx context.Context, image []byte, contentType string) (string, error)
	// Close releases any resources held by the detector.
	Close() error
}
