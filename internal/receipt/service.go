package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tabsplit/tabsplit/internal/metrics"
	"github.com/tabsplit/tabsplit/internal/ocr"
)

// IDGenerator generates unique IDs for receipts, items and members.
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time.
type TimeSource interface {
	Now() time.Time
}

type defaultIDGenerator struct{}

func (defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service runs the capture pipeline (image -> detected text -> parsed
// draft) and mediates all edits to the session state.
type Service struct {
	detector    ocr.TextDetector
	session     *Session
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a Service with UUID identifiers and wall-clock time.
func NewService(detector ocr.TextDetector, session *Session) *Service {
	return NewServiceWithDeps(detector, session, defaultIDGenerator{}, defaultTimeSource{})
}

// NewServiceWithDeps creates a Service with custom dependencies for testing.
func NewServiceWithDeps(detector ocr.TextDetector, session *Session, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		detector:    detector,
		session:     session,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessImage runs text detection on an uploaded receipt image and
// installs the parsed draft as the session's active receipt. Detection
// errors surface only when the configured detector has no fallback.
func (s *Service) ProcessImage(ctx context.Context, filename string, data []byte, contentType string) (*Receipt, error) {
	text, err := s.detector.DetectText(ctx, data, contentType)
	if err != nil {
		slog.Error("text detection failed",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		return nil, fmt.Errorf("detecting text: %w", err)
	}

	slog.Info("receipt text detected", "filename", filename, "chars", len(text))
	return s.ProcessText(text), nil
}

// ProcessText parses raw OCR text into a draft and makes it the active
// receipt. It accepts anything, including an empty string.
func (s *Service) ProcessText(text string) *Receipt {
	rcpt := Parse(text)
	rcpt.ID = s.idGenerator.Generate()
	rcpt.CreatedAt = s.timeSource.Now()
	s.session.SetReceipt(rcpt)
	metrics.ReceiptsParsed.Inc()
	slog.Info("receipt draft created", "id", rcpt.ID, "items", len(rcpt.Items), "total", rcpt.Total)
	return rcpt
}

// AddMember registers a group member and returns it with its new ID.
func (s *Service) AddMember(name string) Participant {
	p := Participant{ID: s.idGenerator.Generate(), Name: name}
	s.session.AddMember(p)
	return p
}

// RenameMember updates a member's name.
func (s *Service) RenameMember(id, name string) bool {
	return s.session.RenameMember(id, name)
}

// RemoveMember drops a member from the group.
func (s *Service) RemoveMember(id string) bool {
	return s.session.RemoveMember(id)
}

// Members returns the group in registration order.
func (s *Service) Members() []Participant {
	return s.session.Members()
}

// CurrentReceipt returns the active receipt, or nil before any capture.
func (s *Service) CurrentReceipt() *Receipt {
	return s.session.Receipt()
}

// AddItem appends a manually entered item to the active receipt.
func (s *Service) AddItem(name string, price Amount) (LineItem, bool) {
	item := LineItem{
		ID:         s.idGenerator.Generate(),
		Name:       name,
		Price:      price,
		AssignedTo: []string{},
	}
	if !s.session.AddItem(item) {
		return LineItem{}, false
	}
	return item, true
}

// UpdateItem renames an item and/or changes its price.
func (s *Service) UpdateItem(id, name string, price Amount) bool {
	return s.session.UpdateItem(id, name, price)
}

// RemoveItem deletes an item from the active receipt.
func (s *Service) RemoveItem(id string) bool {
	return s.session.RemoveItem(id)
}

// UpdateTotals sets subtotal, tax and tip; the total becomes their sum.
func (s *Service) UpdateTotals(subtotal, tax, tip Amount) bool {
	return s.session.UpdateTotals(subtotal, tax, tip)
}

// ToggleAssignee flips a member's membership in an item's assignee set.
func (s *Service) ToggleAssignee(itemID, memberID string) bool {
	return s.session.ToggleAssignee(itemID, memberID)
}

// Settlements computes the current debts toward the payer.
func (s *Service) Settlements() []Settlement {
	metrics.SettlementsComputed.Inc()
	return s.session.Settlements()
}

// Close releases the detector.
func (s *Service) Close() error {
	return s.detector.Close()
}
