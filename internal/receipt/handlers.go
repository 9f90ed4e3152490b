package receipt

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// Monetary fields arrive as free-form text from the edit surface and go
// through ParseAmount: anything non-numeric counts as zero, never as an
// error. Only structurally broken requests get a 400.

type memberRequest struct {
	Name string `json:"name"`
}

type textRequest struct {
	Text string `json:"text"`
}

type itemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type totalsRequest struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Tip      string `json:"tip"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

// handleListMembers returns the group in registration order.
func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Members())
}

// handleAddMember registers a group member.
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Member name is required")
		return
	}
	writeJSON(w, http.StatusCreated, s.service.AddMember(name))
}

// handleRenameMember updates a member's name.
func (s *Server) handleRenameMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Member name is required")
		return
	}
	if !s.service.RenameMember(r.PathValue("id"), name) {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	writeJSON(w, http.StatusOK, s.service.Members())
}

// handleRemoveMember drops a member from the group.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	if !s.service.RemoveMember(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Member not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadReceipt accepts a multipart receipt image, runs text
// detection and responds with the parsed draft.
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	// 50MB cap to handle high-resolution phone photos.
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		writeError(w, http.StatusBadRequest, "File is too large. Maximum size is 50MB.")
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "Error reading file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = contentTypeFromExt(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	rcpt, err := s.service.ProcessImage(r.Context(), header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error processing receipt", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, rcpt)
}

// handleReceiptText accepts raw OCR text from clients that already ran
// text detection themselves. Empty text is fine; it parses to the
// degenerate single-item draft.
func (s *Server) handleReceiptText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	writeJSON(w, http.StatusCreated, s.service.ProcessText(req.Text))
}

// handleGetReceipt returns the active receipt.
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	rcpt := s.service.CurrentReceipt()
	if rcpt == nil {
		writeError(w, http.StatusNotFound, "No active receipt")
		return
	}
	writeJSON(w, http.StatusOK, rcpt)
}

// handleUpdateTotals sets subtotal/tax/tip; the total becomes their sum.
func (s *Server) handleUpdateTotals(w http.ResponseWriter, r *http.Request) {
	var req totalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !s.service.UpdateTotals(ParseAmount(req.Subtotal), ParseAmount(req.Tax), ParseAmount(req.Tip)) {
		writeError(w, http.StatusNotFound, "No active receipt")
		return
	}
	writeJSON(w, http.StatusOK, s.service.CurrentReceipt())
}

// handleAddItem appends a manually entered line item.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fallbackItemName
	}
	item, ok := s.service.AddItem(name, ParseAmount(req.Price))
	if !ok {
		writeError(w, http.StatusNotFound, "No active receipt")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateItem renames an item and/or changes its price.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !s.service.UpdateItem(r.PathValue("id"), strings.TrimSpace(req.Name), ParseAmount(req.Price)) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, s.service.CurrentReceipt())
}

// handleRemoveItem deletes an item from the active receipt.
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	if !s.service.RemoveItem(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleAssignee flips a member's share of an item.
func (s *Server) handleToggleAssignee(w http.ResponseWriter, r *http.Request) {
	if !s.service.ToggleAssignee(r.PathValue("id"), r.PathValue("member")) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, s.service.CurrentReceipt())
}

// handleSettlements returns who owes the payer what. An empty list means
// everyone is settled.
func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Settlements())
}

// contentTypeFromExt guesses the MIME type for uploads that arrive without
// one, which phone browsers do for HEIC in particular.
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
