package receipt

import "sync"

// Session owns the state of one receipt-splitting flow: the group being
// assembled and the single active receipt. Handlers share one Session and
// all access goes through its lock.
type Session struct {
	mu      sync.Mutex
	members []Participant
	receipt *Receipt
}

// NewSession returns an empty session with no members and no receipt.
func NewSession() *Session {
	return &Session{}
}

// AddMember registers a group member. The caller supplies the identifier;
// identifiers are expected to be unique within the session.
func (s *Session) AddMember(p Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = append(s.members, p)
}

// RenameMember updates a member's display name. It reports whether the
// member exists.
func (s *Session) RenameMember(id, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members[i].Name = name
			return true
		}
	}
	return false
}

// RemoveMember drops a member from the group. Prior item assignments are
// left alone: grouping happens before capture, and settlement only pays
// out to current members.
func (s *Session) RemoveMember(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return true
		}
	}
	return false
}

// Members returns the group in registration order. The first member is the
// assumed payer.
func (s *Session) Members() []Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Participant(nil), s.members...)
}

// SetReceipt installs a new active receipt, replacing any previous one.
// Exactly one receipt is active at a time.
func (s *Session) SetReceipt(r *Receipt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipt = r.Clone()
}

// Receipt returns a copy of the active receipt, or nil if none was set.
func (s *Session) Receipt() *Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receipt.Clone()
}

// AddItem appends a manually entered line item to the active receipt.
func (s *Session) AddItem(item LineItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return false
	}
	if item.AssignedTo == nil {
		item.AssignedTo = []string{}
	}
	s.receipt.Items = append(s.receipt.Items, item)
	return true
}

// UpdateItem renames an item and/or changes its price.
func (s *Session) UpdateItem(id, name string, price Amount) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return false
	}
	for i := range s.receipt.Items {
		if s.receipt.Items[i].ID == id {
			s.receipt.Items[i].Name = name
			s.receipt.Items[i].Price = price
			return true
		}
	}
	return false
}

// RemoveItem deletes an item from the active receipt.
func (s *Session) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return false
	}
	for i := range s.receipt.Items {
		if s.receipt.Items[i].ID == id {
			s.receipt.Items = append(s.receipt.Items[:i], s.receipt.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateTotals sets the subtotal, tax and tip figures and recomputes the
// total as their sum, keeping the draft consistent after manual edits.
func (s *Session) UpdateTotals(subtotal, tax, tip Amount) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return false
	}
	s.receipt.Subtotal = subtotal
	s.receipt.Tax = tax
	s.receipt.Tip = tip
	s.receipt.Total = subtotal + tax + tip
	return true
}

// ToggleAssignee flips a member's membership in an item's assignee set:
// absent adds, present removes. Toggling twice restores the original set.
func (s *Session) ToggleAssignee(itemID, memberID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.receipt == nil {
		return false
	}
	for i := range s.receipt.Items {
		if s.receipt.Items[i].ID != itemID {
			continue
		}
		assigned := s.receipt.Items[i].AssignedTo
		for j, id := range assigned {
			if id == memberID {
				s.receipt.Items[i].AssignedTo = append(assigned[:j], assigned[j+1:]...)
				return true
			}
		}
		s.receipt.Items[i].AssignedTo = append(assigned, memberID)
		return true
	}
	return false
}

// Settlements computes the current debts from the active receipt and
// group. With no receipt or no members it returns an empty list, which the
// display layer renders as everyone settled.
func (s *Session) Settlements() []Settlement {
	s.mu.Lock()
	rcpt := s.receipt.Clone()
	members := append([]Participant(nil), s.members...)
	s.mu.Unlock()
	return Settle(rcpt, members)
}
