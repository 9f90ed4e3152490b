package receipt

import "time"

// Participant is one member of the group splitting the bill.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is a single purchased entry on a receipt. AssignedTo holds the
// IDs of the participants sharing its cost and has set semantics: toggling
// a member off and back on restores the original set.
type LineItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      Amount   `json:"price"`
	AssignedTo []string `json:"assigned_to"`
}

// Receipt is the editable draft produced by the parser. The soft invariant
// total = subtotal + tax + tip is re-established by the parser and by
// UpdateTotals, but manual edits may leave the figures inconsistent.
type Receipt struct {
	ID        string     `json:"id"`
	Text      string     `json:"text,omitempty"`
	Items     []LineItem `json:"items"`
	Subtotal  Amount     `json:"subtotal"`
	Tax       Amount     `json:"tax"`
	Tip       Amount     `json:"tip"`
	Total     Amount     `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}

// Settlement is a single directed debt: From owes To the given amount.
// Settlements are derived from the current receipt and group on demand,
// never stored.
type Settlement struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Amount `json:"amount"`
}

// Clone returns a deep copy of the receipt so callers can hand it out
// without sharing the item slices.
func (r *Receipt) Clone() *Receipt {
	if r == nil {
		return nil
	}
	c := *r
	c.Items = make([]LineItem, len(r.Items))
	for i, item := range r.Items {
		c.Items[i] = item
		c.Items[i].AssignedTo = append([]string(nil), item.AssignedTo...)
	}
	return &c
}
