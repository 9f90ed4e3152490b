package receipt

// Settle computes the pairwise debts for a finalized receipt. It is pure:
// the same receipt and participant list always produce the same result.
//
// Cost model:
//   - Each assigned item is split evenly across its assignees.
//   - Tax and tip are allocated to items in proportion to each item's share
//     of the total listed item price, then split across the assignees.
//   - Items with no assignees contribute nothing and their tax/tip share is
//     dropped, not redistributed. The item cost and the tax/tip allocation
//     follow the same drop policy.
//
// Everyone settles toward the payer; see payerOf. The result follows
// participant order, omitting the payer and anyone owing exactly zero.
func Settle(rcpt *Receipt, participants []Participant) []Settlement {
	if rcpt == nil || len(participants) == 0 {
		return []Settlement{}
	}

	owed := make(map[string]Amount, len(participants))
	for _, p := range participants {
		owed[p.ID] = 0
	}

	for _, item := range rcpt.Items {
		n := len(item.AssignedTo)
		if n == 0 {
			continue
		}
		share := item.Price.Split(n)
		for _, id := range item.AssignedTo {
			owed[id] += share
		}
	}

	var totalItemPrice Amount
	for _, item := range rcpt.Items {
		totalItemPrice += item.Price
	}

	// A zero item total means there is no proportionality base, so tax and
	// tip are not distributed at all.
	if totalItemPrice > 0 {
		taxRate := rcpt.Tax / totalItemPrice
		tipRate := rcpt.Tip / totalItemPrice
		for _, item := range rcpt.Items {
			n := len(item.AssignedTo)
			if n == 0 {
				continue
			}
			taxShare := (item.Price * taxRate).Split(n)
			tipShare := (item.Price * tipRate).Split(n)
			for _, id := range item.AssignedTo {
				owed[id] += taxShare + tipShare
			}
		}
	}

	payer := payerOf(participants)
	settlements := make([]Settlement, 0, len(participants)-1)
	for _, p := range participants {
		if p.ID == payer.ID {
			continue
		}
		if owed[p.ID] > 0 {
			settlements = append(settlements, Settlement{
				From:   p.ID,
				To:     payer.ID,
				Amount: owed[p.ID],
			})
		}
	}
	return settlements
}

// payerOf names the single-payer policy: the first-listed group member is
// assumed to have paid the whole bill up front. Multi-payer support would
// replace this function, not the iteration order of Settle.
func payerOf(participants []Participant) Participant {
	return participants[0]
}
