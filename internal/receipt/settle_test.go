package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Settle", func() {
	var (
		rcpt         *Receipt
		participants []Participant
		settlements  []Settlement
	)

	alice := Participant{ID: "a", Name: "Alice"}
	bob := Participant{ID: "b", Name: "Bob"}
	carol := Participant{ID: "c", Name: "Carol"}

	JustBeforeEach(func() {
		settlements = Settle(rcpt, participants)
	})

	When("there are no participants", func() {
		BeforeEach(func() {
			rcpt = &Receipt{Items: []LineItem{{ID: "0", Price: 10, AssignedTo: []string{"a"}}}}
			participants = nil
		})

		It("returns an empty list", func() {
			Expect(settlements).To(BeEmpty())
		})
	})

	When("there is no receipt", func() {
		BeforeEach(func() {
			rcpt = nil
			participants = []Participant{alice, bob}
		})

		It("returns an empty list", func() {
			Expect(settlements).To(BeEmpty())
		})
	})

	When("every item is unassigned", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{
					{ID: "0", Price: 10, AssignedTo: []string{}},
					{ID: "1", Price: 20, AssignedTo: []string{}},
				},
				Tax: 3,
			}
			participants = []Participant{alice, bob}
		})

		It("returns an empty list, everyone settled", func() {
			Expect(settlements).To(BeEmpty())
		})
	})

	When("one item belongs to one person", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{{ID: "0", Name: "Burger", Price: 10, AssignedTo: []string{"b"}}},
				Tax:   1,
				Tip:   2,
			}
			participants = []Participant{alice, bob}
		})

		It("charges them the price plus all of the tax and tip", func() {
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0].From).To(Equal("b"))
			Expect(settlements[0].To).To(Equal("a"))
			Expect(settlements[0].Amount).To(BeNumerically("~", 13.00, 0.001))
		})
	})

	When("an item is shared", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{{ID: "0", Name: "Pizza", Price: 12, AssignedTo: []string{"a", "b"}}},
			}
			participants = []Participant{alice, bob}
		})

		It("splits it evenly and settles toward the payer", func() {
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0]).To(Equal(Settlement{From: "b", To: "a", Amount: 6}))
		})
	})

	When("tax is distributed proportionally", func() {
		BeforeEach(func() {
			// Assigned and unassigned items both count toward the
			// proportionality base; the unassigned item's share goes
			// nowhere.
			rcpt = &Receipt{
				Items: []LineItem{
					{ID: "0", Price: 10, AssignedTo: []string{"b"}},
					{ID: "1", Price: 10, AssignedTo: []string{}},
				},
				Tax: 2,
			}
			participants = []Participant{alice, bob}
		})

		It("weights by the item's share of total listed item price", func() {
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0].Amount).To(BeNumerically("~", 11.00, 0.001))
		})
	})

	When("the total item price is zero", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{{ID: "0", Price: 0, AssignedTo: []string{"b"}}},
				Tax:   5,
				Tip:   5,
			}
			participants = []Participant{alice, bob}
		})

		It("never divides by zero and skips tax and tip entirely", func() {
			Expect(settlements).To(BeEmpty())
		})
	})

	When("every item is assigned", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{
					{ID: "0", Price: 10, AssignedTo: []string{"a"}},
					{ID: "1", Price: 20, AssignedTo: []string{"a", "b"}},
				},
				Tax: 3,
				Tip: 1.5,
			}
			participants = []Participant{alice, bob}
		})

		It("partitions the whole bill across the group", func() {
			// Bob: 10 item + 1 tax + 0.5 tip.
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0].Amount).To(BeNumerically("~", 11.50, 0.001))

			// Settled amounts plus the payer's own share add up to
			// items + tax + tip.
			var settled Amount
			for _, st := range settlements {
				settled += st.Amount
			}
			payerShare := Amount(23.0) // 20 items + 2 tax + 1 tip
			Expect(settled + payerShare).To(BeNumerically("~", 34.5, 0.001))
		})
	})

	When("a participant owes exactly zero", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{{ID: "0", Price: 10, AssignedTo: []string{"b"}}},
			}
			participants = []Participant{alice, bob, carol}
		})

		It("omits them from the result", func() {
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0].From).To(Equal("b"))
		})
	})

	When("several participants owe", func() {
		BeforeEach(func() {
			rcpt = &Receipt{
				Items: []LineItem{
					{ID: "0", Price: 5, AssignedTo: []string{"c"}},
					{ID: "1", Price: 7, AssignedTo: []string{"b"}},
				},
			}
			participants = []Participant{alice, bob, carol}
		})

		It("orders the result by participant order, payer excluded", func() {
			Expect(settlements).To(HaveLen(2))
			Expect(settlements[0].From).To(Equal("b"))
			Expect(settlements[1].From).To(Equal("c"))
		})

		It("is deterministic across calls", func() {
			Expect(Settle(rcpt, participants)).To(Equal(settlements))
		})
	})
})
