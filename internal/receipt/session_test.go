package receipt

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Session", func() {
	var session *Session

	BeforeEach(func() {
		session = NewSession()
	})

	Describe("group management", func() {
		It("keeps members in registration order", func() {
			session.AddMember(Participant{ID: "a", Name: "Alice"})
			session.AddMember(Participant{ID: "b", Name: "Bob"})
			members := session.Members()
			Expect(members).To(HaveLen(2))
			Expect(members[0].ID).To(Equal("a"))
			Expect(members[1].ID).To(Equal("b"))
		})

		It("renames members", func() {
			session.AddMember(Participant{ID: "a", Name: "Alice"})
			Expect(session.RenameMember("a", "Alicia")).To(BeTrue())
			Expect(session.Members()[0].Name).To(Equal("Alicia"))
		})

		It("removes members", func() {
			session.AddMember(Participant{ID: "a", Name: "Alice"})
			session.AddMember(Participant{ID: "b", Name: "Bob"})
			Expect(session.RemoveMember("a")).To(BeTrue())
			Expect(session.Members()).To(HaveLen(1))
			Expect(session.Members()[0].ID).To(Equal("b"))
		})

		It("reports missing members", func() {
			Expect(session.RemoveMember("ghost")).To(BeFalse())
			Expect(session.RenameMember("ghost", "x")).To(BeFalse())
		})
	})

	Describe("receipt editing", func() {
		When("no receipt is active", func() {
			It("returns nil for the receipt", func() {
				Expect(session.Receipt()).To(BeNil())
			})

			It("rejects edits", func() {
				Expect(session.AddItem(LineItem{ID: "x"})).To(BeFalse())
				Expect(session.UpdateItem("x", "y", 1)).To(BeFalse())
				Expect(session.RemoveItem("x")).To(BeFalse())
				Expect(session.UpdateTotals(1, 2, 3)).To(BeFalse())
				Expect(session.ToggleAssignee("x", "a")).To(BeFalse())
			})
		})

		When("a receipt is active", func() {
			BeforeEach(func() {
				session.SetReceipt(Parse("Burger $12.99\nFries $5.99"))
			})

			It("exposes a copy, not the live state", func() {
				rcpt := session.Receipt()
				rcpt.Items[0].Name = "Mangled"
				rcpt.Items[0].AssignedTo = append(rcpt.Items[0].AssignedTo, "a")
				Expect(session.Receipt().Items[0].Name).To(Equal("Burger"))
				Expect(session.Receipt().Items[0].AssignedTo).To(BeEmpty())
			})

			It("adds items", func() {
				Expect(session.AddItem(LineItem{ID: "new", Name: "Drink", Price: 3.99})).To(BeTrue())
				Expect(session.Receipt().Items).To(HaveLen(3))
			})

			It("updates items", func() {
				Expect(session.UpdateItem("0", "Cheeseburger", 13.99)).To(BeTrue())
				item := session.Receipt().Items[0]
				Expect(item.Name).To(Equal("Cheeseburger"))
				Expect(item.Price).To(BeNumerically("~", 13.99, 0.001))
			})

			It("removes items", func() {
				Expect(session.RemoveItem("0")).To(BeTrue())
				items := session.Receipt().Items
				Expect(items).To(HaveLen(1))
				Expect(items[0].Name).To(Equal("Fries"))
			})

			It("recomputes the total when totals are edited", func() {
				Expect(session.UpdateTotals(18.98, 1.71, 2.00)).To(BeTrue())
				rcpt := session.Receipt()
				Expect(rcpt.Total).To(BeNumerically("~", 22.69, 0.001))
			})

			It("replaces the receipt wholesale on SetReceipt", func() {
				session.SetReceipt(Parse("Coffee $3.00"))
				Expect(session.Receipt().Items).To(HaveLen(1))
			})
		})
	})

	Describe("ToggleAssignee", func() {
		BeforeEach(func() {
			session.AddMember(Participant{ID: "a", Name: "Alice"})
			session.AddMember(Participant{ID: "b", Name: "Bob"})
			session.SetReceipt(Parse("Burger $12.99"))
		})

		It("adds an absent member to the set", func() {
			Expect(session.ToggleAssignee("0", "a")).To(BeTrue())
			Expect(session.Receipt().Items[0].AssignedTo).To(ConsistOf("a"))
		})

		It("removes a present member from the set", func() {
			session.ToggleAssignee("0", "a")
			session.ToggleAssignee("0", "a")
			Expect(session.Receipt().Items[0].AssignedTo).To(BeEmpty())
		})

		It("restores the original set after off and on again", func() {
			session.ToggleAssignee("0", "a")
			session.ToggleAssignee("0", "b")
			session.ToggleAssignee("0", "a")
			session.ToggleAssignee("0", "a")
			Expect(session.Receipt().Items[0].AssignedTo).To(ConsistOf("a", "b"))
		})

		It("reports unknown items", func() {
			Expect(session.ToggleAssignee("nope", "a")).To(BeFalse())
		})
	})

	Describe("Settlements", func() {
		BeforeEach(func() {
			session.AddMember(Participant{ID: "a", Name: "Alice"})
			session.AddMember(Participant{ID: "b", Name: "Bob"})
		})

		It("is empty with no receipt", func() {
			Expect(session.Settlements()).To(BeEmpty())
		})

		It("settles toward the first-listed member", func() {
			session.SetReceipt(Parse("Burger $10.00"))
			session.ToggleAssignee("0", "b")
			settlements := session.Settlements()
			Expect(settlements).To(HaveLen(1))
			Expect(settlements[0].From).To(Equal("b"))
			Expect(settlements[0].To).To(Equal("a"))
			Expect(settlements[0].Amount).To(BeNumerically("~", 10.00, 0.001))
		})

		It("is idempotent for unchanged state", func() {
			session.SetReceipt(Parse("Burger $10.00"))
			session.ToggleAssignee("0", "b")
			Expect(session.Settlements()).To(Equal(session.Settlements()))
		})
	})
})
