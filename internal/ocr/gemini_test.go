package ocr

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("stripCodeFence", func() {
	It("removes markdown fences", func() {
		Expect(stripCodeFence("```\nBurger $12.99\n```")).To(Equal("Burger $12.99"))
	})

	It("removes language-tagged fences", func() {
		Expect(stripCodeFence("```text\nBurger $12.99\n```")).To(Equal("Burger $12.99"))
	})

	It("leaves plain text alone", func() {
		Expect(stripCodeFence("Burger $12.99")).To(Equal("Burger $12.99"))
	})

	It("trims surrounding whitespace", func() {
		Expect(stripCodeFence("  Burger $12.99\n")).To(Equal("Burger $12.99"))
	})
})
