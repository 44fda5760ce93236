package category_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal/core/category"
)

var _ = Describe("Normalize", func() {
	It("should map blanks to Other", func() {
		Expect(category.Normalize("")).To(Equal(category.Other))
		Expect(category.Normalize("   ")).To(Equal(category.Other))
	})

	It("should fold case for known categories", func() {
		Expect(category.Normalize(" food ")).To(Equal(category.Food))
		Expect(category.Normalize("TRANSPORT")).To(Equal(category.Transport))
	})

	It("should keep free text trimmed", func() {
		Expect(category.Normalize(" Rent ")).To(Equal("Rent"))
	})
})

var _ = Describe("Tracked", func() {
	It("should not give Other its own total", func() {
		Expect(category.Tracked).NotTo(ContainElement(category.Other))
		Expect(category.Known).To(ContainElements(category.Tracked))
	})
})
