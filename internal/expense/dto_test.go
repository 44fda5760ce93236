package expense_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/expense-tracker/internal/expense"
)

var _ = Describe("CreateExpenseDTO", func() {
	decode := func(body string) expense.CreateExpenseDTO {
		var dto expense.CreateExpenseDTO
		Expect(json.Unmarshal([]byte(body), &dto)).To(Succeed())
		return dto
	}

	Describe("ParsedAmount", func() {
		DescribeTable("valid amounts",
			func(body string, want float64) {
				amount, err := decode(body).ParsedAmount()
				Expect(err).To(BeNil())
				Expect(amount).NotTo(BeNil())
				Expect(*amount).To(Equal(want))
			},
			Entry("number", `{"amount":3.5}`, 3.5),
			Entry("zero", `{"amount":0}`, 0.0),
			Entry("negative", `{"amount":-2}`, -2.0),
			Entry("numeric string", `{"amount":"50"}`, 50.0),
			Entry("padded numeric string", `{"amount":" 7.25 "}`, 7.25),
		)

		DescribeTable("missing amounts",
			func(body string) {
				amount, err := decode(body).ParsedAmount()
				Expect(err).To(BeNil())
				Expect(amount).To(BeNil())
			},
			Entry("absent", `{}`),
			Entry("null", `{"amount":null}`),
			Entry("empty string", `{"amount":""}`),
		)

		DescribeTable("invalid amounts",
			func(body string) {
				_, err := decode(body).ParsedAmount()
				Expect(err).NotTo(BeNil())
				Expect(err.Message).To(Equal("amount must be a valid number"))
			},
			Entry("word", `{"amount":"abc"}`),
			Entry("boolean", `{"amount":false}`),
			Entry("object", `{"amount":{"value":1}}`),
		)
	})

	Describe("Validate", func() {
		It("should report every invalid field", func() {
			err := decode(`{"title":" ","amount":"x"}`).Validate(false)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("title"))
			Expect(err.Error()).To(ContainSubstring("amount"))
		})

		It("should reject a title longer than the limit", func() {
			long := make([]byte, expense.MaxTitleLength+1)
			for i := range long {
				long[i] = 'a'
			}
			dto := expense.CreateExpenseDTO{Title: string(long), Amount: json.RawMessage("1")}

			Expect(dto.Validate(false)).To(MatchError(ContainSubstring("must not exceed")))
		})

		It("should ignore category in lenient mode", func() {
			Expect(decode(`{"title":"Rent","amount":1,"category":"Housing"}`).Validate(false)).To(Succeed())
		})
	})

	Describe("NewExpense", func() {
		It("should trim, normalize and stamp the record in UTC", func() {
			now := time.Date(2025, 1, 2, 3, 4, 5, 678901234, time.FixedZone("IST", 19800))
			dto := decode(`{"title":"  Bus  ","category":" transport "}`)

			exp := expense.NewExpense(dto, 2, now)

			Expect(exp.Title).To(Equal("Bus"))
			Expect(exp.Category).To(Equal("Transport"))
			Expect(exp.Amount).To(Equal(2.0))
			Expect(exp.Date.Location()).To(Equal(time.UTC))
			Expect(exp.Date).To(Equal(time.Date(2025, 1, 1, 21, 34, 5, 678000000, time.UTC)))
		})
	})
})
