package validation_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	errors "github.com/abtree/payment-backend/internal"
	"github.com/abtree/payment-backend/internal/core/common/validation"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

var _ = Describe("ValidationBuilder", func() {
	It("passes when all fields are present", func() {
		amount := 19.99
		validator := validation.NewValidator()
		validator.Field("amount", &amount).Required("amount missing").GreaterThan(0, "amount invalid")
		validator.Field("userId", "u1").Required("userId missing")

		Expect(validator.Validate()).To(BeNil())
	})

	It("fails a nil float pointer as missing", func() {
		validator := validation.NewValidator()
		validator.Field("amount", (*float64)(nil)).Required("amount missing")

		err := validator.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Message).To(Equal("amount missing"))
		Expect(err.Type).To(Equal(errors.ErrorTypeValidation))
	})

	It("fails an empty string as missing", func() {
		validator := validation.NewValidator()
		validator.Field("userId", "").Required("userId missing")

		err := validator.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Message).To(Equal("userId missing"))
	})

	It("fails a value at or below the bound", func() {
		zero := 0.0
		validator := validation.NewValidator()
		validator.Field("amount", &zero).Required("amount missing").GreaterThan(0, "amount invalid")

		err := validator.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Message).To(Equal("amount invalid"))
	})

	It("returns the first failure in declaration order", func() {
		validator := validation.NewValidator()
		validator.Field("amount", (*float64)(nil)).Required("amount missing")
		validator.Field("userId", "").Required("userId missing")

		err := validator.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.Message).To(Equal("amount missing"))
	})

	It("skips range checks for absent values", func() {
		validator := validation.NewValidator()
		validator.Field("amount", (*float64)(nil)).GreaterThan(0, "amount invalid")

		Expect(validator.Validate()).To(BeNil())
	})
})
