package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/features/fees/model"
)

func discount(t model.DiscountType) *model.DiscountType { return &t }

func TestValidateDiscount(t *testing.T) {
	assert.NoError(t, ValidateDiscount(1000, nil, 0))
	assert.NoError(t, ValidateDiscount(1000, discount(model.DiscountFixed), 1000))
	assert.NoError(t, ValidateDiscount(1000, discount(model.DiscountPercent), 100))

	assert.ErrorIs(t, ValidateDiscount(1000, discount(model.DiscountFixed), 1001), ErrFixedDiscountTooLarge)
	assert.ErrorIs(t, ValidateDiscount(1000, discount(model.DiscountPercent), 101), ErrPercentOutOfRange)
	assert.ErrorIs(t, ValidateDiscount(-1, nil, 0), ErrNegativeAmount)
	assert.ErrorIs(t, ValidateDiscount(1000, discount(model.DiscountFixed), -5), ErrNegativeAmount)
}

func TestNetAmount(t *testing.T) {
	cases := []struct {
		name  string
		amt   float64
		dtype *model.DiscountType
		dval  float64
		want  float64
	}{
		{"no discount", 1500, nil, 0, 1500},
		{"fixed", 1500, discount(model.DiscountFixed), 200, 1300},
		{"percent", 1500, discount(model.DiscountPercent), 10, 1350},
		{"full fixed", 1500, discount(model.DiscountFixed), 1500, 0},
		{"full percent", 1500, discount(model.DiscountPercent), 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, NetAmount(tc.amt, tc.dtype, tc.dval), 0.001)
		})
	}
}

func TestPaymentTotal(t *testing.T) {
	assert.InDelta(t, 1550, PaymentTotal(1500, 100, 50), 0.001)
	assert.InDelta(t, 1500, PaymentTotal(1500, 0, 0), 0.001)
}

func TestPaymentStatusFor(t *testing.T) {
	assert.Equal(t, model.PaymentStatusPaid, PaymentStatusFor(1500, 1500))
	assert.Equal(t, model.PaymentStatusPaid, PaymentStatusFor(1600, 1500))
	assert.Equal(t, model.PaymentStatusPartial, PaymentStatusFor(1499.99, 1500))
}

func TestDueStatus(t *testing.T) {
	due := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, model.PaymentStatusPending, DueStatus(due, due.AddDate(0, 0, -1)))
	assert.Equal(t, model.PaymentStatusOverdue, DueStatus(due, due.AddDate(0, 0, 1)))
}
