// file: internals/features/fees/service/feecalc.go
//
// Pure fee arithmetic, kept apart from the controllers so the exact
// figures are unit-testable.
package service

import (
	"errors"
	"time"

	"sekolahku_backend/internals/features/fees/model"
)

var (
	ErrFixedDiscountTooLarge = errors.New("fixed discount exceeds the fee amount")
	ErrPercentOutOfRange     = errors.New("percent discount must be between 0 and 100")
	ErrNegativeAmount        = errors.New("amounts must not be negative")
)

// ValidateDiscount checks a structure's discount against its amount.
func ValidateDiscount(amount float64, discountType *model.DiscountType, discountValue float64) error {
	if amount < 0 || discountValue < 0 {
		return ErrNegativeAmount
	}
	if discountType == nil {
		return nil
	}
	switch *discountType {
	case model.DiscountFixed:
		if discountValue > amount {
			return ErrFixedDiscountTooLarge
		}
	case model.DiscountPercent:
		if discountValue > 100 {
			return ErrPercentOutOfRange
		}
	}
	return nil
}

// NetAmount applies the structure's discount, flooring at zero.
func NetAmount(amount float64, discountType *model.DiscountType, discountValue float64) float64 {
	net := amount
	if discountType != nil {
		switch *discountType {
		case model.DiscountFixed:
			net = amount - discountValue
		case model.DiscountPercent:
			net = amount * (1 - discountValue/100)
		}
	}
	if net < 0 {
		return 0
	}
	return net
}

// PaymentTotal is what actually changed hands for one payment row.
func PaymentTotal(amountPaid, lateFee, discount float64) float64 {
	return amountPaid + lateFee - discount
}

// PaymentStatusFor derives the row status: covering the net due means
// Paid, anything less is Partial. Status never goes backwards from a
// payment, so Pending/Overdue only apply to structures without one.
func PaymentStatusFor(totalAmount, netDue float64) model.PaymentStatus {
	if totalAmount >= netDue {
		return model.PaymentStatusPaid
	}
	return model.PaymentStatusPartial
}

// DueStatus is the status of an unpaid structure as of now.
func DueStatus(dueDate time.Time, now time.Time) model.PaymentStatus {
	if now.After(dueDate) {
		return model.PaymentStatusOverdue
	}
	return model.PaymentStatusPending
}
