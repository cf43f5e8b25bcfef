package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods.
const (
	PaymentMethodCheck    = "CHECK"
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodOther    = "OTHER"
)

// ValidPaymentMethod reports whether m is a known method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCheck, PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is an immutable, append-only record of money received against
// exactly one invoice. The sum of an invoice's payments equals its AmountPaid.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string
	Reference string
	Notes     string
	PaidAt    time.Time
	CreatedAt time.Time
}
