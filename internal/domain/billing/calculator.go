// Package billing holds the pure monetary arithmetic of the ledger: line
// item normalization and invoice total computation. All math is done in
// shopspring decimals; amounts are rounded half-up to two decimal places at
// the point each amount is final, never on intermediate products.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineItemInput is one draft row. AmountOverride, when non-nil, replaces the
// computed quantity * unitPrice amount.
type LineItemInput struct {
	Description    string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	AmountOverride *decimal.Decimal
}

// Totals are the derived monetary fields of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// Normalize validates and prices draft rows. Rows with an empty description
// are dropped (drafts may carry blank trailing rows); negative quantity or
// unit price is rejected. A zero quantity defaults to 1.
func Normalize(items []LineItemInput) ([]*entity.LineItem, error) {
	out := make([]*entity.LineItem, 0, len(items))
	for i, in := range items {
		if in.Description == "" {
			continue
		}
		if in.Quantity.IsNegative() {
			return nil, fmt.Errorf("line %d: negative quantity: %w", i+1, domain.ErrInvalidInput)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("line %d: negative unit price: %w", i+1, domain.ErrInvalidInput)
		}
		qty := in.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		amount := qty.Mul(in.UnitPrice).Round(2)
		if in.AmountOverride != nil {
			if in.AmountOverride.IsNegative() {
				return nil, fmt.Errorf("line %d: negative amount: %w", i+1, domain.ErrInvalidInput)
			}
			amount = in.AmountOverride.Round(2)
		}
		out = append(out, &entity.LineItem{
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   in.UnitPrice,
			Amount:      amount,
			SortOrder:   len(out),
		})
	}
	return out, nil
}

// ComputeTotals sums priced line items and applies a flat percentage tax
// rate. taxRate is a percentage (7 means 7%); a negative rate is rejected.
func ComputeTotals(items []*entity.LineItem, taxRate decimal.Decimal) (Totals, error) {
	if taxRate.IsNegative() {
		return Totals{}, fmt.Errorf("negative tax rate: %w", domain.ErrInvalidInput)
	}
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Amount)
	}
	subtotal = subtotal.Round(2)
	taxAmount := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}, nil
}

// BalanceDue derives the outstanding balance, floored at zero. Overpayment
// clamps to zero rather than going negative or crediting the customer.
func BalanceDue(total, amountPaid decimal.Decimal) decimal.Decimal {
	balance := total.Sub(amountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
