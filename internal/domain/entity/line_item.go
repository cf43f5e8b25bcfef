package entity

import "github.com/shopspring/decimal"

// LineItem is a single billable or estimated entry, owned exclusively by a
// job or an invoice (ParentID). Amount is quantity * unit price rounded to
// currency precision, unless an explicit override was supplied.
type LineItem struct {
	ID          string
	ParentID    string // job ID or invoice ID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	SortOrder   int
}
