// Package pdf renders the printable invoice with Maroto v2.
//
// Page layout (Letter):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company + license  │  Invoice # + dates            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer name + service address                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Description | Unit Price | Amount             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Subtotal / Tax / Total / Paid / BALANCE DUE        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: payment terms + thank-you note                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/pkg/money"
)

var _ billing.InvoicePDFGenerator = (*MarotoInvoiceGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoInvoiceGenerator implements billing.InvoicePDFGenerator with Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator builds the generator.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF renders the invoice and returns its bytes. The invoice
// must arrive with CustomerName and LineItems populated.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(inv *entity.Invoice, settings map[string]string) ([]byte, error) {
	company := nonEmpty(settings[entity.SettingCompanyName], "Intec Electric")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+inv.InvoiceNumber, true).
		WithAuthor(company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, company, settings))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range lineItemRows(inv.LineItems) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(settings, company)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: company name + license (left), invoice number + dates (right).
func headerRow(inv *entity.Invoice, company string, settings map[string]string) core.Row {
	sub := settings[entity.SettingCompanyLicense]
	if sub != "" {
		sub = "License " + sub
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(sub, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Issued: "+inv.IssueDate.Format("01/02/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Due: "+inv.DueDate.Format("01/02/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// billToRow: customer block, with the originating job when there is one.
func billToRow(inv *entity.Invoice) core.Row {
	jobLine := ""
	if inv.JobNumber != "" {
		jobLine = fmt.Sprintf("Job: %s — %s", inv.JobNumber, inv.JobTitle)
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.CustomerName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(jobLine, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 7, align.Left),
		h("Unit Price", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

func lineItemRows(items []*entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, li := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				li.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(7).Add(text.New(
				li.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(li.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money.Format(li.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: right-aligned totals block, balance due highlighted.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	taxLabel := fmt.Sprintf("Tax (%s%%):", inv.TaxRate.String())
	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label(taxLabel),
			label("Total:"),
			label("Paid:"),
			grandLabel("BALANCE DUE:"),
		),
		col.New(4).Add(
			value(money.Format(inv.Subtotal)),
			value(money.Format(inv.TaxAmount)),
			value(money.Format(inv.Total)),
			value(money.Format(inv.AmountPaid)),
			grandValue(money.Format(inv.BalanceDue)),
		),
	)
}

func footerRows(settings map[string]string, company string) []core.Row {
	var rows []core.Row
	if terms := settings[entity.SettingPaymentTerms]; terms != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Payment terms: "+terms, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	note := nonEmpty(settings[entity.SettingInvoiceFooter], "Thank you for your business!")
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(note, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 2,
		}),
	)))
	contact := settings[entity.SettingCompanyPhone]
	if email := settings[entity.SettingCompanyEmail]; email != "" {
		if contact != "" {
			contact += "   |   "
		}
		contact += email
	}
	if contact != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(company+"   |   "+contact, props.Text{
				Size: 7.5, Align: align.Center, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
