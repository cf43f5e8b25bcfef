package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/intecelectric/crm-api/internal/domain"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	i.id, i.invoice_number, i.status, i.issue_date, i.due_date,
	i.subtotal, i.tax_rate, i.tax_amount, i.total, i.amount_paid, i.balance_due,
	i.notes, i.customer_id, COALESCE(i.job_id, ''), i.created_at, i.updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Status, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
		&inv.Notes, &inv.CustomerID, &inv.JobID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create persists the invoice header. A number collision maps to ErrConflict
// so the caller can re-allocate and retry.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_number, status, issue_date, due_date,
			subtotal, tax_rate, tax_amount, total, amount_paid, balance_due,
			notes, customer_id, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.InvoiceNumber, inv.Status, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, inv.AmountPaid, inv.BalanceDue,
		inv.Notes, inv.CustomerID, nullableID(inv.JobID), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s taken: %w", inv.InvoiceNumber, domain.ErrConflict)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice with customer and job context.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `, c.name, c.email,
		       COALESCE(j.job_number, ''), COALESCE(j.title, ''),
		       (SELECT COUNT(*) FROM payments p WHERE p.invoice_id = i.id)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		LEFT JOIN jobs j ON j.id = i.job_id
		WHERE i.id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Status, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
		&inv.Notes, &inv.CustomerID, &inv.JobID, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.CustomerName, &inv.CustomerEmail, &inv.JobNumber, &inv.JobTitle, &inv.PaymentCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetByIDForUpdate locks the invoice row for the rest of the transaction.
// The payment ledger's read-modify-write of amount_paid/balance_due/status
// depends on this lock to avoid lost updates between concurrent payments.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock invoice: %w", err)
	}
	return inv, nil
}

// List returns a filtered page plus the unpaged total, newest first.
func (r *InvoiceRepo) List(f repository.InvoiceFilter) ([]*entity.Invoice, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	n := 0
	if f.Search != "" {
		n++
		where += fmt.Sprintf(" AND (i.invoice_number ILIKE $%d OR c.name ILIKE $%d)", n, n)
		args = append(args, "%"+f.Search+"%")
	}
	if f.Status != "" {
		n++
		where += fmt.Sprintf(" AND i.status = $%d", n)
		args = append(args, f.Status)
	}
	if f.CustomerID != "" {
		n++
		where += fmt.Sprintf(" AND i.customer_id = $%d", n)
		args = append(args, f.CustomerID)
	}
	if f.JobID != "" {
		n++
		where += fmt.Sprintf(" AND i.job_id = $%d", n)
		args = append(args, f.JobID)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM invoices i JOIN customers c ON c.id = i.customer_id"+where,
		args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := `
		SELECT ` + invoiceColumns + `, c.name, c.email,
		       COALESCE(j.job_number, ''), COALESCE(j.title, ''),
		       (SELECT COUNT(*) FROM payments p WHERE p.invoice_id = i.id)
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		LEFT JOIN jobs j ON j.id = i.job_id` + where +
		fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.Status, &inv.IssueDate, &inv.DueDate,
			&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
			&inv.Notes, &inv.CustomerID, &inv.JobID, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.CustomerName, &inv.CustomerEmail, &inv.JobNumber, &inv.JobTitle, &inv.PaymentCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, total, rows.Err()
}

// Update overwrites the invoice's mutable columns.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET status = $2, issue_date = $3, due_date = $4,
		    subtotal = $5, tax_rate = $6, tax_amount = $7, total = $8,
		    amount_paid = $9, balance_due = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Status, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total,
		inv.AmountPaid, inv.BalanceDue, inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// Delete removes an invoice; line items and payments cascade.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// ReplaceLineItems deletes and reinserts the invoice's line items.
func (r *InvoiceRepo) ReplaceLineItems(invoiceID string, items []*entity.LineItem) error {
	return replaceLineItems(r.q, "invoice_id", invoiceID, items)
}

// ListLineItems returns the invoice's line items in sort order.
func (r *InvoiceRepo) ListLineItems(invoiceID string) ([]*entity.LineItem, error) {
	return listLineItems(r.q, "invoice_id", invoiceID)
}

// CreatePayment appends one payment record.
func (r *InvoiceRepo) CreatePayment(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, method, reference, notes, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.InvoiceID, p.Amount, p.Method, p.Reference, p.Notes, p.PaidAt, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments returns the invoice's payments, oldest first.
func (r *InvoiceRepo) ListPayments(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, method, reference, notes, paid_at, created_at
		FROM payments WHERE invoice_id = $1 ORDER BY paid_at, created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Method, &p.Reference,
			&p.Notes, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListOverdueCandidates returns invoices in SENT or PARTIAL with a due date
// strictly before now. Rows are locked SKIP LOCKED so the sweep never blocks
// a user mutation in flight; a skipped invoice is picked up next run.
func (r *InvoiceRepo) ListOverdueCandidates(now time.Time, limit int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		WHERE i.status IN ($1, $2) AND i.due_date < $3
		ORDER BY i.due_date
		LIMIT $4
		FOR UPDATE SKIP LOCKED`
	rows, err := r.q.Query(context.Background(), query,
		entity.InvoiceStatusSent, entity.InvoiceStatusPartial, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list overdue candidates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.InvoiceNumber, &inv.Status, &inv.IssueDate, &inv.DueDate,
			&inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
			&inv.Notes, &inv.CustomerID, &inv.JobID, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan overdue candidate: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
