package email

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/application/jobs"
	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/pkg/config"
	"github.com/intecelectric/crm-api/pkg/logger"
	"github.com/intecelectric/crm-api/pkg/money"
)

var _ billing.EmailSender = (*SMTPSender)(nil)
var _ jobs.WorkOrderNotifier = (*SMTPSender)(nil)

// SMTPSender delivers outbound mail over SMTP. With no host configured every
// send is a silent no-op reporting sent=false, so environments without mail
// credentials still run the full ledger.
type SMTPSender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewSMTPSender wires the sender.
func NewSMTPSender(cfg config.SMTPConfig, log *logger.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log}
}

// SendInvoice mails the invoice to the customer with an optional PDF attachment.
func (s *SMTPSender) SendInvoice(inv *entity.Invoice, settings map[string]string, pdf []byte) (bool, error) {
	if !s.cfg.Enabled() {
		s.log.Debug().Str("invoice", inv.InvoiceNumber).Msg("smtp not configured, skipping invoice email")
		return false, nil
	}
	if inv.CustomerEmail == "" {
		s.log.Warn().Str("invoice", inv.InvoiceNumber).Msg("customer has no email, skipping invoice email")
		return false, nil
	}

	company := settings[entity.SettingCompanyName]
	if company == "" {
		company = "Intec Electric"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", inv.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, company))
	m.SetBody("text/html", invoiceBody(inv, settings, company))
	if len(pdf) > 0 {
		name := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
		m.Attach(name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(pdf))
			return err
		}))
	}

	if err := s.dial(m); err != nil {
		return false, fmt.Errorf("send invoice email: %w", err)
	}
	return true, nil
}

// SendWorkOrderNotification alerts the configured company inbox that a work
// order arrived.
func (s *SMTPSender) SendWorkOrderNotification(job *entity.Job, settings map[string]string) (bool, error) {
	if !s.cfg.Enabled() {
		s.log.Debug().Str("job", job.JobNumber).Msg("smtp not configured, skipping work order notification")
		return false, nil
	}
	to := settings[entity.SettingWorkOrderEmail]
	if to == "" {
		to = settings[entity.SettingCompanyEmail]
	}
	if to == "" {
		s.log.Warn().Str("job", job.JobNumber).Msg("no work order email configured, skipping notification")
		return false, nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New Work Order: %s — %s", job.JobNumber, job.Title))
	m.SetBody("text/html", workOrderBody(job))

	if err := s.dial(m); err != nil {
		return false, fmt.Errorf("send work order notification: %w", err)
	}
	return true, nil
}

func (s *SMTPSender) dial(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}

func invoiceBody(inv *entity.Invoice, settings map[string]string, company string) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<h2>Invoice %s</h2>", inv.InvoiceNumber)
	fmt.Fprintf(&b, "<p>Dear %s,</p>", inv.CustomerName)
	fmt.Fprintf(&b, "<p>Please find your invoice from %s below.</p>", company)
	b.WriteString(`<table cellpadding="6" style="border-collapse:collapse">`)
	fmt.Fprintf(&b, "<tr><td><b>Invoice #</b></td><td>%s</td></tr>", inv.InvoiceNumber)
	fmt.Fprintf(&b, "<tr><td><b>Issue Date</b></td><td>%s</td></tr>", inv.IssueDate.Format("January 2, 2006"))
	fmt.Fprintf(&b, "<tr><td><b>Due Date</b></td><td>%s</td></tr>", inv.DueDate.Format("January 2, 2006"))
	fmt.Fprintf(&b, "<tr><td><b>Amount Due</b></td><td>%s</td></tr>", money.Format(inv.BalanceDue))
	b.WriteString("</table>")
	if footer := settings[entity.SettingInvoiceFooter]; footer != "" {
		fmt.Fprintf(&b, "<p>%s</p>", footer)
	}
	fmt.Fprintf(&b, "<p>Thank you for your business!<br>%s</p>", company)
	if phone := settings[entity.SettingCompanyPhone]; phone != "" {
		fmt.Fprintf(&b, "<p>%s</p>", phone)
	}
	return b.String()
}

func workOrderBody(job *entity.Job) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<h2>New Work Order: %s</h2>", job.JobNumber)
	b.WriteString(`<table cellpadding="6" style="border-collapse:collapse">`)
	fmt.Fprintf(&b, "<tr><td><b>Title</b></td><td>%s</td></tr>", job.Title)
	fmt.Fprintf(&b, "<tr><td><b>Customer</b></td><td>%s</td></tr>", job.CustomerName)
	fmt.Fprintf(&b, "<tr><td><b>Priority</b></td><td>%s</td></tr>", job.Priority)
	if job.Address != "" {
		fmt.Fprintf(&b, "<tr><td><b>Address</b></td><td>%s, %s %s %s</td></tr>",
			job.Address, job.City, job.State, job.Zip)
	}
	if job.Description != "" {
		fmt.Fprintf(&b, "<tr><td><b>Description</b></td><td>%s</td></tr>", job.Description)
	}
	b.WriteString("</table>")
	return b.String()
}
