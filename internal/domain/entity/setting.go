package entity

// Well-known setting keys.
const (
	SettingCompanyName     = "company_name"
	SettingCompanyAddress  = "company_address"
	SettingCompanyCity     = "company_city"
	SettingCompanyState    = "company_state"
	SettingCompanyZip      = "company_zip"
	SettingCompanyPhone    = "company_phone"
	SettingCompanyWebsite  = "company_website"
	SettingCompanyLicense  = "company_license"
	SettingCompanyEmail    = "company_email"
	SettingWorkOrderEmail  = "workorder_email"
	SettingDefaultTaxRate  = "default_tax_rate"
	SettingPaymentTerms    = "invoice_payment_terms"
	SettingInvoiceFooter   = "invoice_footer_note"
)

// Setting is a key/value row of company configuration.
type Setting struct {
	Key   string
	Value string
}
