package dto

// CustomerRequest create/update payload.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Notes   string `json:"notes"`
	Type    string `json:"type"`
}

// CustomerResponse API view of a customer.
type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Zip          string `json:"zip,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Type         string `json:"type"`
	JobCount     int    `json:"job_count"`
	InvoiceCount int    `json:"invoice_count"`
	CreatedAt    string `json:"created_at"`
}

// CustomerListResponse paged customer listing.
type CustomerListResponse struct {
	Customers []*CustomerResponse `json:"customers"`
	Page      PageResponse        `json:"page"`
}
