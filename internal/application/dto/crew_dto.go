package dto

import "github.com/shopspring/decimal"

// CrewMemberRequest create/update payload.
type CrewMemberRequest struct {
	Name   string           `json:"name"`
	Phone  string           `json:"phone"`
	Email  string           `json:"email"`
	Role   string           `json:"role"`
	Rate   *decimal.Decimal `json:"rate,omitempty"`
	Active *bool            `json:"active,omitempty"`
}
