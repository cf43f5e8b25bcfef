package http

import (
	"github.com/intecelectric/crm-api/internal/application/dto"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// Entity → DTO mapping shared by the handlers.

func customerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		Zip:          c.Zip,
		Notes:        c.Notes,
		Type:         c.Type,
		JobCount:     c.JobCount,
		InvoiceCount: c.InvoiceCount,
		CreatedAt:    dto.FormatTime(c.CreatedAt),
	}
}

func lineItemResponses(items []*entity.LineItem) []dto.LineItemResponse {
	out := make([]dto.LineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, dto.LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		})
	}
	return out
}

func crewMemberResponse(m *entity.CrewMember) *dto.CrewMemberResponse {
	return &dto.CrewMemberResponse{
		ID:              m.ID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		Role:            m.Role,
		Rate:            m.Rate,
		Active:          m.Active,
		AssignmentCount: m.AssignmentCount,
	}
}

func jobResponse(j *entity.Job) *dto.JobResponse {
	out := &dto.JobResponse{
		ID:              j.ID,
		JobNumber:       j.JobNumber,
		Title:           j.Title,
		Description:     j.Description,
		Status:          j.Status,
		Priority:        j.Priority,
		Address:         j.Address,
		City:            j.City,
		State:           j.State,
		Zip:             j.Zip,
		ScheduledDate:   dto.FormatDatePtr(j.ScheduledDate),
		CompletedDate:   dto.FormatDatePtr(j.CompletedDate),
		EstimatedAmount: j.EstimatedAmount,
		ActualAmount:    j.ActualAmount,
		Notes:           j.Notes,
		IsWorkOrder:     j.IsWorkOrder,
		WorkOrderEmail:  j.WorkOrderEmail,
		CustomerID:      j.CustomerID,
		CustomerName:    j.CustomerName,
		InvoiceCount:    j.InvoiceCount,
		LineItems:       lineItemResponses(j.LineItems),
		CreatedAt:       dto.FormatTime(j.CreatedAt),
	}
	for _, m := range j.Crew {
		out.Crew = append(out.Crew, crewMemberResponse(m))
	}
	return out
}

func paymentResponses(payments []*entity.Payment) []*dto.PaymentResponse {
	out := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResponse(p))
	}
	return out
}

func paymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    p.Method,
		Reference: p.Reference,
		Notes:     p.Notes,
		PaidAt:    dto.FormatTime(p.PaidAt),
	}
}

func invoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		IssueDate:     dto.FormatDate(inv.IssueDate),
		DueDate:       dto.FormatDate(inv.DueDate),
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
		Notes:         inv.Notes,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		JobID:         inv.JobID,
		JobNumber:     inv.JobNumber,
		PaymentCount:  inv.PaymentCount,
		LineItems:     lineItemResponses(inv.LineItems),
		Payments:      paymentResponses(inv.Payments),
		CreatedAt:     dto.FormatTime(inv.CreatedAt),
	}
}

func activityResponses(activities []*entity.Activity) []*dto.ActivityResponse {
	out := make([]*dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, &dto.ActivityResponse{
			ID:            a.ID,
			Type:          a.Type,
			Description:   a.Description,
			Metadata:      a.Metadata,
			JobID:         a.JobID,
			JobNumber:     a.JobNumber,
			InvoiceID:     a.InvoiceID,
			InvoiceNumber: a.InvoiceNumber,
			UserID:        a.UserID,
			UserName:      a.UserName,
			CreatedAt:     dto.FormatTime(a.CreatedAt),
		})
	}
	return out
}
