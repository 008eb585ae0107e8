package core

import "time"

// RequestCategory classifies a customer-service request.
type RequestCategory string

const (
	Technical    RequestCategory = "Technical Issue"
	AccountQuery RequestCategory = "Account Query"
	Loan         RequestCategory = "Loan Information"
	Other        RequestCategory = "Other"
)

// ServiceRequest is one pending customer-service item. Requests exist only
// between submission and processing; there is no partial state.
type ServiceRequest struct {
	ID            string
	AccountNumber string
	Name          string
	Category      RequestCategory
	Description   string
	SubmittedAt   time.Time
}
