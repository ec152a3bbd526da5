package domain

import "time"

type SpecialistProfile struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	UserID         int       `json:"user_id"`
	UserName       string    `json:"user_name,omitempty"`
	Specialization *string   `json:"specialization"`
	CommissionRate *float64  `json:"commission_rate"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UpdateSpecialistRequest struct {
	ID             string   `json:"-"`
	BusinessID     string   `json:"-"`
	Specialization *string  `json:"specialization"`
	CommissionRate *float64 `json:"commission_rate"`
	IsActive       *bool    `json:"is_active"`
}

type CommissionSource string

const (
	CommissionSourceSale             CommissionSource = "SALE"
	CommissionSourceTreatmentSession CommissionSource = "TREATMENT_SESSION"
)

type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "PENDING"
	CommissionRequested CommissionStatus = "REQUESTED"
	CommissionPaid      CommissionStatus = "PAID"
	CommissionCancelled CommissionStatus = "CANCELLED"
)

type CommissionDetail struct {
	ID               string           `json:"id"`
	BusinessID       string           `json:"business_id"`
	SpecialistID     string           `json:"specialist_id"`
	Source           CommissionSource `json:"source"`
	SourceID         string           `json:"source_id"`
	ServiceID        *string          `json:"service_id"`
	BaseAmount       float64          `json:"base_amount"`
	Rate             float64          `json:"rate"`
	Amount           float64          `json:"amount"`
	Status           CommissionStatus `json:"status"`
	PaymentRequestID *string          `json:"payment_request_id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type PaymentRequestStatus string

const (
	PaymentRequestSubmitted PaymentRequestStatus = "SUBMITTED"
	PaymentRequestApproved  PaymentRequestStatus = "APPROVED"
	PaymentRequestRejected  PaymentRequestStatus = "REJECTED"
	PaymentRequestPaid      PaymentRequestStatus = "PAID"
)

type CommissionPaymentRequest struct {
	ID            string               `json:"id"`
	BusinessID    string               `json:"business_id"`
	SpecialistID  string               `json:"specialist_id"`
	PeriodFrom    time.Time            `json:"period_from"`
	PeriodTo      time.Time            `json:"period_to"`
	TotalAmount   float64              `json:"total_amount"`
	Status        PaymentRequestStatus `json:"status"`
	ReviewedBy    *int                 `json:"reviewed_by"`
	ReviewedAt    *time.Time           `json:"reviewed_at"`
	PaymentMethod *string              `json:"payment_method"`
	Notes         *string              `json:"notes"`
	DetailsCount  int                  `json:"details_count"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// CommissionInput reúne o que é necessário para calcular a comissão de um especialista
type CommissionInput struct {
	BusinessID   string
	SpecialistID string
	Source       CommissionSource
	SourceID     string
	ServiceID    *string
	BaseAmount   float64
}

type CommissionFilters struct {
	SpecialistID *string
	Status       *CommissionStatus
	StartDate    *time.Time
	EndDate      *time.Time
}

type CommissionSummary struct {
	SpecialistID   string  `json:"specialist_id"`
	PendingTotal   float64 `json:"pending_total"`
	RequestedTotal float64 `json:"requested_total"`
	PaidTotal      float64 `json:"paid_total"`
	PendingCount   int     `json:"pending_count"`
}

type CreatePaymentRequestRequest struct {
	BusinessID   string    `json:"-"`
	SpecialistID string    `json:"specialist_id"`
	PeriodFrom   time.Time `json:"period_from"`
	PeriodTo     time.Time `json:"period_to"`
	Notes        *string   `json:"notes"`
}

type ReviewPaymentRequestRequest struct {
	BusinessID    string  `json:"-"`
	RequestID     string  `json:"-"`
	ReviewerID    int     `json:"-"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
}
