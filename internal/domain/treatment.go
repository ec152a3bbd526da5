package domain

import "time"

type TreatmentPlanStatus string

const (
	PlanActive    TreatmentPlanStatus = "ACTIVE"
	PlanPaused    TreatmentPlanStatus = "PAUSED"
	PlanCompleted TreatmentPlanStatus = "COMPLETED"
	PlanCancelled TreatmentPlanStatus = "CANCELLED"
)

type PaymentPlan string

const (
	PaymentFullUpfront  PaymentPlan = "FULL_UPFRONT"
	PaymentPerSession   PaymentPlan = "PER_SESSION"
	PaymentInstallments PaymentPlan = "INSTALLMENTS"
)

func (p PaymentPlan) IsValid() bool {
	switch p {
	case PaymentFullUpfront, PaymentPerSession, PaymentInstallments:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionPending   SessionStatus = "PENDING"
	SessionScheduled SessionStatus = "SCHEDULED"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionCancelled SessionStatus = "CANCELLED"
	SessionMissed    SessionStatus = "MISSED"
)

type TreatmentPlan struct {
	ID                string              `json:"id"`
	BusinessID        string              `json:"business_id"`
	ClientID          int                 `json:"client_id"`
	ServiceID         string              `json:"service_id"`
	ServiceName       string              `json:"service_name,omitempty"`
	SpecialistID      *string             `json:"specialist_id"`
	Status            TreatmentPlanStatus `json:"status"`
	PlanType          PackageType         `json:"plan_type"`
	TotalSessions     int                 `json:"total_sessions"`
	CompletedSessions int                 `json:"completed_sessions"`
	TotalPrice        float64             `json:"total_price"`
	PaidAmount        float64             `json:"paid_amount"`
	PaymentPlan       PaymentPlan         `json:"payment_plan"`
	StartDate         time.Time           `json:"start_date"`
	ExpectedEndDate   *time.Time          `json:"expected_end_date"`
	ActualEndDate     *time.Time          `json:"actual_end_date"`
	Notes             *string             `json:"notes"`
	CreatedBy         int                 `json:"created_by"`
	Sessions          []*TreatmentSession `json:"sessions,omitempty"`
	Progress          float64             `json:"progress"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ProgressPercentage retorna o percentual de sessões concluídas
func (p *TreatmentPlan) ProgressPercentage() float64 {
	if p.TotalSessions == 0 {
		return 0
	}
	return float64(p.CompletedSessions) / float64(p.TotalSessions) * 100
}

// RemainingBalance retorna o valor ainda não pago do plano
func (p *TreatmentPlan) RemainingBalance() float64 {
	remaining := p.TotalPrice - p.PaidAmount
	if remaining < 0 {
		return 0
	}
	return remaining
}

type TreatmentSession struct {
	ID            string        `json:"id"`
	PlanID        string        `json:"plan_id"`
	BusinessID    string        `json:"business_id"`
	SessionNumber int           `json:"session_number"`
	Status        SessionStatus `json:"status"`
	ScheduledAt   *time.Time    `json:"scheduled_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
	SpecialistID  *string       `json:"specialist_id"`
	Price         float64       `json:"price"`
	Paid          bool          `json:"paid"`
	PaidAt        *time.Time    `json:"paid_at"`
	Notes         *string       `json:"notes"`
	ReminderSent  bool          `json:"reminder_sent"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type CreateTreatmentPlanRequest struct {
	BusinessID   string      `json:"-"`
	CreatedBy    int         `json:"-"`
	ClientID     int         `json:"client_id"`
	ServiceID    string      `json:"service_id"`
	SpecialistID *string     `json:"specialist_id"`
	PaymentPlan  PaymentPlan `json:"payment_plan"`
	StartDate    time.Time   `json:"start_date"`
	InitialPay   float64     `json:"initial_payment"`
	Notes        *string     `json:"notes"`
}

type ScheduleSessionRequest struct {
	BusinessID   string    `json:"-"`
	SessionID    string    `json:"-"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	SpecialistID *string   `json:"specialist_id"`
	Notes        *string   `json:"notes"`
}

type RegisterTreatmentPaymentRequest struct {
	BusinessID string  `json:"-"`
	PlanID     string  `json:"-"`
	Amount     float64 `json:"amount"`
	SessionID  *string `json:"session_id"`
}

type TreatmentPlanFilters struct {
	ClientID     *int
	Status       *TreatmentPlanStatus
	SpecialistID *string
}

// SessionReminder reúne os dados necessários para avisar o cliente da próxima sessão
type SessionReminder struct {
	SessionID     string    `json:"session_id"`
	BusinessID    string    `json:"business_id"`
	BusinessName  string    `json:"business_name"`
	ClientName    string    `json:"client_name"`
	ClientPhone   *string   `json:"client_phone"`
	ServiceName   string    `json:"service_name"`
	SessionNumber int       `json:"session_number"`
	TotalSessions int       `json:"total_sessions"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}
