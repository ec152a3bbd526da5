package domain

import "time"

type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "OPEN"
	ShiftClosed ShiftStatus = "CLOSED"
)

type CashRegisterShift struct {
	ID                     string      `json:"id"`
	BusinessID             string      `json:"business_id"`
	UserID                 int         `json:"user_id"`
	ShiftNumber            string      `json:"shift_number"`
	Status                 ShiftStatus `json:"status"`
	OpenedAt               time.Time   `json:"opened_at"`
	ClosedAt               *time.Time  `json:"closed_at"`
	OpeningBalance         float64     `json:"opening_balance"`
	ExpectedClosingBalance *float64    `json:"expected_closing_balance"`
	ActualClosingBalance   *float64    `json:"actual_closing_balance"`
	Difference             *float64    `json:"difference"`
	OpeningNotes           *string     `json:"opening_notes"`
	ClosingNotes           *string     `json:"closing_notes"`
	CreatedAt              time.Time   `json:"created_at"`
	UpdatedAt              time.Time   `json:"updated_at"`
}

type OpenShiftRequest struct {
	BusinessID     string  `json:"-"`
	UserID         int     `json:"-"`
	OpeningBalance float64 `json:"opening_balance"`
	OpeningNotes   *string `json:"opening_notes"`
}

type CloseShiftRequest struct {
	BusinessID           string  `json:"-"`
	UserID               int     `json:"-"`
	ShiftID              string  `json:"-"`
	ActualClosingBalance float64 `json:"actual_closing_balance"`
	ClosingNotes         *string `json:"closing_notes"`
}

type ShiftSummary struct {
	Shift           *CashRegisterShift      `json:"shift"`
	SalesCount      int                     `json:"sales_count"`
	SalesTotal      float64                 `json:"sales_total"`
	CashSales       float64                 `json:"cash_sales"`
	ExpectedCash    float64                 `json:"expected_cash"`
	ByPaymentMethod []*SalesByPaymentMethod `json:"by_payment_method"`
}

type ShiftFilters struct {
	UserID    *int
	Status    *ShiftStatus
	StartDate *time.Time
	EndDate   *time.Time
	Pagination
}
