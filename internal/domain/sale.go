package domain

import "time"

type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

type Sale struct {
	ID              string       `json:"id"`
	BusinessID      string       `json:"business_id"`
	SaleNumber      string       `json:"sale_number"`
	ClientID        *int         `json:"client_id"`
	UserID          int          `json:"user_id"`
	SpecialistID    *string      `json:"specialist_id"`
	ShiftID         *string      `json:"shift_id"`
	PaymentMethodID string       `json:"payment_method_id"`
	Status          SaleStatus   `json:"status"`
	Subtotal        float64      `json:"subtotal"`
	Discount        float64      `json:"discount"`
	DiscountType    DiscountType `json:"discount_type"`
	DiscountValue   float64      `json:"discount_value"`
	Tax             float64      `json:"tax"`
	Total           float64      `json:"total"`
	PaidAmount      float64      `json:"paid_amount"`
	ChangeAmount    float64      `json:"change_amount"`
	Notes           *string      `json:"notes"`
	CancelledAt     *time.Time   `json:"cancelled_at"`
	CancelledBy     *int         `json:"cancelled_by"`
	CancelReason    *string      `json:"cancel_reason"`
	Items           []*SaleItem  `json:"items"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type SaleItem struct {
	ID        string  `json:"id"`
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	UnitCost  float64 `json:"unit_cost"`
	Discount  float64 `json:"discount"`
	Subtotal  float64 `json:"subtotal"`
}

type CreateSaleItemRequest struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unit_price"`
	Discount  float64  `json:"discount"`
}

type CreateSaleRequest struct {
	BusinessID      string                   `json:"-"`
	UserID          int                      `json:"-"`
	ClientID        *int                     `json:"client_id"`
	SpecialistID    *string                  `json:"specialist_id"`
	PaymentMethodID string                   `json:"payment_method_id"`
	DiscountType    DiscountType             `json:"discount_type"`
	DiscountValue   float64                  `json:"discount_value"`
	PaidAmount      *float64                 `json:"paid_amount"`
	Notes           *string                  `json:"notes"`
	Items           []*CreateSaleItemRequest `json:"items"`
}

type CancelSaleRequest struct {
	SaleID     string `json:"-"`
	BusinessID string `json:"-"`
	UserID     int    `json:"-"`
	Reason     string `json:"reason"`
}

// StockChange descreve a baixa ou devolução de estoque de um produto dentro de uma venda
type StockChange struct {
	ProductID     string
	Quantity      int
	AllowNegative bool
}

type SaleFilters struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *SaleStatus
	UserID          *int
	SpecialistID    *string
	PaymentMethodID *string
	ShiftID         *string
	Pagination
}

type SalesByPaymentMethod struct {
	PaymentMethodID   string            `json:"payment_method_id"`
	PaymentMethodName string            `json:"payment_method_name"`
	PaymentMethodType PaymentMethodType `json:"payment_method_type"`
	Count             int               `json:"count"`
	Total             float64           `json:"total"`
}

type SalesSummary struct {
	Count           int                     `json:"count"`
	Total           float64                 `json:"total"`
	Discount        float64                 `json:"discount"`
	Tax             float64                 `json:"tax"`
	AverageTicket   float64                 `json:"average_ticket"`
	CancelledCount  int                     `json:"cancelled_count"`
	ByPaymentMethod []*SalesByPaymentMethod `json:"by_payment_method"`
}
