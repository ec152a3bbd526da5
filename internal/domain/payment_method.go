package domain

import (
	"encoding/json"
	"time"
)

type PaymentMethodType string

const (
	PaymentMethodCash     PaymentMethodType = "CASH"
	PaymentMethodCard     PaymentMethodType = "CARD"
	PaymentMethodTransfer PaymentMethodType = "TRANSFER"
	PaymentMethodQR       PaymentMethodType = "QR"
	PaymentMethodOnline   PaymentMethodType = "ONLINE"
	PaymentMethodOther    PaymentMethodType = "OTHER"
)

func (t PaymentMethodType) IsValid() bool {
	switch t {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodQR, PaymentMethodOnline, PaymentMethodOther:
		return true
	}
	return false
}

type PaymentMethod struct {
	ID            string            `json:"id"`
	BusinessID    string            `json:"business_id"`
	Name          string            `json:"name"`
	Type          PaymentMethodType `json:"type"`
	IsActive      bool              `json:"is_active"`
	RequiresProof bool              `json:"requires_proof"`
	DisplayOrder  int               `json:"display_order"`
	BankInfo      json.RawMessage   `json:"bank_info"`
	Deleted       bool              `json:"-"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type UpdatePaymentMethodRequest struct {
	ID            string             `json:"-"`
	BusinessID    string             `json:"-"`
	Name          *string            `json:"name"`
	Type          *PaymentMethodType `json:"type"`
	RequiresProof *bool              `json:"requires_proof"`
	BankInfo      json.RawMessage    `json:"bank_info"`
}
