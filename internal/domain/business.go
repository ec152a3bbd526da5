package domain

import "time"

type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "ACTIVE"
	BusinessStatusTrial     BusinessStatus = "TRIAL"
	BusinessStatusSuspended BusinessStatus = "SUSPENDED"
	BusinessStatusInactive  BusinessStatus = "INACTIVE"
)

func (s BusinessStatus) IsValid() bool {
	switch s {
	case BusinessStatusActive, BusinessStatusTrial, BusinessStatusSuspended, BusinessStatusInactive:
		return true
	}
	return false
}

// IsOperational indica se o negócio pode registrar vendas e atendimentos
func (s BusinessStatus) IsOperational() bool {
	return s == BusinessStatusActive || s == BusinessStatusTrial
}

type Business struct {
	ID          string         `json:"id"`
	Code        string         `json:"code"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone"`
	Address     *string        `json:"address"`
	City        *string        `json:"city"`
	Country     *string        `json:"country"`
	Status      BusinessStatus `json:"status"`
	TrialEndsAt *time.Time     `json:"trial_ends_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type RegisterBusinessRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	City          *string `json:"city"`
	Country       *string `json:"country"`
	AdminName     string  `json:"admin_name"`
	AdminLastname string  `json:"admin_lastname"`
	AdminEmail    string  `json:"admin_email"`
	AdminPassword string  `json:"admin_password"`
}

type RegisterBusinessResponse struct {
	Business *Business `json:"business"`
	Admin    *User     `json:"admin"`
}

type UpdateBusinessRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}
