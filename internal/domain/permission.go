package domain

import "time"

// Chaves de permissão verificadas pelas rotas
const (
	PermSalesView            = "sales.view"
	PermSalesCreate          = "sales.create"
	PermSalesCancel          = "sales.cancel"
	PermSalesExport          = "sales.export"
	PermCatalogView          = "catalog.view"
	PermCatalogManage        = "catalog.manage"
	PermInventoryAdjust      = "inventory.adjust"
	PermTreatmentsView       = "treatments.view"
	PermTreatmentsManage     = "treatments.manage"
	PermTreatmentsPayment    = "treatments.payment"
	PermCashOpen             = "cash.open"
	PermCashClose            = "cash.close"
	PermCashView             = "cash.view"
	PermCommissionsView      = "commissions.view"
	PermCommissionsManage    = "commissions.manage"
	PermPaymentMethodsManage = "payment_methods.manage"
	PermDashboardView        = "dashboard.view"
	PermUsersManage          = "users.manage"
)

// Permission é identificada por uma chave no formato "modulo.acao"
type Permission struct {
	Key         string  `json:"key"`
	Module      string  `json:"module"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type PermissionGroup struct {
	Module      string        `json:"module"`
	Permissions []*Permission `json:"permissions"`
}

type RolePermission struct {
	RoleID        int    `json:"role_id"`
	PermissionKey string `json:"permission_key"`
}

type UserPermissionOverride struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"business_id"`
	UserID        int       `json:"user_id"`
	PermissionKey string    `json:"permission_key"`
	Granted       bool      `json:"granted"`
	GrantedBy     *int      `json:"granted_by"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UserPermissions struct {
	UserID    int                       `json:"user_id"`
	RoleID    int                       `json:"role_id"`
	Effective []string                  `json:"effective"`
	Defaults  []string                  `json:"defaults"`
	Overrides []*UserPermissionOverride `json:"overrides"`
}

type PermissionChangeRequest struct {
	BusinessID    string  `json:"-"`
	UserID        int     `json:"-"`
	PermissionKey string  `json:"permission_key"`
	ChangedBy     int     `json:"-"`
	Notes         *string `json:"notes"`
}
