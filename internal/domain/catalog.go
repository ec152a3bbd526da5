package domain

import "time"

type Product struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	Name           string    `json:"name"`
	SKU            *string   `json:"sku"`
	Category       *string   `json:"category"`
	Description    *string   `json:"description"`
	Price          float64   `json:"price"`
	Cost           float64   `json:"cost"`
	Stock          int       `json:"stock"`
	MinStock       int       `json:"min_stock"`
	TrackInventory bool      `json:"track_inventory"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsLowStock indica se o produto atingiu o estoque mínimo
func (p *Product) IsLowStock() bool {
	return p.TrackInventory && p.Stock <= p.MinStock
}

type ProductFilters struct {
	Category *string
	Search   *string
	IsActive *bool
	LowStock bool
}

type UpdateProductRequest struct {
	ID             string   `json:"id"`
	BusinessID     string   `json:"-"`
	Name           *string  `json:"name"`
	SKU            *string  `json:"sku"`
	Category       *string  `json:"category"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price"`
	Cost           *float64 `json:"cost"`
	MinStock       *int     `json:"min_stock"`
	TrackInventory *bool    `json:"track_inventory"`
	IsActive       *bool    `json:"is_active"`
}

type StockAdjustmentRequest struct {
	ProductID  string `json:"product_id"`
	BusinessID string `json:"-"`
	UserID     int    `json:"-"`
	Quantity   int    `json:"quantity"` // positivo entra, negativo sai
	Reason     string `json:"reason"`
}

type MovementType string

const (
	MovementSale       MovementType = "SALE"
	MovementReturn     MovementType = "RETURN"
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementPurchase   MovementType = "PURCHASE"
)

type InventoryMovement struct {
	ID            string       `json:"id"`
	BusinessID    string       `json:"business_id"`
	ProductID     string       `json:"product_id"`
	UserID        int          `json:"user_id"`
	Type          MovementType `json:"type"`
	Quantity      int          `json:"quantity"`
	PreviousStock int          `json:"previous_stock"`
	NewStock      int          `json:"new_stock"`
	ReferenceType *string      `json:"reference_type"`
	ReferenceID   *string      `json:"reference_id"`
	Notes         *string      `json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
}

type PackageType string

const (
	PackageSingle          PackageType = "SINGLE"
	PackageMultiSession    PackageType = "MULTI_SESSION"
	PackageWithMaintenance PackageType = "WITH_MAINTENANCE"
)

// Service é um serviço do catálogo do negócio (corte, limpeza de pele, pacote de sessões...)
type Service struct {
	ID                   string      `json:"id"`
	BusinessID           string      `json:"business_id"`
	Name                 string      `json:"name"`
	Category             *string     `json:"category"`
	Description          *string     `json:"description"`
	DurationMinutes      int         `json:"duration_minutes"`
	Price                float64     `json:"price"`
	IsPackage            bool        `json:"is_package"`
	PackageType          PackageType `json:"package_type"`
	SessionsCount        int         `json:"sessions_count"`
	MaintenanceSessions  int         `json:"maintenance_sessions"`
	SessionIntervalDays  int         `json:"session_interval_days"`
	PackagePrice         *float64    `json:"package_price"`
	CommissionPercentage *float64    `json:"commission_percentage"`
	IsActive             bool        `json:"is_active"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// TotalSessions retorna a quantidade total de sessões do pacote, incluindo manutenções
func (s *Service) TotalSessions() int {
	if !s.IsPackage {
		return 1
	}
	total := s.SessionsCount
	if s.PackageType == PackageWithMaintenance {
		total += s.MaintenanceSessions
	}
	return total
}

// TotalPackagePrice retorna o preço fechado do pacote ou o preço por sessão multiplicado
func (s *Service) TotalPackagePrice() float64 {
	if s.PackagePrice != nil {
		return *s.PackagePrice
	}
	return s.Price * float64(s.TotalSessions())
}

type ServiceFilters struct {
	Category  *string
	IsActive  *bool
	IsPackage *bool
}

type UpdateServiceRequest struct {
	ID                   string       `json:"id"`
	BusinessID           string       `json:"-"`
	Name                 *string      `json:"name"`
	Category             *string      `json:"category"`
	Description          *string      `json:"description"`
	DurationMinutes      *int         `json:"duration_minutes"`
	Price                *float64     `json:"price"`
	IsPackage            *bool        `json:"is_package"`
	PackageType          *PackageType `json:"package_type"`
	SessionsCount        *int         `json:"sessions_count"`
	MaintenanceSessions  *int         `json:"maintenance_sessions"`
	SessionIntervalDays  *int         `json:"session_interval_days"`
	PackagePrice         *float64     `json:"package_price"`
	CommissionPercentage *float64     `json:"commission_percentage"`
	IsActive             *bool        `json:"is_active"`
}
