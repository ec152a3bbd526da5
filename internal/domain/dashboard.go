package domain

import "time"

type MonthlyRevenue struct {
	Month   string  `json:"month"` // formato mm-yyyy
	Revenue float64 `json:"revenue"`
	Sales   int     `json:"sales"`
}

type OwnerDashboard struct {
	TotalBusinesses      int                    `json:"total_businesses"`
	ActiveBusinesses     int                    `json:"active_businesses"`
	TrialBusinesses      int                    `json:"trial_businesses"`
	SuspendedBusinesses  int                    `json:"suspended_businesses"`
	NewBusinessesMonth   int                    `json:"new_businesses_month"`
	RevenueThisMonth     float64                `json:"revenue_this_month"`
	RevenuePreviousMonth float64                `json:"revenue_previous_month"`
	RevenueGrowth        float64                `json:"revenue_growth"`
	MonthlyRevenue       []*MonthlyRevenue      `json:"monthly_revenue"`
	Ranking              []*BusinessRankingItem `json:"ranking"`
	GeneratedAt          time.Time              `json:"generated_at"`
}

type BusinessStatusCount struct {
	Status BusinessStatus `json:"status"`
	Count  int            `json:"count"`
}

type TopProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type BusinessDashboard struct {
	BusinessID             string                  `json:"business_id"`
	TodaySalesCount        int                     `json:"today_sales_count"`
	TodaySalesTotal        float64                 `json:"today_sales_total"`
	MonthRevenue           float64                 `json:"month_revenue"`
	MonthSalesCount        int                     `json:"month_sales_count"`
	AverageTicket          float64                 `json:"average_ticket"`
	LowStockProducts       []*Product              `json:"low_stock_products"`
	ActiveTreatmentPlans   int                     `json:"active_treatment_plans"`
	SessionsScheduledToday int                     `json:"sessions_scheduled_today"`
	TopProducts            []*TopProduct           `json:"top_products"`
	SalesByPaymentMethod   []*SalesByPaymentMethod `json:"sales_by_payment_method"`
	GeneratedAt            time.Time               `json:"generated_at"`
}
