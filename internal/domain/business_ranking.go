package domain

import "time"

type BusinessRankingItem struct {
	BusinessID       string    `json:"business_id"`
	BusinessName     string    `json:"business_name"`
	Month            string    `json:"month"` // formato mm-yyyy
	Revenue          float64   `json:"revenue"`
	SalesCount       int       `json:"sales_count"`
	Position         int       `json:"position"`
	PositionChange   int       `json:"position_change"`
	PreviousPosition int       `json:"previous_position"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BusinessRevenue é a receita consolidada de um negócio no período
type BusinessRevenue struct {
	BusinessID   string
	BusinessName string
	Revenue      float64
	SalesCount   int
}
