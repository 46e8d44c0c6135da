// model/dress.go
package model

type Dress struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	ImagePath   string  `json:"image_path"`
	CostPrice   float64 `json:"cost_price"`
	RentalPrice float64 `json:"rental_price"`
	IsAvailable bool    `json:"is_available"`

	// Aggregates filled by list queries.
	TotalRevenue float64 `json:"total_revenue"`
	Profit       float64 `json:"profit"`
}
