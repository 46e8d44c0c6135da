package dress

type CreateDressReq struct {
	Name        string  `json:"name" validate:"required"`
	CostPrice   float64 `json:"cost_price" validate:"gte=0"`
	RentalPrice float64 `json:"rental_price" validate:"gte=0"`
}

type UpdateDressReq struct {
	Name        string  `json:"name" validate:"required"`
	CostPrice   float64 `json:"cost_price" validate:"gte=0"`
	RentalPrice float64 `json:"rental_price" validate:"gte=0"`
	IsAvailable bool    `json:"is_available"`
}
