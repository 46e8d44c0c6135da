package rental

type CreateRentalReq struct {
	CustomerID    int64    `json:"customer_id" validate:"required,gt=0"`
	DressID       int64    `json:"dress_id" validate:"required,gt=0"`
	AccessoryIDs  []int64  `json:"accessory_ids"`
	StartDate     string   `json:"start_date" validate:"required"`
	EndDate       string   `json:"end_date" validate:"required"`
	PriceOverride *float64 `json:"price_override"`
	Deposit       float64  `json:"deposit" validate:"gte=0"`
	Note          *string  `json:"note"`
}

type UpdateStatusReq struct {
	Status string `json:"status" validate:"required"`
}
