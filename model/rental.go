// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalBooked   RentalStatus = "BOOKED"
	RentalActive   RentalStatus = "ACTIVE"
	RentalReturned RentalStatus = "RETURNED"
)

// ValidStatus reports whether s is one of the three lifecycle states.
func ValidStatus(s RentalStatus) bool {
	switch s {
	case RentalBooked, RentalActive, RentalReturned:
		return true
	}
	return false
}

type Rental struct {
	ID            int64        `json:"id"`
	CustomerID    int64        `json:"customer_id"`
	DressID       int64        `json:"dress_id"`
	AccessoryIDs  []int64      `json:"accessory_ids"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Status        RentalStatus `json:"status"`
	TotalPrice    float64      `json:"total_price"`
	PriceOverride *float64     `json:"price_override,omitempty"`
	Deposit       float64      `json:"deposit"`
	Note          *string      `json:"note,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
