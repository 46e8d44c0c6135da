// model/customer.go
package model

import "time"

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	LineID    *string   `json:"line_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCustomerReq represents customer creation payload
// swagger:model CreateCustomerReq
type CreateCustomerReq struct {
	Name   string  `json:"name" validate:"required"`
	Phone  string  `json:"phone" validate:"required"`
	LineID *string `json:"line_id,omitempty"`
}
