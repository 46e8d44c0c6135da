// model/session.go
package model

import "time"

// PortalSession maps an opaque token to a customer for the self-service
// portal. Kept separate from staff JWT auth on purpose.
type PortalSession struct {
	Token      string    `json:"token"`
	CustomerID int64     `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}
