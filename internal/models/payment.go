package models

import "time"

// Payment is a fare recorded for a driver, optionally tied to a travel
type Payment struct {
	ID         int64      `json:"id" db:"id"`
	DriverID   int64      `json:"driverId" db:"driver_id"`
	TravelID   *int64     `json:"travelId,omitempty" db:"travel_id"`
	Amount     float64    `json:"amount" db:"amount"`
	Method     string     `json:"method,omitempty" db:"method"`
	Status     string     `json:"status" db:"status"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	PaidAt     *time.Time `json:"paidAt,omitempty" db:"paid_at"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty" db:"verified_at"`
}

// PaymentDetail is a payment joined with its driver, as shown on the
// manager dashboard
type PaymentDetail struct {
	Payment
	Driver Driver `json:"driver"`
}

// CreatePaymentRequest records a manual payment
type CreatePaymentRequest struct {
	DriverID int64   `json:"driver_id"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
}
