package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Booking struct {
	ID               string        `db:"id" json:"id"`
	UserID           string        `db:"user_id" json:"userId"`
	BookingReference string        `db:"booking_reference" json:"bookingReference"`
	TotalAmount      float64       `db:"total_amount" json:"totalAmount"`
	Currency         string        `db:"currency" json:"currency"`
	PaymentStatus    PaymentStatus `db:"payment_status" json:"paymentStatus"`
	BookingStatus    string        `db:"booking_status" json:"bookingStatus"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
}

func (b Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}
