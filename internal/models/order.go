package models

import (
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Provider-reported payment order statuses, normalized by the checkout adapter.
const (
	OrderStatusOpen     = "open"
	OrderStatusPaid     = "paid"
	OrderStatusFailed   = "failed"
	OrderStatusExpired  = "expired"
	OrderStatusCanceled = "canceled"
)

// OrderPayload is the registrant snapshot taken at payment-start time.
// Price and discount values are copied in, not referenced, so later admin
// edits cannot change an in-flight order.
type OrderPayload struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	City              string  `json:"city"`
	Phone             string  `json:"phone"`
	Organization      string  `json:"organization"`
	OtherInfo         string  `json:"otherInfo"`
	SponsorInterest   bool    `json:"sponsorInterest"`
	VolunteerInterest bool    `json:"volunteerInterest"`
	Booth             bool    `json:"booth"`
	Terms             bool    `json:"terms"`
	PriceName         string  `json:"priceName"`
	PriceAmount       float64 `json:"priceAmount"`
	DiscountCode      string  `json:"discountCode,omitempty"`
	DiscountPercent   int     `json:"discountPercent,omitempty"`
	DiscountedAmount  float64 `json:"discountedAmount"`
}

// ToBooking materializes the snapshot as a paid booking row.
func (p OrderPayload) ToBooking() Booking {
	return Booking{
		Name:              p.Name,
		Email:             p.Email,
		City:              p.City,
		Phone:             p.Phone,
		Organization:      p.Organization,
		Ticket:            p.PriceName,
		OtherInfo:         p.OtherInfo,
		SponsorInterest:   p.SponsorInterest,
		VolunteerInterest: p.VolunteerInterest,
		Booth:             p.Booth,
		Terms:             p.Terms,
		PaymentStatus:     PaymentStatusPaid,
		Pris:              fmt.Sprintf("%.2f", p.DiscountedAmount),
		CreatedAt:         time.Now(),
	}
}

// PaymentOrder is the ledger row for one checkout attempt, keyed by the
// provider's payment identifier. BookingID goes null -> non-null exactly once.
type PaymentOrder struct {
	bun.BaseModel `bun:"table:payment_orders"`

	PaymentID string       `bun:"payment_id,pk" json:"paymentId"`
	Payload   OrderPayload `bun:"payload,type:jsonb" json:"payload"`
	Status    string       `bun:"status,notnull" json:"status"`
	BookingID *int64       `bun:"booking_id,nullzero" json:"bookingId,omitempty"`
	CreatedAt time.Time    `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
