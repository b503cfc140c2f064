package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Payment status values carried by a booking.
const (
	PaymentStatusManual  = "manual"
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Booking is a confirmed registration, created either by the manual path or
// by the first paid confirmation of a payment order. Never deleted.
type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID                int64     `bun:"id,pk,autoincrement" json:"id"`
	Name              string    `bun:"name,notnull" json:"name"`
	Email             string    `bun:"email,notnull" json:"email"`
	City              string    `bun:"city" json:"city"`
	Phone             string    `bun:"phone" json:"phone"`
	Organization      string    `bun:"organization" json:"organization"`
	Ticket            string    `bun:"ticket" json:"ticket"`
	OtherInfo         string    `bun:"other_info" json:"otherInfo"`
	SponsorInterest   bool      `bun:"sponsor_interest" json:"sponsorInterest"`
	VolunteerInterest bool      `bun:"volunteer_interest" json:"volunteerInterest"`
	Booth             bool      `bun:"booth" json:"booth"`
	Terms             bool      `bun:"terms,notnull" json:"terms"`
	PaymentStatus     string    `bun:"payment_status,notnull" json:"paymentStatus"`
	Pris              string    `bun:"pris" json:"pris"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
