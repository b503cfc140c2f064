package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"confreg/internal/logger"
	"confreg/internal/models"
)

// ValidationError carries a message safe to show to the registrant.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type DBLayer interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	ListBookings(ctx context.Context) ([]models.Booking, error)
}

type Mailer interface {
	SendReceipt(booking models.Booking) error
}

// ManualRequest is the offline/invoice registration form: no payment
// provider involved, booking is created synchronously.
type ManualRequest struct {
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
}

func (r *ManualRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ValidationError("name is required")
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return ValidationError("a valid email is required")
	}
	if !r.Terms {
		return ValidationError("terms must be accepted")
	}
	return nil
}

type Service struct {
	DB     DBLayer
	Mailer Mailer
	Logger *logger.Logger
}

func NewService(db DBLayer, mailer Mailer, log *logger.Logger) *Service {
	return &Service{DB: db, Mailer: mailer, Logger: log}
}

// CreateManual stores a manual booking and attempts the receipt email once.
func (s *Service) CreateManual(ctx context.Context, req ManualRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking := models.Booking{
		Name:              req.Name,
		Email:             req.Email,
		City:              req.City,
		Phone:             req.Phone,
		Organization:      req.Organization,
		Ticket:            req.PriceName,
		OtherInfo:         req.OtherInfo,
		SponsorInterest:   req.SponsorInterest,
		VolunteerInterest: req.VolunteerInterest,
		Booth:             req.Booth,
		Terms:             req.Terms,
		PaymentStatus:     models.PaymentStatusManual,
		Pris:              fmt.Sprintf("%.2f", req.PriceAmount),
		CreatedAt:         time.Now(),
	}
	if err := s.DB.CreateBooking(ctx, &booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.LogBooking("MANUAL", fmt.Sprintf("%d", booking.ID), booking.Email)

	if err := s.Mailer.SendReceipt(booking); err != nil {
		s.Logger.Error("MAIL", fmt.Sprintf("Receipt for booking %d failed: %v", booking.ID, err))
	}

	return &booking, nil
}

func (s *Service) List(ctx context.Context) ([]models.Booking, error) {
	return s.DB.ListBookings(ctx)
}
