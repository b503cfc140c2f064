package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"confreg/internal/logger"
	"confreg/internal/models"
	"confreg/internal/pricing"
)

var ErrOrderNotFound = errors.New("payment order not found")

// ValidationError carries a message safe to show to the registrant.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

type DBLayer interface {
	UpsertOrder(ctx context.Context, order models.PaymentOrder) error
	GetOrder(ctx context.Context, paymentID string) (*models.PaymentOrder, error)
	SetStatus(ctx context.Context, paymentID, status string) error
	Confirm(ctx context.Context, paymentID string) (*models.Booking, bool, error)
}

type Mailer interface {
	SendReceipt(booking models.Booking) error
}

// StartRequest is the registrant form posted at payment start.
type StartRequest struct {
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
	DiscountCode      string  `json:"discountCode"`
}

func (r *StartRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ValidationError("name is required")
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return ValidationError("a valid email is required")
	}
	if strings.TrimSpace(r.PriceName) == "" {
		return ValidationError("a ticket type must be selected")
	}
	if r.PriceAmount <= 0 {
		return ValidationError("ticket price must be positive")
	}
	if !r.Terms {
		return ValidationError("terms must be accepted")
	}
	return nil
}

type StartResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	PaymentID   string `json:"paymentId"`
}

// VerifyResult is the state-machine outcome for one verification call.
type VerifyResult struct {
	Status    string
	Booking   *models.Booking
	Confirmed bool
}

// OrderService owns the payment order ledger and the confirmation flow.
type OrderService struct {
	DB       DBLayer
	Provider CheckoutProvider
	Pricing  *pricing.Evaluator
	Mailer   Mailer
	Logger   *logger.Logger
}

func NewOrderService(db DBLayer, provider CheckoutProvider, evaluator *pricing.Evaluator, mailer Mailer, log *logger.Logger) *OrderService {
	return &OrderService{DB: db, Provider: provider, Pricing: evaluator, Mailer: mailer, Logger: log}
}

// StartPayment evaluates the price, opens a hosted checkout and records the
// pending order snapshot keyed by the provider's payment id.
func (s *OrderService) StartPayment(ctx context.Context, req StartRequest) (*StartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.Pricing.Evaluate(ctx, req.PriceAmount, req.DiscountCode)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Conference ticket: %s", req.PriceName)
	paymentID, checkoutURL, err := s.Provider.CreateCheckout(ctx, result.FinalAmount, description, req.Email)
	if err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("Checkout creation failed: %v", err))
		return nil, fmt.Errorf("failed to create checkout: %w", err)
	}

	order := models.PaymentOrder{
		PaymentID: paymentID,
		Status:    models.OrderStatusOpen,
		Payload: models.OrderPayload{
			Name:              req.Name,
			Email:             req.Email,
			City:              req.City,
			Phone:             req.Phone,
			Organization:      req.Organization,
			OtherInfo:         req.OtherInfo,
			SponsorInterest:   req.SponsorInterest,
			VolunteerInterest: req.VolunteerInterest,
			Booth:             req.Booth,
			Terms:             req.Terms,
			PriceName:         req.PriceName,
			PriceAmount:       req.PriceAmount,
			DiscountCode:      result.AppliedCode,
			DiscountPercent:   result.PercentOff,
			DiscountedAmount:  result.FinalAmount,
		},
	}
	if err := s.DB.UpsertOrder(ctx, order); err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("Failed to store payment order %s: %v", paymentID, err))
		return nil, fmt.Errorf("failed to store payment order: %w", err)
	}

	s.Logger.LogPayment("START", paymentID, fmt.Sprintf("%s (%.2f SEK)", req.PriceName, result.FinalAmount))
	return &StartResponse{CheckoutURL: checkoutURL, PaymentID: paymentID}, nil
}

// VerifyPayment reconciles the provider-reported status with the ledger.
//
//	PENDING --(paid, booking_id still null under lock)--> CONFIRMED
//	PENDING --(not paid)--> PENDING (status refreshed)
//	CONFIRMED --(anything)--> CONFIRMED (no-op)
func (s *OrderService) VerifyPayment(ctx context.Context, paymentID string) (*VerifyResult, error) {
	order, err := s.DB.GetOrder(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	status, err := s.Provider.CheckoutStatus(ctx, paymentID)
	if err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("Provider status lookup failed for %s: %v", paymentID, err))
		return nil, fmt.Errorf("payment provider error: %w", err)
	}

	if status != models.OrderStatusPaid {
		if err := s.DB.SetStatus(ctx, paymentID, status); err != nil {
			return nil, err
		}
		s.Logger.LogPayment("VERIFY", paymentID, "status "+status)
		return &VerifyResult{Status: status}, nil
	}

	booking, created, err := s.DB.Confirm(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if created {
		s.Logger.LogBooking("CONFIRMED", fmt.Sprintf("%d", booking.ID), booking.Email)
		// Post-commit and best-effort: a failed receipt must never make a
		// committed booking look failed.
		if err := s.Mailer.SendReceipt(*booking); err != nil {
			s.Logger.Error("MAIL", fmt.Sprintf("Receipt for booking %d failed: %v", booking.ID, err))
		}
	} else {
		s.Logger.LogPayment("VERIFY", paymentID, "already confirmed")
	}

	return &VerifyResult{Status: models.OrderStatusPaid, Booking: booking, Confirmed: created}, nil
}
