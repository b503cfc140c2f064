package pricing

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"confreg/internal/models"
)

// User-facing discount failures, surfaced verbatim as 400 messages.
var (
	ErrInvalidCode   = errors.New("invalid discount code")
	ErrExpiredCode   = errors.New("discount code has expired")
	ErrExhaustedCode = errors.New("discount code has no uses left")
)

// IsDiscountError reports whether err is one of the user-facing discount
// failures above.
func IsDiscountError(err error) bool {
	return errors.Is(err, ErrInvalidCode) ||
		errors.Is(err, ErrExpiredCode) ||
		errors.Is(err, ErrExhaustedCode)
}

// Store looks up a discount code by its normalized (uppercase) form.
// It returns (nil, nil) when no such code exists.
type Store interface {
	GetDiscountByCode(ctx context.Context, code string) (*models.DiscountCode, error)
}

// Result is the outcome of evaluating a base amount against an optional code.
type Result struct {
	FinalAmount float64 `json:"finalAmount"`
	PercentOff  int     `json:"percentOff"`
	AppliedCode string  `json:"appliedCode,omitempty"`
}

// Evaluator computes the chargeable amount for a ticket purchase.
// Evaluation has no side effects: usage is incremented only when a payment
// is confirmed, so abandoned checkouts never consume a code.
type Evaluator struct {
	store Store
}

func NewEvaluator(store Store) *Evaluator {
	return &Evaluator{store: store}
}

// NormalizeCode trims and uppercases a discount code for lookup and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (e *Evaluator) Evaluate(ctx context.Context, baseAmount float64, code string) (*Result, error) {
	code = NormalizeCode(code)
	if code == "" {
		return &Result{FinalAmount: baseAmount, PercentOff: 0}, nil
	}

	discount, err := e.store.GetDiscountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrInvalidCode
	}
	if discount.ExpiresAt != nil && discount.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredCode
	}
	if discount.MaxUses != nil && discount.UsedCount >= *discount.MaxUses {
		return nil, ErrExhaustedCode
	}

	final := round2(baseAmount * (1 - float64(discount.Percent)/100))
	if final < 0.01 {
		final = 0.01
	}

	return &Result{
		FinalAmount: final,
		PercentOff:  discount.Percent,
		AppliedCode: discount.Code,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
