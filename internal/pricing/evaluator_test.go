package pricing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"confreg/internal/models"
	"confreg/internal/pricing"

	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	codes map[string]*models.DiscountCode
	err   error
}

func (s *stubStore) GetDiscountByCode(_ context.Context, code string) (*models.DiscountCode, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.codes[code], nil
}

func intPtr(v int) *int { return &v }

func TestEvaluateWithoutCode(t *testing.T) {
	evaluator := pricing.NewEvaluator(&stubStore{})

	result, err := evaluator.Evaluate(context.Background(), 399.0, "")
	assert.NoError(t, err)
	assert.Equal(t, 399.0, result.FinalAmount)
	assert.Equal(t, 0, result.PercentOff)
	assert.Empty(t, result.AppliedCode)

	// Whitespace-only input counts as no code.
	result, err = evaluator.Evaluate(context.Background(), 399.0, "   ")
	assert.NoError(t, err)
	assert.Equal(t, 399.0, result.FinalAmount)
}

func TestEvaluateAppliesPercentage(t *testing.T) {
	store := &stubStore{codes: map[string]*models.DiscountCode{
		"SAVE25": {Code: "SAVE25", Percent: 25},
	}}
	evaluator := pricing.NewEvaluator(store)

	result, err := evaluator.Evaluate(context.Background(), 399.0, "save25")
	assert.NoError(t, err)
	assert.Equal(t, 299.25, result.FinalAmount)
	assert.Equal(t, 25, result.PercentOff)
	assert.Equal(t, "SAVE25", result.AppliedCode)
}

func TestEvaluateNormalizesCode(t *testing.T) {
	store := &stubStore{codes: map[string]*models.DiscountCode{
		"SAVE25": {Code: "SAVE25", Percent: 25},
	}}
	evaluator := pricing.NewEvaluator(store)

	result, err := evaluator.Evaluate(context.Background(), 100.0, "  save25  ")
	assert.NoError(t, err)
	assert.Equal(t, "SAVE25", result.AppliedCode)
}

func TestEvaluateUnknownCode(t *testing.T) {
	evaluator := pricing.NewEvaluator(&stubStore{codes: map[string]*models.DiscountCode{}})

	_, err := evaluator.Evaluate(context.Background(), 399.0, "NOPE")
	assert.ErrorIs(t, err, pricing.ErrInvalidCode)
	assert.True(t, pricing.IsDiscountError(err))
}

func TestEvaluateExpiredCode(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	store := &stubStore{codes: map[string]*models.DiscountCode{
		"EXPIRED10": {Code: "EXPIRED10", Percent: 10, ExpiresAt: &past},
	}}
	evaluator := pricing.NewEvaluator(store)

	_, err := evaluator.Evaluate(context.Background(), 399.0, "EXPIRED10")
	assert.ErrorIs(t, err, pricing.ErrExpiredCode)
}

func TestEvaluateExhaustedCode(t *testing.T) {
	store := &stubStore{codes: map[string]*models.DiscountCode{
		"FULL": {Code: "FULL", Percent: 10, MaxUses: intPtr(5), UsedCount: 5},
	}}
	evaluator := pricing.NewEvaluator(store)

	_, err := evaluator.Evaluate(context.Background(), 399.0, "FULL")
	assert.ErrorIs(t, err, pricing.ErrExhaustedCode)

	// One use left is still valid.
	store.codes["FULL"].UsedCount = 4
	result, err := evaluator.Evaluate(context.Background(), 100.0, "FULL")
	assert.NoError(t, err)
	assert.Equal(t, 90.0, result.FinalAmount)
}

func TestEvaluateFullDiscountFloorsAtOneOre(t *testing.T) {
	store := &stubStore{codes: map[string]*models.DiscountCode{
		"FREE100": {Code: "FREE100", Percent: 100},
	}}
	evaluator := pricing.NewEvaluator(store)

	result, err := evaluator.Evaluate(context.Background(), 399.0, "FREE100")
	assert.NoError(t, err)
	assert.Equal(t, 0.01, result.FinalAmount)
}

func TestEvaluateStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	evaluator := pricing.NewEvaluator(&stubStore{err: storeErr})

	_, err := evaluator.Evaluate(context.Background(), 399.0, "SAVE25")
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, pricing.IsDiscountError(err))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE25", pricing.NormalizeCode("  save25 "))
	assert.Equal(t, "", pricing.NormalizeCode("   "))
}
