package db

import (
	"context"
	"database/sql"
	"errors"

	"confreg/internal/models"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

type DB struct {
	Bun *bun.DB
}

// UpsertOrder inserts a ledger row or overwrites payload/status of an
// existing one. booking_id is never touched here.
func (d *DB) UpsertOrder(ctx context.Context, order models.PaymentOrder) error {
	_, err := d.Bun.NewInsert().
		Model(&order).
		On("CONFLICT (payment_id) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("status = EXCLUDED.status").
		Exec(ctx)
	return err
}

// GetOrder fetches one ledger row, returning (nil, nil) when absent.
func (d *DB) GetOrder(ctx context.Context, paymentID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := d.Bun.NewSelect().
		Model(&order).
		Where("payment_id = ?", paymentID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetStatus refreshes the provider-reported status of a non-confirmed order.
func (d *DB) SetStatus(ctx context.Context, paymentID, status string) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.PaymentOrder)(nil)).
		Set("status = ?", status).
		Where("payment_id = ?", paymentID).
		Exec(ctx)
	return err
}

// GetDiscountByCode looks up a discount by normalized code, (nil, nil) when absent.
func (d *DB) GetDiscountByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var discount models.DiscountCode
	err := d.Bun.NewSelect().
		Model(&discount).
		Where("upper(code) = upper(?)", code).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

// Confirm materializes the booking for a paid order, exactly once.
//
// The order row is re-read under an exclusive row lock and booking_id is
// re-checked after the lock is held, so concurrent verifications of the same
// paymentId serialize here and all but the first become no-ops. Booking
// insert, cap-guarded discount increment and booking_id write commit or roll
// back together.
//
// Returns the booking and whether this call created it.
func (d *DB) Confirm(ctx context.Context, paymentID string) (*models.Booking, bool, error) {
	var booking models.Booking
	created := false

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var order models.PaymentOrder
		q := tx.NewSelect().
			Model(&order).
			Where("payment_id = ?", paymentID)
		// Row locking is a Postgres mechanism; the sqlite used in tests
		// serializes writers on its own.
		if d.Bun.Dialect().Name() == dialect.PG {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			return err
		}

		if order.BookingID != nil {
			return tx.NewSelect().
				Model(&booking).
				Where("id = ?", *order.BookingID).
				Scan(ctx)
		}

		booking = order.Payload.ToBooking()
		if _, err := tx.NewInsert().Model(&booking).Exec(ctx); err != nil {
			return err
		}

		if code := order.Payload.DiscountCode; code != "" {
			// The cap guard lives in the statement itself so a race against
			// the evaluator's earlier check cannot overrun max_uses. A
			// zero-row update does not fail the confirmation: the cap blocks
			// future evaluations, not an order that already passed one.
			if _, err := tx.NewUpdate().
				Model((*models.DiscountCode)(nil)).
				Set("used_count = used_count + 1").
				Where("upper(code) = upper(?)", code).
				Where("max_uses IS NULL OR used_count < max_uses").
				Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := tx.NewUpdate().
			Model((*models.PaymentOrder)(nil)).
			Set("status = ?", models.OrderStatusPaid).
			Set("booking_id = ?", booking.ID).
			Where("payment_id = ?", paymentID).
			Exec(ctx); err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, created, nil
}
