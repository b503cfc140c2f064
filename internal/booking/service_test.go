package booking_test

import (
	"context"
	"errors"
	"testing"

	"confreg/internal/booking"
	"confreg/internal/logger"
	"confreg/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) CreateBooking(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 42
	}
	return args.Error(0)
}

func (m *MockDBLayer) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendReceipt(booking models.Booking) error {
	args := m.Called(booking)
	return args.Error(0)
}

func validManualRequest() booking.ManualRequest {
	return booking.ManualRequest{
		Name:        "Eva Andersson",
		Email:       "eva@example.com",
		Terms:       true,
		PriceName:   "Standard",
		PriceAmount: 1495.0,
	}
}

func TestCreateManual(t *testing.T) {
	db := new(MockDBLayer)
	mailer := new(MockMailer)
	service := booking.NewService(db, mailer, logger.NewLogger())

	db.On("CreateBooking", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.PaymentStatus == models.PaymentStatusManual &&
			b.Pris == "1495.00" &&
			b.Ticket == "Standard"
	})).Return(nil)
	mailer.On("SendReceipt", mock.MatchedBy(func(b models.Booking) bool {
		return b.ID == 42
	})).Return(nil)

	created, err := service.CreateManual(context.Background(), validManualRequest())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, models.PaymentStatusManual, created.PaymentStatus)

	db.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendReceipt", 1)
}

func TestCreateManualValidation(t *testing.T) {
	service := booking.NewService(new(MockDBLayer), new(MockMailer), logger.NewLogger())

	cases := []struct {
		name   string
		mutate func(*booking.ManualRequest)
	}{
		{"missing name", func(r *booking.ManualRequest) { r.Name = "" }},
		{"bad email", func(r *booking.ManualRequest) { r.Email = "eva" }},
		{"terms not accepted", func(r *booking.ManualRequest) { r.Terms = false }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validManualRequest()
			tc.mutate(&req)
			_, err := service.CreateManual(context.Background(), req)
			var ve booking.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestCreateManualMailFailureIsSwallowed(t *testing.T) {
	db := new(MockDBLayer)
	mailer := new(MockMailer)
	service := booking.NewService(db, mailer, logger.NewLogger())

	db.On("CreateBooking", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendReceipt", mock.Anything).Return(errors.New("smtp: connection refused"))

	created, err := service.CreateManual(context.Background(), validManualRequest())
	assert.NoError(t, err)
	assert.NotNil(t, created)
}

func TestCreateManualDBError(t *testing.T) {
	db := new(MockDBLayer)
	mailer := new(MockMailer)
	service := booking.NewService(db, mailer, logger.NewLogger())

	db.On("CreateBooking", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	_, err := service.CreateManual(context.Background(), validManualRequest())
	assert.Error(t, err)
	mailer.AssertNotCalled(t, "SendReceipt", mock.Anything)
}
