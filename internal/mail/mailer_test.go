package mail

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"confreg/internal/config"
	"confreg/internal/logger"
	"confreg/internal/models"

	"github.com/stretchr/testify/assert"
)

func paidBooking() models.Booking {
	return models.Booking{
		ID:            1,
		Name:          "Eva Andersson",
		Email:         "eva@example.com",
		Ticket:        "Standard",
		PaymentStatus: models.PaymentStatusPaid,
		Pris:          "1495.00",
		CreatedAt:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestReceiptAmounts(t *testing.T) {
	net, vat := ReceiptAmounts(1495.00)
	assert.Equal(t, 299.00, vat)
	assert.Equal(t, 1196.00, net)

	net, vat = ReceiptAmounts(0.01)
	assert.Equal(t, 0.0, vat)
	assert.Equal(t, 0.01, net)
}

func TestBuildReceipt(t *testing.T) {
	subject, body := BuildReceipt(paidBooking())

	assert.Equal(t, "Registration confirmed - order 20260314-093000", subject)
	assert.Contains(t, body, "Hi Eva Andersson,")
	assert.Contains(t, body, "Order number: 20260314-093000")
	assert.Contains(t, body, "Total:        1495.00 SEK")
	assert.Contains(t, body, "VAT (25%):    299.00 SEK")
	assert.Contains(t, body, "Net:          1196.00 SEK")
}

func TestSendReceiptSkippedWhenUnconfigured(t *testing.T) {
	service := NewService(config.EmailConfig{}, logger.NewLogger())
	called := false
	service.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	assert.NoError(t, service.SendReceipt(paidBooking()))
	assert.False(t, called)
}

func TestSendReceiptSkippedWithoutRecipient(t *testing.T) {
	cfg := config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", From: "no-reply@example.com"}
	service := NewService(cfg, logger.NewLogger())
	called := false
	service.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	booking := paidBooking()
	booking.Email = ""
	assert.NoError(t, service.SendReceipt(booking))
	assert.False(t, called)
}

func TestSendReceiptDeliversMessage(t *testing.T) {
	cfg := config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", From: "no-reply@example.com"}
	service := NewService(cfg, logger.NewLogger())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	service.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	assert.NoError(t, service.SendReceipt(paidBooking()))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"eva@example.com"}, gotTo)

	message := string(gotMsg)
	assert.True(t, strings.Contains(message, "To: eva@example.com"))
	assert.True(t, strings.Contains(message, "Subject: Registration confirmed - order 20260314-093000"))
	assert.True(t, strings.Contains(message, "Thank you for your registration!"))
}

func TestSendReceiptTransportError(t *testing.T) {
	cfg := config.EmailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", From: "no-reply@example.com"}
	service := NewService(cfg, logger.NewLogger())
	service.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := service.SendReceipt(paidBooking())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "smtp send failed")
}
