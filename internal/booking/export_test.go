package booking_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"confreg/internal/booking"
	"confreg/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func sampleBookings() []models.Booking {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return []models.Booking{
		{
			ID:            1,
			Name:          "Eva Andersson",
			Email:         "eva@example.com",
			City:          "Göteborg",
			Ticket:        "Standard",
			Terms:         true,
			PaymentStatus: models.PaymentStatusPaid,
			Pris:          "1495.00",
			CreatedAt:     created,
		},
		{
			ID:            2,
			Name:          "Johan Berg",
			Email:         "johan@example.com",
			Ticket:        "Student",
			Terms:         true,
			PaymentStatus: models.PaymentStatusManual,
			Pris:          "495.00",
			CreatedAt:     created.Add(time.Hour),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := booking.WriteCSV(&buf, sampleBookings())
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 3)

	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "Pris", records[0][13])

	assert.Equal(t, "Eva Andersson", records[1][1])
	assert.Equal(t, "1495.00", records[1][13])
	assert.Equal(t, "2026-03-14 09:30:00", records[1][14])

	assert.Equal(t, "manual", records[2][12])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := booking.WriteCSV(&buf, nil)
	assert.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := booking.WriteXLSX(&buf, sampleBookings())
	assert.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Johan Berg", rows[2][1])
	assert.Equal(t, "495.00", rows[2][13])
}
