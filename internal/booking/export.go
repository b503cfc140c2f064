package booking

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"confreg/internal/models"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"ID", "Name", "Email", "City", "Phone", "Organization", "Ticket",
	"Other info", "Sponsor interest", "Volunteer interest", "Booth",
	"Terms", "Payment status", "Pris", "Created at",
}

func exportRow(b models.Booking) []string {
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Name,
		b.Email,
		b.City,
		b.Phone,
		b.Organization,
		b.Ticket,
		b.OtherInfo,
		strconv.FormatBool(b.SponsorInterest),
		strconv.FormatBool(b.VolunteerInterest),
		strconv.FormatBool(b.Booth),
		strconv.FormatBool(b.Terms),
		b.PaymentStatus,
		b.Pris,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// WriteCSV streams the booking list as CSV.
func WriteCSV(w io.Writer, bookings []models.Booking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, b := range bookings {
		if err := cw.Write(exportRow(b)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the booking list as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, b := range bookings {
		row := exportRow(b)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
