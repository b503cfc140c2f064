package mail

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"confreg/internal/models"
	"confreg/internal/utils"
)

// Swedish VAT rate on conference tickets. Prices are gross; the receipt
// back-calculates the included VAT.
const vatRate = 0.25

// ReceiptAmounts splits a gross total into net and included VAT.
func ReceiptAmounts(total float64) (net, vat float64) {
	vat = math.Round(total*vatRate/(1+vatRate)*100) / 100
	net = total - vat
	return net, vat
}

// BuildReceipt renders the receipt subject and plain-text body for a booking.
func BuildReceipt(booking models.Booking) (subject, body string) {
	total, _ := strconv.ParseFloat(strings.TrimSpace(booking.Pris), 64)
	net, vat := ReceiptAmounts(total)
	orderNumber := utils.OrderNumber(booking.CreatedAt)

	subject = fmt.Sprintf("Registration confirmed - order %s", orderNumber)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", booking.Name)
	fmt.Fprintf(&b, "Thank you for your registration!\n\n")
	fmt.Fprintf(&b, "Order number: %s\n", orderNumber)
	fmt.Fprintf(&b, "Ticket:       %s\n", booking.Ticket)
	fmt.Fprintf(&b, "Total:        %.2f SEK\n", total)
	fmt.Fprintf(&b, "Net:          %.2f SEK\n", net)
	fmt.Fprintf(&b, "VAT (25%%):    %.2f SEK\n\n", vat)
	fmt.Fprintf(&b, "We look forward to seeing you at the conference.\n")
	return subject, b.String()
}
