package utils

import "time"

// OrderNumber derives the receipt order number from the confirmation
// timestamp. Deterministic: the same booking always yields the same number.
func OrderNumber(confirmedAt time.Time) string {
	return confirmedAt.Format("20060102-150405")
}
