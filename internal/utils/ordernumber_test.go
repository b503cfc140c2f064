package utils_test

import (
	"testing"
	"time"

	"confreg/internal/utils"

	"github.com/stretchr/testify/assert"
)

func TestOrderNumber(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "20260314-093005", utils.OrderNumber(created))
}
