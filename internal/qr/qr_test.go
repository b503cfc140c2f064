package qr_test

import (
	"bytes"
	"image/png"
	"testing"

	"confreg/internal/qr"

	"github.com/stretchr/testify/assert"
)

func TestPNGProducesDecodableImage(t *testing.T) {
	data, err := qr.PNG("20260314-093000")
	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestPNGEmptyReference(t *testing.T) {
	_, err := qr.PNG("")
	assert.Error(t, err)
}
